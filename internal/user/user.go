package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPrefixTaken is returned when the custom domain prefix is already owned.
	ErrPrefixTaken = errors.New("custom domain prefix already taken")
)

// User represents an account. Premium fields are only ever set through the
// billing activation path, never by the user directly.
type User struct {
	ID                 uuid.UUID
	FirstName          string
	LastName           string
	Email              string
	PasswordHash       []byte
	IsPremium          bool
	CustomDomainPrefix string // empty unless premium with a branded domain
	PremiumExpiresAt   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Branded reports whether links owned by this user resolve through a custom
// domain prefix.
func (u *User) Branded() bool {
	return u.IsPremium && u.CustomDomainPrefix != ""
}

// Repository defines the interface for user storage operations.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetPremiumByDomainPrefix finds the premium user owning the given
	// custom domain prefix. Returns ErrNotFound otherwise.
	GetPremiumByDomainPrefix(ctx context.Context, prefix string) (*User, error)
	DomainPrefixExists(ctx context.Context, prefix string) (bool, error)

	// ActivatePremium marks the user premium with the given prefix and
	// expiry. The operation is an absolute update and safe to reapply.
	ActivatePremium(ctx context.Context, id uuid.UUID, prefix string, expiresAt time.Time) error
}
