package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingFields is returned when a registration field is absent.
	ErrMissingFields = errors.New("first name, last name, email and password are required")
	// ErrPasswordTooShort is returned for passwords under the minimum length.
	ErrPasswordTooShort = errors.New("password should be at least 6 characters")
)

const minPasswordLength = 6

// RegisterParams carries the fields needed to create an account.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Service implements account registration and login.
type Service struct {
	users Repository
	now   func() time.Time
}

// NewService creates a new account service.
func NewService(users Repository) *Service {
	return &Service{users: users, now: time.Now}
}

// Register creates a new account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	if p.FirstName == "" || p.LastName == "" || p.Email == "" || p.Password == "" {
		return nil, ErrMissingFields
	}

	if len(p.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &User{
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login verifies the credentials and returns the matching user. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
