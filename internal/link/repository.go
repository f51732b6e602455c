package link

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for link storage operations. Uniqueness
// of short_id and custom_alias is enforced by the store itself at write
// time; Create reports conflicts as ErrShortIDTaken or ErrAliasTaken.
type Repository interface {
	Create(ctx context.Context, l *Link) error

	// GetByShortID returns the single link with the given identifier along
	// with its owner snapshot. Returns ErrNotFound when absent.
	GetByShortID(ctx context.Context, shortID string) (*Record, error)

	// GetByShortIDAndOwner scopes the lookup to links owned by the given
	// user.
	GetByShortIDAndOwner(ctx context.Context, shortID string, ownerID uuid.UUID) (*Link, error)

	// GetPublicByShortID restricts the lookup to links that do not belong
	// to a premium owner with a custom domain prefix: anonymous links and
	// links of non-premium or prefix-less owners.
	GetPublicByShortID(ctx context.Context, shortID string) (*Link, error)

	ShortIDExists(ctx context.Context, shortID string) (bool, error)
	AliasExists(ctx context.Context, alias string) (bool, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Link, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Link, error)
	Update(ctx context.Context, l *Link) error
	Delete(ctx context.Context, l *Link) error
}
