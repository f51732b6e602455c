package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shortlyhq/shortly/internal/user"
)

const userColumns = `id, email, password_hash, first_name, last_name, is_premium, custom_domain_prefix, premium_expires_at, created_at, updated_at`

// PostgresUserStore is a PostgreSQL implementation of user.Repository.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a PostgreSQL-backed user store.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		u.ID,
		u.Email,
		string(u.PasswordHash),
		u.FirstName,
		u.LastName,
		u.IsPremium,
		nullableString(u.CustomDomainPrefix),
		u.PremiumExpiresAt,
		u.CreatedAt,
		u.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return user.ErrEmailTaken
		case "users_custom_domain_prefix_key":
			return user.ErrPrefixTaken
		}
	}

	return err
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return s.queryUser(ctx, query, id)
}

func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return s.queryUser(ctx, query, email)
}

func (s *PostgresUserStore) GetPremiumByDomainPrefix(ctx context.Context, prefix string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE custom_domain_prefix = $1 AND is_premium = TRUE`

	return s.queryUser(ctx, query, prefix)
}

func (s *PostgresUserStore) DomainPrefixExists(ctx context.Context, prefix string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE custom_domain_prefix = $1)`, prefix,
	).Scan(&exists)

	return exists, err
}

func (s *PostgresUserStore) ActivatePremium(ctx context.Context, id uuid.UUID, prefix string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET is_premium = TRUE, custom_domain_prefix = $2, premium_expires_at = $3, updated_at = now()
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, id, prefix, expiresAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return user.ErrPrefixTaken
	}

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (s *PostgresUserStore) queryUser(ctx context.Context, query string, args ...any) (*user.User, error) {
	var (
		u            user.User
		passwordHash string
		prefix       *string
	)

	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &passwordHash, &u.FirstName, &u.LastName,
		&u.IsPremium, &prefix, &u.PremiumExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, err
	}

	u.PasswordHash = []byte(passwordHash)
	u.CustomDomainPrefix = deref(prefix)

	return &u, nil
}

// Compile-time check.
var _ user.Repository = (*PostgresUserStore)(nil)
