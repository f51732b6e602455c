package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shortlyhq/shortly/internal/link"
	"github.com/shortlyhq/shortly/internal/user"
)

const uniqueViolation = "23505"

const linkColumns = `id, original_url, short_id, custom_alias, expires_at, owner_id, active, qr_code_image_url, created_at, updated_at`

// PostgresLinkStore is a PostgreSQL implementation of link.Repository.
type PostgresLinkStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLinkStore creates a PostgreSQL-backed link store.
func NewPostgresLinkStore(pool *pgxpool.Pool) *PostgresLinkStore {
	return &PostgresLinkStore{pool: pool}
}

func (s *PostgresLinkStore) Create(ctx context.Context, l *link.Link) error {
	query := `
		INSERT INTO links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		l.ID,
		l.OriginalURL,
		l.ShortID,
		nullableString(l.CustomAlias),
		l.ExpiresAt,
		l.OwnerID,
		l.Active,
		nullableString(l.QRCodeImageURL),
		l.CreatedAt,
		l.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "links_short_id_key":
			return link.ErrShortIDTaken
		case "links_custom_alias_key":
			return link.ErrAliasTaken
		}
	}

	return err
}

func (s *PostgresLinkStore) GetByShortID(ctx context.Context, shortID string) (*link.Record, error) {
	query := `
		SELECT l.id, l.original_url, l.short_id, l.custom_alias, l.expires_at,
		       l.owner_id, l.active, l.qr_code_image_url, l.created_at, l.updated_at,
		       u.email, u.first_name, u.last_name, u.is_premium,
		       u.custom_domain_prefix, u.premium_expires_at
		FROM links l
		LEFT JOIN users u ON u.id = l.owner_id
		WHERE l.short_id = $1
	`

	var (
		l           link.Link
		alias       *string
		qrURL       *string
		email       *string
		firstName   *string
		lastName    *string
		isPremium   *bool
		prefix      *string
		premiumUpTo *time.Time
	)

	err := s.pool.QueryRow(ctx, query, shortID).Scan(
		&l.ID, &l.OriginalURL, &l.ShortID, &alias, &l.ExpiresAt,
		&l.OwnerID, &l.Active, &qrURL, &l.CreatedAt, &l.UpdatedAt,
		&email, &firstName, &lastName, &isPremium, &prefix, &premiumUpTo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, link.ErrNotFound
		}

		return nil, err
	}

	fillOptional(&l, alias, qrURL)

	rec := &link.Record{Link: &l}

	if l.OwnerID != nil {
		rec.Owner = &user.User{
			ID:               *l.OwnerID,
			Email:            deref(email),
			FirstName:        deref(firstName),
			LastName:         deref(lastName),
			IsPremium:        isPremium != nil && *isPremium,
			PremiumExpiresAt: premiumUpTo,
		}
		rec.Owner.CustomDomainPrefix = deref(prefix)
	}

	return rec, nil
}

func (s *PostgresLinkStore) GetByShortIDAndOwner(ctx context.Context, shortID string, ownerID uuid.UUID) (*link.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE short_id = $1 AND owner_id = $2`

	return s.queryLink(ctx, query, shortID, ownerID)
}

func (s *PostgresLinkStore) GetPublicByShortID(ctx context.Context, shortID string) (*link.Link, error) {
	query := `
		SELECT l.id, l.original_url, l.short_id, l.custom_alias, l.expires_at,
		       l.owner_id, l.active, l.qr_code_image_url, l.created_at, l.updated_at
		FROM links l
		LEFT JOIN users u ON u.id = l.owner_id
		WHERE l.short_id = $1
		  AND (l.owner_id IS NULL OR u.is_premium = FALSE OR u.custom_domain_prefix IS NULL)
	`

	return s.queryLink(ctx, query, shortID)
}

func (s *PostgresLinkStore) ShortIDExists(ctx context.Context, shortID string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM links WHERE short_id = $1)`, shortID,
	).Scan(&exists)

	return exists, err
}

func (s *PostgresLinkStore) AliasExists(ctx context.Context, alias string) (bool, error) {
	var exists bool

	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM links WHERE custom_alias = $1)`, alias,
	).Scan(&exists)

	return exists, err
}

func (s *PostgresLinkStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*link.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*link.Link

	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}

		links = append(links, l)
	}

	return links, rows.Err()
}

func (s *PostgresLinkStore) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*link.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = $1 AND owner_id = $2`

	return s.queryLink(ctx, query, id, ownerID)
}

func (s *PostgresLinkStore) Update(ctx context.Context, l *link.Link) error {
	query := `
		UPDATE links
		SET original_url = $2, expires_at = $3, active = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query, l.ID, l.OriginalURL, l.ExpiresAt, l.Active, l.UpdatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}

	return nil
}

func (s *PostgresLinkStore) Delete(ctx context.Context, l *link.Link) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, l.ID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}

	return nil
}

func (s *PostgresLinkStore) queryLink(ctx context.Context, query string, args ...any) (*link.Link, error) {
	l, err := scanLink(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, link.ErrNotFound
		}

		return nil, err
	}

	return l, nil
}

func scanLink(row pgx.Row) (*link.Link, error) {
	var (
		l     link.Link
		alias *string
		qrURL *string
	)

	err := row.Scan(
		&l.ID, &l.OriginalURL, &l.ShortID, &alias, &l.ExpiresAt,
		&l.OwnerID, &l.Active, &qrURL, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fillOptional(&l, alias, qrURL)

	return &l, nil
}

func fillOptional(l *link.Link, alias, qrURL *string) {
	l.CustomAlias = deref(alias)
	l.QRCodeImageURL = deref(qrURL)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// Compile-time check.
var _ link.Repository = (*PostgresLinkStore)(nil)
