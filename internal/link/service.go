package link

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// createAttempts bounds the insert retry loop for lost allocation races.
const createAttempts = 3

var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// QREncoder renders a QR image for a target URL as a data URL.
type QREncoder interface {
	DataURL(content string) (string, error)
}

// CreateParams carries the fields for a new link.
type CreateParams struct {
	OriginalURL string
	CustomAlias string
	ExpiresAt   *time.Time
	GenerateQR  bool
	OwnerID     *uuid.UUID // nil for anonymous links
}

// UpdateParams is a partial mutation; nil fields are left unchanged.
// ClearExpiresAt removes the expiry regardless of ExpiresAt.
type UpdateParams struct {
	OriginalURL    *string
	ExpiresAt      *time.Time
	ClearExpiresAt bool
	Active         *bool
}

// Service manages the link lifecycle. All reads and mutations are scoped to
// the owning user; links owned by someone else are indistinguishable from
// absent ones.
type Service struct {
	links Repository
	alloc *Allocator
	qr    QREncoder
	now   func() time.Time
}

// NewService creates a link lifecycle service. qr may be nil when QR
// generation is disabled.
func NewService(links Repository, alloc *Allocator, qr QREncoder) *Service {
	return &Service{links: links, alloc: alloc, qr: qr, now: time.Now}
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}

	return nil
}

// Create validates the request, allocates a unique short identifier, and
// persists the link with a single atomic insert. The alias conflict check
// runs before allocation so a rejected request leaves no side effects. A
// unique-constraint failure on the short identifier means a concurrent
// create won the race for the same candidate; the loop retries with a
// fresh one.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Link, error) {
	if err := ValidateURL(p.OriginalURL); err != nil {
		return nil, err
	}

	alias := strings.TrimSpace(p.CustomAlias)
	if alias != "" {
		if !aliasPattern.MatchString(alias) {
			return nil, ErrInvalidAlias
		}

		taken, err := s.links.AliasExists(ctx, alias)
		if err != nil {
			return nil, err
		}

		if taken {
			return nil, ErrAliasTaken
		}
	}

	var qrDataURL string

	if p.GenerateQR && s.qr != nil {
		dataURL, err := s.qr.DataURL(p.OriginalURL)
		if err != nil {
			return nil, err
		}

		qrDataURL = dataURL
	}

	for i := 0; i < createAttempts; i++ {
		shortID, err := s.alloc.Allocate(ctx)
		if err != nil {
			return nil, err
		}

		now := s.now()
		l := &Link{
			ID:             uuid.New(),
			OriginalURL:    p.OriginalURL,
			ShortID:        shortID,
			CustomAlias:    alias,
			ExpiresAt:      p.ExpiresAt,
			OwnerID:        p.OwnerID,
			Active:         true,
			QRCodeImageURL: qrDataURL,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		err = s.links.Create(ctx, l)
		if errors.Is(err, ErrShortIDTaken) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return l, nil
	}

	return nil, ErrAllocationExhausted
}

// List returns all links owned by the given user, newest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Link, error) {
	return s.links.ListByOwner(ctx, ownerID)
}

// Get returns the link if it exists and is owned by the given user.
func (s *Service) Get(ctx context.Context, id, ownerID uuid.UUID) (*Link, error) {
	return s.links.GetByIDAndOwner(ctx, id, ownerID)
}

// Update applies a partial mutation to an owned link. The target URL, when
// supplied, is re-validated.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, p UpdateParams) (*Link, error) {
	l, err := s.links.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if p.OriginalURL != nil {
		if err := ValidateURL(*p.OriginalURL); err != nil {
			return nil, err
		}

		l.OriginalURL = *p.OriginalURL
	}

	switch {
	case p.ClearExpiresAt:
		l.ExpiresAt = nil
	case p.ExpiresAt != nil:
		l.ExpiresAt = p.ExpiresAt
	}

	if p.Active != nil {
		l.Active = *p.Active
	}

	l.UpdatedAt = s.now()

	if err := s.links.Update(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Delete removes an owned link and returns the deleted record.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) (*Link, error) {
	l, err := s.links.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.links.Delete(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}
