package link

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shortlyhq/shortly/internal/user"
)

var (
	// ErrNotFound is returned when no link resolves. Records owned by
	// someone else and cross-tenant domain mismatches deliberately map to
	// the same error so callers cannot probe for existence.
	ErrNotFound = errors.New("link not found")
	// ErrExpired is returned when a link is past its expiry.
	ErrExpired = errors.New("link has expired")
	// ErrInactive is returned when a link has been deactivated.
	ErrInactive = errors.New("link is inactive")
	// ErrInvalidURL is returned for malformed or non-absolute target URLs.
	ErrInvalidURL = errors.New("invalid url format")
	// ErrInvalidAlias is returned for aliases outside the allowed format.
	ErrInvalidAlias = errors.New("invalid custom alias")
	// ErrAliasTaken is returned when the custom alias is already in use.
	ErrAliasTaken = errors.New("custom alias already in use")
	// ErrShortIDTaken signals a lost allocation race at insert time.
	ErrShortIDTaken = errors.New("short id already in use")
	// ErrAllocationExhausted is returned when no free identifier was found
	// within the attempt cap.
	ErrAllocationExhausted = errors.New("short id allocation exhausted")
)

// Link represents a shortened URL record.
type Link struct {
	ID             uuid.UUID
	OriginalURL    string
	ShortID        string
	CustomAlias    string     // optional, globally unique when present
	ExpiresAt      *time.Time // nil means the link never expires
	OwnerID        *uuid.UUID // nil for anonymous links
	Active         bool
	QRCodeImageURL string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Expired reports whether the link is past its expiry at the given instant.
// A link expiring exactly at the instant is still valid.
func (l *Link) Expired(now time.Time) bool {
	if l.ExpiresAt == nil {
		return false
	}

	return now.After(*l.ExpiresAt)
}

// Path returns the resolvable path for the link. The alias, when present,
// prefixes the short identifier, it never replaces it.
func (l *Link) Path() string {
	if l.CustomAlias != "" {
		return l.CustomAlias + "/" + l.ShortID
	}

	return l.ShortID
}

// Record pairs a link with a snapshot of its owner, as needed by redirect
// resolution to decide domain authorization.
type Record struct {
	Link  *Link
	Owner *user.User // nil for anonymous links
}
