package link

import (
	"context"
	"errors"
	"time"

	"github.com/shortlyhq/shortly/internal/user"
)

// Outcome is the verdict of a single resolution strategy.
type Outcome int

const (
	// OutcomeNoMatch means the strategy found nothing; the chain continues.
	OutcomeNoMatch Outcome = iota
	// OutcomeMatch means the strategy selected a link.
	OutcomeMatch
	// OutcomeDenied means a link exists but this caller, under this inbound
	// domain, is not authorized to resolve it. The chain stops and the
	// caller sees ErrNotFound.
	OutcomeDenied
)

// Strategy is one step of the ordered resolution chain. Because short
// identifiers are globally unique there is at most one link per shortID;
// the chain decides whether the caller may resolve it, not which of several
// candidates wins.
type Strategy interface {
	Resolve(ctx context.Context, shortID, domainPrefix string) (*Link, Outcome, error)
}

// Resolver maps an inbound short path and domain prefix to a target URL.
type Resolver struct {
	strategies []Strategy
	now        func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithNow overrides the clock used for expiry checks.
func WithNow(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver builds the standard three-step chain: premium-domain
// isolation, tenant-prefix lookup, public fallback. defaultPrefix is the
// reserved domain prefix (typically "api") that may resolve any link.
func NewResolver(links Repository, users user.Repository, defaultPrefix string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		strategies: []Strategy{
			&premiumDomainStrategy{links: links, defaultPrefix: defaultPrefix},
			&tenantPrefixStrategy{links: links, users: users},
			&publicFallbackStrategy{links: links},
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the original URL for the short identifier, or ErrNotFound,
// ErrExpired, or ErrInactive. Expiry and active checks apply uniformly once
// a strategy selects a link.
func (r *Resolver) Resolve(ctx context.Context, shortID, domainPrefix string) (string, error) {
	for _, s := range r.strategies {
		l, outcome, err := s.Resolve(ctx, shortID, domainPrefix)
		if err != nil {
			return "", err
		}

		switch outcome {
		case OutcomeDenied:
			return "", ErrNotFound
		case OutcomeMatch:
			return r.checkUsable(l)
		case OutcomeNoMatch:
		}
	}

	return "", ErrNotFound
}

func (r *Resolver) checkUsable(l *Link) (string, error) {
	if l.Expired(r.now()) {
		return "", ErrExpired
	}

	if !l.Active {
		return "", ErrInactive
	}

	return l.OriginalURL, nil
}

// premiumDomainStrategy handles links owned by premium users with a custom
// domain prefix. Requests through the reserved default prefix are always
// permitted; any other prefix must match the owner's exactly.
type premiumDomainStrategy struct {
	links         Repository
	defaultPrefix string
}

func (s *premiumDomainStrategy) Resolve(ctx context.Context, shortID, domainPrefix string) (*Link, Outcome, error) {
	rec, err := s.links.GetByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, OutcomeNoMatch, nil
		}

		return nil, OutcomeNoMatch, err
	}

	if rec.Owner == nil || !rec.Owner.Branded() {
		// Not a branded link; the public fallback decides.
		return nil, OutcomeNoMatch, nil
	}

	if domainPrefix != s.defaultPrefix && domainPrefix != rec.Owner.CustomDomainPrefix {
		return nil, OutcomeDenied, nil
	}

	return rec.Link, OutcomeMatch, nil
}

// tenantPrefixStrategy scopes the lookup to the premium user owning the
// request's domain prefix.
type tenantPrefixStrategy struct {
	links Repository
	users user.Repository
}

func (s *tenantPrefixStrategy) Resolve(ctx context.Context, shortID, domainPrefix string) (*Link, Outcome, error) {
	if domainPrefix == "" {
		return nil, OutcomeNoMatch, nil
	}

	owner, err := s.users.GetPremiumByDomainPrefix(ctx, domainPrefix)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, OutcomeNoMatch, nil
		}

		return nil, OutcomeNoMatch, err
	}

	l, err := s.links.GetByShortIDAndOwner(ctx, shortID, owner.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, OutcomeNoMatch, nil
		}

		return nil, OutcomeNoMatch, err
	}

	return l, OutcomeMatch, nil
}

// publicFallbackStrategy resolves anonymous links and links of owners
// without a branded domain. The restriction guards against a non-premium
// request retrieving a premium-tenant-scoped link.
type publicFallbackStrategy struct {
	links Repository
}

func (s *publicFallbackStrategy) Resolve(ctx context.Context, shortID, _ string) (*Link, Outcome, error) {
	l, err := s.links.GetPublicByShortID(ctx, shortID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, OutcomeNoMatch, nil
		}

		return nil, OutcomeNoMatch, err
	}

	return l, OutcomeMatch, nil
}
