package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shortlyhq/shortly/internal/link"
	"github.com/shortlyhq/shortly/internal/user"
)

// MemoryStore keeps links and users in process memory. It backs tests and
// local development without external services.
type MemoryStore struct {
	mu    sync.RWMutex
	links map[uuid.UUID]*link.Link
	users map[uuid.UUID]*user.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[uuid.UUID]*link.Link),
		users: make(map[uuid.UUID]*user.User),
	}
}

func (s *MemoryStore) Create(ctx context.Context, l *link.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.links {
		if existing.ShortID == l.ShortID {
			return link.ErrShortIDTaken
		}

		if l.CustomAlias != "" && existing.CustomAlias == l.CustomAlias {
			return link.ErrAliasTaken
		}
	}

	s.links[l.ID] = cloneLink(l)

	return nil
}

func (s *MemoryStore) GetByShortID(ctx context.Context, shortID string) (*link.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.ShortID != shortID {
			continue
		}

		rec := &link.Record{Link: cloneLink(l)}

		if l.OwnerID != nil {
			if owner, ok := s.users[*l.OwnerID]; ok {
				rec.Owner = cloneUser(owner)
			}
		}

		return rec, nil
	}

	return nil, link.ErrNotFound
}

func (s *MemoryStore) GetByShortIDAndOwner(ctx context.Context, shortID string, ownerID uuid.UUID) (*link.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.ShortID == shortID && l.OwnerID != nil && *l.OwnerID == ownerID {
			return cloneLink(l), nil
		}
	}

	return nil, link.ErrNotFound
}

func (s *MemoryStore) GetPublicByShortID(ctx context.Context, shortID string) (*link.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.ShortID != shortID {
			continue
		}

		if l.OwnerID != nil {
			if owner, ok := s.users[*l.OwnerID]; ok && owner.Branded() {
				return nil, link.ErrNotFound
			}
		}

		return cloneLink(l), nil
	}

	return nil, link.ErrNotFound
}

func (s *MemoryStore) ShortIDExists(ctx context.Context, shortID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.ShortID == shortID {
			return true, nil
		}
	}

	return false, nil
}

func (s *MemoryStore) AliasExists(ctx context.Context, alias string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.links {
		if l.CustomAlias != "" && l.CustomAlias == alias {
			return true, nil
		}
	}

	return false, nil
}

func (s *MemoryStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*link.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var links []*link.Link

	for _, l := range s.links {
		if l.OwnerID != nil && *l.OwnerID == ownerID {
			links = append(links, cloneLink(l))
		}
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

func (s *MemoryStore) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*link.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.links[id]
	if !ok || l.OwnerID == nil || *l.OwnerID != ownerID {
		return nil, link.ErrNotFound
	}

	return cloneLink(l), nil
}

func (s *MemoryStore) Update(ctx context.Context, l *link.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[l.ID]; !ok {
		return link.ErrNotFound
	}

	s.links[l.ID] = cloneLink(l)

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, l *link.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[l.ID]; !ok {
		return link.ErrNotFound
	}

	delete(s.links, l.ID)

	return nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}

		if u.CustomDomainPrefix != "" && existing.CustomDomainPrefix == u.CustomDomainPrefix {
			return user.ErrPrefixTaken
		}
	}

	s.users[u.ID] = cloneUser(u)

	return nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	return cloneUser(u), nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}

	return nil, user.ErrNotFound
}

func (s *MemoryStore) GetPremiumByDomainPrefix(ctx context.Context, prefix string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.IsPremium && u.CustomDomainPrefix == prefix {
			return cloneUser(u), nil
		}
	}

	return nil, user.ErrNotFound
}

func (s *MemoryStore) DomainPrefixExists(ctx context.Context, prefix string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.CustomDomainPrefix == prefix {
			return true, nil
		}
	}

	return false, nil
}

func (s *MemoryStore) ActivatePremium(ctx context.Context, id uuid.UUID, prefix string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.ErrNotFound
	}

	for otherID, other := range s.users {
		if otherID != id && other.CustomDomainPrefix == prefix {
			return user.ErrPrefixTaken
		}
	}

	u.IsPremium = true
	u.CustomDomainPrefix = prefix
	u.PremiumExpiresAt = &expiresAt
	u.UpdatedAt = time.Now()

	return nil
}

func cloneLink(l *link.Link) *link.Link {
	c := *l

	if l.ExpiresAt != nil {
		t := *l.ExpiresAt
		c.ExpiresAt = &t
	}

	if l.OwnerID != nil {
		id := *l.OwnerID
		c.OwnerID = &id
	}

	return &c
}

func cloneUser(u *user.User) *user.User {
	c := *u

	if u.PremiumExpiresAt != nil {
		t := *u.PremiumExpiresAt
		c.PremiumExpiresAt = &t
	}

	c.PasswordHash = append([]byte(nil), u.PasswordHash...)

	return &c
}

// UserStore exposes the user side of the store as a user.Repository.
func (s *MemoryStore) UserStore() user.Repository {
	return memoryUserStore{s}
}

// memoryUserStore adapts MemoryStore to user.Repository; Create on the
// outer type is claimed by link.Repository.
type memoryUserStore struct {
	*MemoryStore
}

func (s memoryUserStore) Create(ctx context.Context, u *user.User) error {
	return s.CreateUser(ctx, u)
}

// Compile-time checks.
var (
	_ link.Repository = (*MemoryStore)(nil)
	_ user.Repository = memoryUserStore{}
)
