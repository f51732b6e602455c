package link_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlyhq/shortly/internal/link"
	"github.com/shortlyhq/shortly/internal/store"
	"github.com/shortlyhq/shortly/internal/user"
)

const defaultPrefix = "api"

func seedUser(t *testing.T, mem *store.MemoryStore, premium bool, prefix string) *user.User {
	t.Helper()

	u := &user.User{
		ID:                 uuid.New(),
		Email:              uuid.NewString() + "@example.com",
		IsPremium:          premium,
		CustomDomainPrefix: prefix,
	}

	require.NoError(t, mem.UserStore().Create(context.Background(), u))

	return u
}

func seedLink(t *testing.T, mem *store.MemoryStore, shortID string, owner *user.User) *link.Link {
	t.Helper()

	l := &link.Link{
		ID:          uuid.New(),
		OriginalURL: "https://example.com/" + shortID,
		ShortID:     shortID,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if owner != nil {
		l.OwnerID = &owner.ID
	}

	require.NoError(t, mem.Create(context.Background(), l))

	return l
}

func TestResolver_DomainIsolation(t *testing.T) {
	mem := store.NewMemoryStore()
	alice := seedUser(t, mem, true, "alice")
	seedUser(t, mem, true, "bob")
	carol := seedUser(t, mem, false, "")

	aliceLink := seedLink(t, mem, "aaa111", alice)
	carolLink := seedLink(t, mem, "ccc333", carol)
	publicLink := seedLink(t, mem, "ppp000", nil)

	resolver := link.NewResolver(mem, mem.UserStore(), defaultPrefix)

	t.Run("resolves a branded link through the owner's prefix", func(t *testing.T) {
		target, err := resolver.Resolve(context.Background(), "aaa111", "alice")

		require.NoError(t, err)
		assert.Equal(t, aliceLink.OriginalURL, target)
	})

	t.Run("resolves a branded link through the default prefix", func(t *testing.T) {
		target, err := resolver.Resolve(context.Background(), "aaa111", defaultPrefix)

		require.NoError(t, err)
		assert.Equal(t, aliceLink.OriginalURL, target)
	})

	t.Run("denies a branded link through another tenant's prefix", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "aaa111", "bob")

		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("denies a branded link without a prefix", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "aaa111", "")

		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("resolves a public link without a prefix", func(t *testing.T) {
		target, err := resolver.Resolve(context.Background(), "ppp000", "")

		require.NoError(t, err)
		assert.Equal(t, publicLink.OriginalURL, target)
	})

	t.Run("resolves a public link through any prefix", func(t *testing.T) {
		target, err := resolver.Resolve(context.Background(), "ppp000", "alice")

		require.NoError(t, err)
		assert.Equal(t, publicLink.OriginalURL, target)
	})

	t.Run("resolves a non-premium owner's link publicly", func(t *testing.T) {
		target, err := resolver.Resolve(context.Background(), "ccc333", "")

		require.NoError(t, err)
		assert.Equal(t, carolLink.OriginalURL, target)
	})

	t.Run("returns not found for an unknown identifier", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "zzz999", "")

		assert.ErrorIs(t, err, link.ErrNotFound)
	})
}

func TestResolver_Usability(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	newResolver := func(mem *store.MemoryStore) *link.Resolver {
		return link.NewResolver(mem, mem.UserStore(), defaultPrefix,
			link.WithNow(func() time.Time { return now }),
		)
	}

	t.Run("rejects an expired link", func(t *testing.T) {
		mem := store.NewMemoryStore()
		l := seedLink(t, mem, "exp111", nil)
		past := now.Add(-time.Minute)
		l.ExpiresAt = &past
		require.NoError(t, mem.Update(context.Background(), l))

		_, err := newResolver(mem).Resolve(context.Background(), "exp111", "")

		assert.ErrorIs(t, err, link.ErrExpired)
	})

	t.Run("serves a link expiring exactly now", func(t *testing.T) {
		mem := store.NewMemoryStore()
		l := seedLink(t, mem, "edge11", nil)
		l.ExpiresAt = &now
		require.NoError(t, mem.Update(context.Background(), l))

		target, err := newResolver(mem).Resolve(context.Background(), "edge11", "")

		require.NoError(t, err)
		assert.Equal(t, l.OriginalURL, target)
	})

	t.Run("rejects an inactive link", func(t *testing.T) {
		mem := store.NewMemoryStore()
		l := seedLink(t, mem, "off111", nil)
		l.Active = false
		require.NoError(t, mem.Update(context.Background(), l))

		_, err := newResolver(mem).Resolve(context.Background(), "off111", "")

		assert.ErrorIs(t, err, link.ErrInactive)
	})

	t.Run("expiry check precedes the active check", func(t *testing.T) {
		mem := store.NewMemoryStore()
		l := seedLink(t, mem, "both11", nil)
		past := now.Add(-time.Hour)
		l.ExpiresAt = &past
		l.Active = false
		require.NoError(t, mem.Update(context.Background(), l))

		_, err := newResolver(mem).Resolve(context.Background(), "both11", "")

		assert.ErrorIs(t, err, link.ErrExpired)
	})
}
