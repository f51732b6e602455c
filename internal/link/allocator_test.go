package link_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortlyhq/shortly/internal/link"
)

// mapIndex marks a fixed set of identifiers as taken.
type mapIndex struct {
	taken map[string]bool
	err   error
	calls int
}

func (m *mapIndex) ShortIDExists(_ context.Context, shortID string) (bool, error) {
	m.calls++

	if m.err != nil {
		return false, m.err
	}

	return m.taken[shortID], nil
}

// sequenceGenerator replays a fixed list of candidates.
func sequenceGenerator(ids ...string) link.Generator {
	i := 0

	return func() string {
		id := ids[i%len(ids)]
		i++

		return id
	}
}

func TestAllocator_Allocate(t *testing.T) {
	t.Run("returns a free identifier", func(t *testing.T) {
		index := &mapIndex{taken: map[string]bool{}}
		alloc := link.NewAllocator(index, sequenceGenerator("abc123"))

		id, err := alloc.Allocate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "abc123", id)
		assert.Equal(t, 1, index.calls)
	})

	t.Run("skips taken candidates", func(t *testing.T) {
		index := &mapIndex{taken: map[string]bool{"taken1": true, "taken2": true}}
		alloc := link.NewAllocator(index, sequenceGenerator("taken1", "taken2", "free99"))

		id, err := alloc.Allocate(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "free99", id)
		assert.Equal(t, 3, index.calls)
	})

	t.Run("gives up after the attempt cap", func(t *testing.T) {
		index := &mapIndex{taken: map[string]bool{"stuck0": true}}
		alloc := link.NewAllocator(index, sequenceGenerator("stuck0"))

		id, err := alloc.Allocate(context.Background())

		assert.Empty(t, id)
		assert.ErrorIs(t, err, link.ErrAllocationExhausted)
		assert.Equal(t, 50, index.calls)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		index := &mapIndex{err: errors.New("store down")}
		alloc := link.NewAllocator(index, sequenceGenerator("abc123"))

		_, err := alloc.Allocate(context.Background())

		assert.Error(t, err)
		assert.NotErrorIs(t, err, link.ErrAllocationExhausted)
	})
}
