package link

import "context"

// maxAllocateAttempts bounds worst-case allocation latency. With 62^6
// identifiers a second collision in a row is already astronomically
// unlikely, the cap exists so a degenerate store cannot spin forever.
const maxAllocateAttempts = 50

// ShortIDIndex is the slice of the repository the allocator needs.
type ShortIDIndex interface {
	ShortIDExists(ctx context.Context, shortID string) (bool, error)
}

// Allocator finds free short identifiers. The existence loop is an
// optimization, not a correctness guarantee: two concurrent allocations may
// both pass the check for the same candidate, and the store's unique
// constraint settles the race at insert time.
type Allocator struct {
	index    ShortIDIndex
	generate Generator
}

// NewAllocator creates an allocator over the given index and random source.
func NewAllocator(index ShortIDIndex, generate Generator) *Allocator {
	return &Allocator{index: index, generate: generate}
}

// Allocate returns an identifier that is unused at the moment of the check.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for i := 0; i < maxAllocateAttempts; i++ {
		candidate := a.generate()

		exists, err := a.index.ShortIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}

		if !exists {
			return candidate, nil
		}
	}

	return "", ErrAllocationExhausted
}
