// Package picker implements milestone selection: weighted-by-recency
// sampling, anti-repeat tracking with exhaustion reset, and plain uniform
// choice.
package picker

import (
	"errors"
	"log"
	"math/rand"
	"sync"

	"github.com/jo/awesomejar/internal/catalog"
)

// ErrEmptyPool is returned when the resolved selection pool has no items.
var ErrEmptyPool = errors.New("no milestones available")

// Options selects the pool and the selection policy for a single pick.
type Options struct {
	// Category narrows the pool to one category when non-empty.
	Category string
	// Weighted favors more recently recorded milestones: each item's
	// weight is its 1-based insertion position. Stateless.
	Weighted bool
	// AvoidRepeats tracks returned ids in the session's seen set and
	// prefers unseen items until the whole catalog has been shown.
	AvoidRepeats bool
}

// Session owns the mutable selection state for one process: the seen set
// and the random source. Construct it once and pass it down; the zero
// value is not usable.
//
// All selection state is guarded by one mutex so that a concurrent HTTP
// trigger and chat command can't race the narrow/reset/record sequence
// (and because rand.Rand itself is not goroutine-safe).
type Session struct {
	cat *catalog.Catalog

	mu   sync.Mutex
	rng  *rand.Rand
	seen map[int]struct{}
}

// NewSession creates a selection session over cat using rng as its only
// source of randomness. Tests pass a seeded generator.
func NewSession(cat *catalog.Catalog, rng *rand.Rand) *Session {
	return &Session{
		cat:  cat,
		rng:  rng,
		seen: make(map[int]struct{}),
	}
}

// Pick returns one milestone from the catalog according to opts.
//
// Avoid-repeats ordering (preserved exactly): narrow the pool to unseen
// items, then reset the seen set if it has covered the full catalog, then
// select, then record. The reset check uses the catalog's total size, not
// the filtered pool size, so a narrow category filter does not trigger
// spurious resets.
func (s *Session) Pick(opts Options) (catalog.Item, error) {
	pool := s.cat.Items()
	if opts.Category != "" {
		items, ok := s.cat.Category(opts.Category)
		if !ok {
			return catalog.Item{}, &catalog.UnknownCategoryError{
				Category: opts.Category,
				Valid:    s.cat.Categories(),
			}
		}
		pool = items
	}
	if len(pool) == 0 {
		return catalog.Item{}, ErrEmptyPool
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if opts.Weighted {
		return s.pickWeighted(pool), nil
	}
	if opts.AvoidRepeats {
		return s.pickAvoidingRepeats(pool), nil
	}
	return pool[s.rng.Intn(len(pool))], nil
}

// pickWeighted samples with replacement, weight = 1-based position in
// insertion order, so newer milestones are proportionally more likely.
func (s *Session) pickWeighted(pool []catalog.Item) catalog.Item {
	n := len(pool)
	total := n * (n + 1) / 2
	r := s.rng.Intn(total)
	for i := range pool {
		r -= i + 1
		if r < 0 {
			return pool[i]
		}
	}
	return pool[n-1] // unreachable
}

func (s *Session) pickAvoidingRepeats(pool []catalog.Item) catalog.Item {
	// Narrow to unseen items while any remain in this pool. If every item
	// in the pool has been seen, keep the full pool (a single-item pool
	// just repeats its item).
	if len(s.seen) < len(pool) {
		unseen := make([]catalog.Item, 0, len(pool))
		for _, it := range pool {
			if _, ok := s.seen[it.ID]; !ok {
				unseen = append(unseen, it)
			}
		}
		if len(unseen) > 0 {
			pool = unseen
		}
	}

	if len(s.seen) >= s.cat.Len() {
		log.Println("resetting seen milestones - all have been shown once")
		s.seen = make(map[int]struct{})
	}

	selected := pool[s.rng.Intn(len(pool))]
	s.seen[selected.ID] = struct{}{}
	return selected
}

// ResetUsage clears the seen set so every milestone is eligible again.
func (s *Session) ResetUsage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[int]struct{})
	log.Println("milestone usage tracking reset")
}

// SeenCount reports how many distinct milestones have been shown since the
// last reset.
func (s *Session) SeenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Catalog returns the catalog this session selects from.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}
