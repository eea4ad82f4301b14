package picker

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jo/awesomejar/internal/catalog"
)

func newTestSession(items []catalog.Item, seed int64) *Session {
	return NewSession(catalog.New(items), rand.New(rand.NewSource(seed)))
}

func threeItems() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Category: "工作成就", Text: "oldest"},
		{ID: 2, Category: "工作成就", Text: "middle"},
		{ID: 3, Category: "生活", Text: "newest"},
	}
}

// --- pool resolution ---

func TestPick_UnknownCategory(t *testing.T) {
	s := newTestSession(threeItems(), 1)
	_, err := s.Pick(Options{Category: "運動"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	var unknownCat *catalog.UnknownCategoryError
	if !errors.As(err, &unknownCat) {
		t.Fatalf("expected UnknownCategoryError, got %T: %v", err, err)
	}
	if unknownCat.Category != "運動" {
		t.Errorf("error category = %q, want %q", unknownCat.Category, "運動")
	}
	if len(unknownCat.Valid) != 2 {
		t.Errorf("valid categories = %v, want 2 entries", unknownCat.Valid)
	}
}

func TestPick_CategoryIsCaseSensitive(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Category: "Work", Text: "a"},
		{ID: 2, Category: "work", Text: "b"},
	}
	s := newTestSession(items, 1)
	it, err := s.Pick(Options{Category: "work"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ID != 2 {
		t.Errorf("picked id %d, want 2 (exact-case bucket)", it.ID)
	}
}

func TestPick_EmptyCatalog(t *testing.T) {
	s := newTestSession(nil, 1)
	_, err := s.Pick(Options{})
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestPick_NeverOutsidePool(t *testing.T) {
	s := newTestSession(threeItems(), 42)
	for i := 0; i < 200; i++ {
		it, err := s.Pick(Options{Category: "工作成就", AvoidRepeats: true})
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if it.Category != "工作成就" {
			t.Fatalf("pick %d returned category %q outside the pool", i, it.Category)
		}
	}
}

// --- weighted mode ---

func TestPickWeighted_Distribution(t *testing.T) {
	s := newTestSession(threeItems(), 7)
	const draws = 10000
	counts := make(map[int]int)
	for i := 0; i < draws; i++ {
		it, err := s.Pick(Options{Weighted: true})
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		counts[it.ID]++
	}

	// Weights 1:2:3 → expected shares 1/6, 2/6, 3/6.
	expected := map[int]float64{1: 1.0 / 6, 2: 2.0 / 6, 3: 3.0 / 6}
	for id, want := range expected {
		got := float64(counts[id]) / draws
		if got < want*0.85 || got > want*1.15 {
			t.Errorf("id %d frequency = %.3f, want %.3f ± 15%%", id, got, want)
		}
	}
}

func TestPickWeighted_NoSeenTracking(t *testing.T) {
	s := newTestSession(threeItems(), 7)
	for i := 0; i < 10; i++ {
		if _, err := s.Pick(Options{Weighted: true}); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
	if got := s.SeenCount(); got != 0 {
		t.Errorf("weighted mode recorded %d seen items, want 0", got)
	}
}

// --- avoid-repeats mode ---

func TestPickAvoidRepeats_FullCoverageBeforeRepeat(t *testing.T) {
	items := make([]catalog.Item, 8)
	for i := range items {
		items[i] = catalog.Item{ID: i + 1, Category: "c", Text: "t"}
	}
	s := newTestSession(items, 99)

	got := make(map[int]bool)
	for i := 0; i < len(items); i++ {
		it, err := s.Pick(Options{AvoidRepeats: true})
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if got[it.ID] {
			t.Fatalf("id %d repeated before full coverage", it.ID)
		}
		got[it.ID] = true
	}
	if len(got) != len(items) {
		t.Errorf("covered %d ids, want %d", len(got), len(items))
	}
}

func TestPickAvoidRepeats_ResetAfterExhaustion(t *testing.T) {
	items := make([]catalog.Item, 4)
	for i := range items {
		items[i] = catalog.Item{ID: i + 1, Category: "c", Text: "t"}
	}
	s := newTestSession(items, 3)

	for i := 0; i < len(items); i++ {
		if _, err := s.Pick(Options{AvoidRepeats: true}); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
	if got := s.SeenCount(); got != len(items) {
		t.Fatalf("seen = %d after exhaustion, want %d", got, len(items))
	}

	// The next call resets the seen set and draws from the full catalog
	// again, so exactly one id is recorded afterwards.
	if _, err := s.Pick(Options{AvoidRepeats: true}); err != nil {
		t.Fatalf("post-exhaustion pick: %v", err)
	}
	if got := s.SeenCount(); got != 1 {
		t.Errorf("seen = %d after reset, want 1", got)
	}
}

func TestPickAvoidRepeats_ResetUsesCatalogSizeNotPool(t *testing.T) {
	// One tiny category inside a big catalog: picking only from the small
	// category must never trigger the exhaustion reset.
	items := []catalog.Item{{ID: 1, Category: "small", Text: "t"}}
	for i := 2; i <= 10; i++ {
		items = append(items, catalog.Item{ID: i, Category: "big", Text: "t"})
	}
	s := newTestSession(items, 5)

	for i := 0; i < 20; i++ {
		it, err := s.Pick(Options{Category: "small", AvoidRepeats: true})
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if it.ID != 1 {
			t.Fatalf("pick %d returned id %d, want 1", i, it.ID)
		}
		if got := s.SeenCount(); got != 1 {
			t.Fatalf("pick %d: seen = %d, want 1 (no spurious reset)", i, got)
		}
	}
}

func TestPickAvoidRepeats_SingleItemCatalog(t *testing.T) {
	s := newTestSession([]catalog.Item{{ID: 7, Category: "c", Text: "only"}}, 11)
	for i := 0; i < 50; i++ {
		it, err := s.Pick(Options{AvoidRepeats: true})
		if err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if it.ID != 7 {
			t.Fatalf("pick %d returned id %d, want 7", i, it.ID)
		}
	}
}

// --- plain mode / reset ---

func TestPickPlain_NoStateMutation(t *testing.T) {
	s := newTestSession(threeItems(), 2)
	for i := 0; i < 10; i++ {
		if _, err := s.Pick(Options{}); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
	if got := s.SeenCount(); got != 0 {
		t.Errorf("plain mode recorded %d seen items, want 0", got)
	}
}

func TestResetUsage(t *testing.T) {
	s := newTestSession(threeItems(), 2)
	if _, err := s.Pick(Options{AvoidRepeats: true}); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if s.SeenCount() == 0 {
		t.Fatal("expected seen item before reset")
	}
	s.ResetUsage()
	if got := s.SeenCount(); got != 0 {
		t.Errorf("seen = %d after reset, want 0", got)
	}
}
