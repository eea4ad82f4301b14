package catalog

import (
	"fmt"
	"strings"
)

// Item is a single pre-authored milestone. Items are created at load time
// and never mutated.
type Item struct {
	ID       int
	Category string
	Text     string
}

// Catalog holds the full ordered milestone list plus its category grouping.
// Insertion order is meaningful: later items are treated as more recent.
type Catalog struct {
	items      []Item
	byCategory map[string][]Item
	categories []string // category names in first-seen order
}

// New builds a catalog from items in insertion order.
func New(items []Item) *Catalog {
	c := &Catalog{byCategory: make(map[string][]Item)}
	for _, it := range items {
		c.add(it)
	}
	return c
}

func (c *Catalog) add(it Item) {
	c.items = append(c.items, it)
	if _, ok := c.byCategory[it.Category]; !ok {
		c.categories = append(c.categories, it.Category)
	}
	c.byCategory[it.Category] = append(c.byCategory[it.Category], it)
}

// Items returns all milestones in insertion order.
func (c *Catalog) Items() []Item {
	return c.items
}

// Category returns the milestones in the named category, in insertion order.
// Category names match exactly; no case normalization.
func (c *Catalog) Category(name string) ([]Item, bool) {
	items, ok := c.byCategory[name]
	return items, ok
}

// Categories returns category names in first-seen order.
func (c *Catalog) Categories() []string {
	return c.categories
}

// Stats returns the milestone count per category. The counts sum to Len().
func (c *Catalog) Stats() map[string]int {
	stats := make(map[string]int, len(c.byCategory))
	for cat, items := range c.byCategory {
		stats[cat] = len(items)
	}
	return stats
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// UnknownCategoryError reports a category filter that doesn't exist in the
// catalog, carrying the valid names so callers can show them.
type UnknownCategoryError struct {
	Category string
	Valid    []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %q not found (valid: %s)", e.Category, strings.Join(e.Valid, ", "))
}
