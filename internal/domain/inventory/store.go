package inventory

import (
	"strings"

	"golang.org/x/text/cases"
)

// Store holds the item collection in insertion order.
//
// Store is not safe for concurrent use; Service adds the locking needed by
// concurrent callers. Lookups are linear scans.
type Store struct {
	items []Item
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Validate checks d against the collection without mutating it: required
// fields first, then id uniqueness, then non-negative quantity and price.
// The first failing rule is returned.
func (s *Store) Validate(d Draft) error {
	return s.validate(d, -1)
}

// validate is Validate with the item at index skip exempt from the id
// uniqueness rule; skip < 0 exempts nothing.
func (s *Store) validate(d Draft, skip int) error {
	if missing := d.missingFields(); len(missing) > 0 {
		return errMissingFields(missing)
	}
	if !s.idAvailable(d.ID, skip) {
		return errDuplicateID(d.ID)
	}
	if *d.Quantity < 0 {
		return errNegative("quantity")
	}
	if d.Price.IsNegative() {
		return errNegative("price")
	}
	return nil
}

func (s *Store) idAvailable(id string, skip int) bool {
	for i, item := range s.items {
		if i != skip && item.ID == id {
			return false
		}
	}
	return true
}

// Add validates d and appends it to the collection.
func (s *Store) Add(d Draft) error {
	if err := s.Validate(d); err != nil {
		return err
	}
	s.items = append(s.items, d.item())
	return nil
}

// FindByName returns the first item whose name equals name, ignoring case.
func (s *Store) FindByName(name string) (Item, error) {
	i := s.indexByName(name)
	if i < 0 {
		return Item{}, errNotFound(name)
	}
	return s.items[i].clone(), nil
}

// UpdateByName replaces the first item named name with d.
// d may keep the replaced item's id; any other id must be unused.
func (s *Store) UpdateByName(name string, d Draft) error {
	i := s.indexByName(name)
	if i < 0 {
		return errNotFound(name)
	}
	if err := s.validate(d, i); err != nil {
		return err
	}
	s.items[i] = d.item()
	return nil
}

// DeleteByName removes the first item named name. Nothing is removed unless
// confirmed is true.
func (s *Store) DeleteByName(name string, confirmed bool) error {
	if !confirmed {
		return errNotConfirmed(name)
	}
	i := s.indexByName(name)
	if i < 0 {
		return errNotFound(name)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// SearchByName returns items whose name contains substr, ignoring case.
// An empty substr matches every item.
func (s *Store) SearchByName(substr string) []Item {
	needle := fold(substr)
	return s.filter(func(item Item) bool {
		return strings.Contains(fold(item.Name), needle)
	})
}

// ListAll returns every item in insertion order.
func (s *Store) ListAll() []Item {
	return s.filter(func(Item) bool { return true })
}

// ListPopular returns the items flagged popular in insertion order.
func (s *Store) ListPopular() []Item {
	return s.filter(func(item Item) bool { return item.Popular })
}

func (s *Store) filter(keep func(Item) bool) []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item.clone())
		}
	}
	return out
}

func (s *Store) indexByName(name string) int {
	key := fold(name)
	for i, item := range s.items {
		if fold(item.Name) == key {
			return i
		}
	}
	return -1
}

// fold maps s to its case-folded form for caseless comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}
