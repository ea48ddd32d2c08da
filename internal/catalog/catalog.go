// Package catalog holds the ordered list of priced items shown on a rate card.
//
// Every mutation is validated and reported through its return value: an
// invalid draft or unknown id is a rejection, not a failure. Repository is
// not safe for concurrent use; the editor session serialises access to it.
package catalog

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/ratecraft/internal/models"
)

var (
	ErrEmptyName   = errors.New("name must not be empty")
	ErrEmptyUnit   = errors.New("unit must not be empty")
	ErrInvalidRate = errors.New("rate must be a finite number")
	ErrNotFound    = errors.New("item not found")

	// ErrIncompleteOrder is returned by Reorder when the requested order
	// leaves out items that are still in the list.
	ErrIncompleteOrder = errors.New("order must include every item")
)

// Validate checks a draft and returns the normalised fields of the item it
// would produce.
func Validate(d models.Draft) (name, unit string, rate float64, err error) {
	name = strings.TrimSpace(d.Name)
	if name == "" {
		return "", "", 0, ErrEmptyName
	}
	unit = strings.TrimSpace(d.Unit)
	if unit == "" {
		return "", "", 0, ErrEmptyUnit
	}
	rate, ok := ParseRate(d.Rate)
	if !ok {
		return "", "", 0, ErrInvalidRate
	}
	return name, unit, rate, nil
}

// ParseRate parses rate text into a finite number.
// Blank text, NaN and infinities are rejected.
func ParseRate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatRate renders a rate back into draft text.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// Repository is an in-memory ordered list of items.
type Repository struct {
	items []models.Item
	newID func() string
}

// NewRepository creates an empty Repository that assigns UUIDs to new items.
func NewRepository() *Repository {
	return &Repository{newID: uuid.NewString}
}

// Items returns a copy of the current list.
func (r *Repository) Items() []models.Item {
	out := make([]models.Item, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of items.
func (r *Repository) Len() int {
	return len(r.items)
}

// Get returns the item with the given id.
func (r *Repository) Get(id string) (models.Item, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.items[i], true
	}
	return models.Item{}, false
}

// Replace swaps the whole list, e.g. when rehydrating from storage.
// Items with empty or duplicate ids are skipped.
func (r *Repository) Replace(items []models.Item) {
	seen := make(map[string]bool, len(items))
	next := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		next = append(next, it)
	}
	r.items = next
}

// Clear removes every item.
func (r *Repository) Clear() {
	r.items = nil
}

// Add validates d and appends a new item with a fresh id.
func (r *Repository) Add(d models.Draft) (models.Item, error) {
	name, unit, rate, err := Validate(d)
	if err != nil {
		return models.Item{}, err
	}
	item := models.Item{
		ID:    r.uniqueID(),
		Name:  name,
		Unit:  unit,
		Rate:  rate,
		Image: d.Image,
	}
	next := make([]models.Item, len(r.items), len(r.items)+1)
	copy(next, r.items)
	r.items = append(next, item)
	return item, nil
}

// Update validates d and replaces name, unit, rate and image of the item
// with the given id. Position and id are preserved.
func (r *Repository) Update(id string, d models.Draft) (models.Item, error) {
	name, unit, rate, err := Validate(d)
	if err != nil {
		return models.Item{}, err
	}
	i := r.indexOf(id)
	if i < 0 {
		return models.Item{}, ErrNotFound
	}
	next := r.Items()
	next[i] = models.Item{ID: id, Name: name, Unit: unit, Rate: rate, Image: d.Image}
	r.items = next
	return next[i], nil
}

// Remove deletes the item with the given id. It reports whether an item was removed.
func (r *Repository) Remove(id string) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]models.Item, 0, len(r.items)-1)
	next = append(next, r.items[:i]...)
	r.items = append(next, r.items[i+1:]...)
	return true
}

// Move swaps the item with its neighbour in the given direction.
// Moving the first item up or the last item down does nothing.
func (r *Repository) Move(id string, dir models.Direction) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	j := i + int(dir)
	if j < 0 || j >= len(r.items) {
		return false
	}
	next := r.Items()
	next[i], next[j] = next[j], next[i]
	r.items = next
	return true
}

// Reorder re-sorts the list to follow ids. See Reordered for the rules.
func (r *Repository) Reorder(ids []string) error {
	next, err := Reordered(r.items, ids)
	if err != nil {
		return err
	}
	r.items = next
	return nil
}

// Reordered returns items arranged in the order given by ids.
// Ids that are not in items are dropped, since the caller may have built the
// order from a stale list. Repeated ids count once. If the result would lose
// any item, ErrIncompleteOrder is returned instead.
func Reordered(items []models.Item, ids []string) ([]models.Item, error) {
	byID := make(map[string]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	next := make([]models.Item, 0, len(items))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			continue
		}
		delete(byID, id)
		next = append(next, it)
	}
	if len(byID) > 0 {
		return nil, ErrIncompleteOrder
	}
	return next, nil
}

func (r *Repository) indexOf(id string) int {
	for i, it := range r.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (r *Repository) uniqueID() string {
	for {
		id := r.newID()
		if r.indexOf(id) < 0 {
			return id
		}
	}
}
