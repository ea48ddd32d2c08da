package models

// DefaultUnit is the unit placeholder of a freshly cleared Draft.
const DefaultUnit = "per unit"

// Item represents a single priced line entry on a rate card.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	// Generated at creation, never reused and never recomputed.
	ID string `json:"id"`

	// Name is the display label (e.g., "Recording"). Trimmed, never empty.
	Name string `json:"name"`

	// Unit is the pricing unit label (e.g., "per hour"). Trimmed, never empty.
	Unit string `json:"unit"`

	// Rate is the price. Always finite; negative values are not rejected.
	Rate float64 `json:"rate"`

	// Image is an optional data URL thumbnail owned by this item.
	Image string `json:"image,omitempty"`
}

// Draft is the transient form state for creating or editing one Item.
// Rate is kept as text so the buffer tolerates partial input while typing.
type Draft struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Rate  string `json:"rate"`
	Image string `json:"image,omitempty"`
}

// EmptyDraft returns the cleared form state.
func EmptyDraft() Draft {
	return Draft{Unit: DefaultUnit}
}

// Direction is the direction of a single-step move in the item list.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// ParseDirection converts "up"/"down" into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	}
	return 0, false
}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}
