package models

import "math"

// Template selects one of the mutually exclusive rate card layouts.
type Template string

const (
	TemplateCards     Template = "cards"
	TemplateRows      Template = "rows"
	TemplateBillboard Template = "billboard"
)

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	switch t {
	case TemplateCards, TemplateRows, TemplateBillboard:
		return true
	}
	return false
}

// Density controls padding and thumbnail size.
type Density string

const (
	DensityCozy    Density = "cozy"
	DensityCompact Density = "compact"
)

// Valid reports whether d is a known density.
func (d Density) Valid() bool {
	return d == DensityCozy || d == DensityCompact
}

// Font is the font family class used on the rendering surface.
type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

// Valid reports whether f is a known font family.
func (f Font) Valid() bool {
	switch f {
	case FontSans, FontSerif, FontMono:
		return true
	}
	return false
}

// Align is the horizontal alignment of titles and prices.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Valid reports whether a is a known alignment.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// Defaults used at first run, for malformed persisted values, and on reset.
const (
	DefaultTitle     = "Your Service Title"
	DefaultCurrency  = "₹"
	DefaultAccent    = "#111827"
	DefaultTemplate  = TemplateCards
	DefaultDensity   = DensityCozy
	DefaultNote      = "Prices are inclusive of basic edits. Taxes extra."
	DefaultFont      = FontSans
	DefaultTitleSize = 24.0
	DefaultPriceSize = 18.0
	DefaultAlign     = AlignRight
)

// Settings is the scalar presentation configuration of a rate card.
// Each field is persisted independently; there are no cross-field invariants.
type Settings struct {
	Title    string `json:"title"`
	Currency string `json:"currency"`

	// Accent is a "#rrggbb" hex colour.
	Accent string `json:"accent"`

	// Logo is an optional data URL. Empty means absent.
	Logo string `json:"logo,omitempty"`

	Template Template `json:"template"`
	Density  Density  `json:"density"`
	Note     string   `json:"note"`
	Font     Font     `json:"font"`

	// TitleSize and PriceSize are positive pixel sizes.
	TitleSize float64 `json:"titleSize"`
	PriceSize float64 `json:"priceSize"`

	Align Align `json:"align"`
}

// DefaultSettings returns the documented default configuration.
func DefaultSettings() Settings {
	return Settings{
		Title:     DefaultTitle,
		Currency:  DefaultCurrency,
		Accent:    DefaultAccent,
		Template:  DefaultTemplate,
		Density:   DefaultDensity,
		Note:      DefaultNote,
		Font:      DefaultFont,
		TitleSize: DefaultTitleSize,
		PriceSize: DefaultPriceSize,
		Align:     DefaultAlign,
	}
}

// ValidAccent reports whether s is a "#rrggbb" hex colour.
func ValidAccent(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ValidSize reports whether v is usable as a text size in pixels.
func ValidSize(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
