// Package render builds the rendering surface of a rate card: a snapshot of
// every value derived from the settings and items, projected either to HTML
// for the on-screen preview or to a bitmap for export.
package render

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mmynk/ratecraft/internal/models"
)

// Fixed copy shown on every card.
const (
	FallbackTitle  = "Service Title"
	Subtitle       = "Rate Card"
	EmptyMessage   = "Add items to see them here."
	HeroKicker     = "What we do"
	HeroBlurb      = "Choose what fits your project. Transparent pricing, fast turnaround, and friendly revisions."
	DateLayout     = "Jan 2, 2006"
	SurfaceWidth   = 900
	maxPriceDigits = 3
)

// Options tune how a surface is built.
type Options struct {
	// Locale drives number grouping of prices. Defaults to English.
	Locale language.Tag

	// Now stamps the footer date. Defaults to time.Now.
	Now func() time.Time
}

// Row is one item as it appears on the card.
type Row struct {
	ID    string
	Name  string
	Unit  string
	Price string
	Image string
}

// Surface is a read-only snapshot of everything needed to draw a rate card.
type Surface struct {
	Title    string
	Note     string
	Date     string
	Logo     string
	Template models.Template
	Density  models.Density
	Font     models.Font
	Align    models.Align

	TitleSize float64
	PriceSize float64

	// Accent is the parsed accent colour; AccentSoft and AccentLight are the
	// same colour at 0x10 and 0x16 alpha.
	Accent      color.NRGBA
	AccentHex   string
	AccentSoft  string
	AccentLight string

	// Padding and Thumb depend on density.
	Padding float64
	Thumb   float64

	Items []Row

	// Width and Height are the logical size in CSS pixels.
	Width  int
	Height int
}

// Build derives a surface from settings and items.
func Build(s models.Settings, items []models.Item, opts Options) *Surface {
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	accentHex := s.Accent
	if !models.ValidAccent(accentHex) {
		accentHex = models.DefaultAccent
	}
	titleSize, priceSize := s.TitleSize, s.PriceSize
	if !models.ValidSize(titleSize) {
		titleSize = models.DefaultTitleSize
	}
	if !models.ValidSize(priceSize) {
		priceSize = models.DefaultPriceSize
	}

	title := s.Title
	if title == "" {
		title = FallbackTitle
	}

	sf := &Surface{
		Title:       title,
		Note:        s.Note,
		Date:        opts.Now().Format(DateLayout),
		Logo:        s.Logo,
		Template:    s.Template,
		Density:     s.Density,
		Font:        s.Font,
		Align:       s.Align,
		TitleSize:   titleSize,
		PriceSize:   priceSize,
		Accent:      parseHex(accentHex),
		AccentHex:   accentHex,
		AccentSoft:  accentHex + "10",
		AccentLight: accentHex + "16",
		Padding:     20,
		Thumb:       56,
		Width:       SurfaceWidth,
	}
	if !sf.Template.Valid() {
		sf.Template = models.DefaultTemplate
	}
	if !sf.Font.Valid() {
		sf.Font = models.DefaultFont
	}
	if !sf.Align.Valid() {
		sf.Align = models.DefaultAlign
	}
	if s.Density == models.DensityCompact {
		sf.Padding, sf.Thumb = 12, 40
	} else {
		sf.Density = models.DensityCozy
	}

	printer := message.NewPrinter(opts.Locale)
	symbol := CurrencySafe(s.Currency)
	sf.Items = make([]Row, len(items))
	for i, it := range items {
		sf.Items[i] = Row{
			ID:    it.ID,
			Name:  it.Name,
			Unit:  it.Unit,
			Price: symbol + FormatAmount(printer, it.Rate),
			Image: it.Image,
		}
	}

	sf.Height = int(sf.layout().Height + 0.5)
	return sf
}

// FormatAmount renders a price with locale digit grouping and at most three
// fraction digits.
func FormatAmount(p *message.Printer, v float64) string {
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(maxPriceDigits)))
}

// Blend returns the accent colour at the given alpha composited over white.
func (s *Surface) Blend(alpha uint8) color.NRGBA {
	mix := func(c uint8) uint8 {
		return uint8((int(c)*int(alpha) + 255*(255-int(alpha)) + 127) / 255)
	}
	return color.NRGBA{R: mix(s.Accent.R), G: mix(s.Accent.G), B: mix(s.Accent.B), A: 0xff}
}

func parseHex(h string) color.NRGBA {
	v, err := strconv.ParseUint(h[1:], 16, 32)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// String summarises the surface for logs.
func (s *Surface) String() string {
	return fmt.Sprintf("%s (%s, %d items, %dx%d)", s.Title, s.Template, len(s.Items), s.Width, s.Height)
}
