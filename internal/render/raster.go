package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/mmynk/ratecraft/internal/media"
	"github.com/mmynk/ratecraft/internal/models"
)

var (
	ink      = color.NRGBA{0x17, 0x17, 0x17, 0xff}
	body     = color.NRGBA{0x52, 0x52, 0x52, 0xff}
	muted    = color.NRGBA{0x73, 0x73, 0x73, 0xff}
	faint    = color.NRGBA{0xa3, 0xa3, 0xa3, 0xff}
	dashes   = color.NRGBA{0xd4, 0xd4, 0xd4, 0xff}
	hairline = color.NRGBA{0xe5, 0xe5, 0xe5, 0xff}
	wash     = color.NRGBA{0xfa, 0xfa, 0xfa, 0xff}
)

// ErrEmptySurface is returned when asked to draw a surface with no area.
var ErrEmptySurface = errors.New("surface has no area")

type fontPair struct {
	regular, bold *opentype.Font
}

// The Go font family has no serif face; the italic cut stands in for it.
var loadFonts = sync.OnceValues(func() (map[models.Font]fontPair, error) {
	sources := map[models.Font][2][]byte{
		models.FontSans:  {goregular.TTF, gobold.TTF},
		models.FontSerif: {goitalic.TTF, gobolditalic.TTF},
		models.FontMono:  {gomono.TTF, gomonobold.TTF},
	}
	out := make(map[models.Font]fontPair, len(sources))
	for name, src := range sources {
		regular, err := opentype.Parse(src[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s font: %w", name, err)
		}
		bold, err := opentype.Parse(src[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s bold font: %w", name, err)
		}
		out[name] = fontPair{regular: regular, bold: bold}
	}
	return out, nil
})

// faces are the sized font faces used for one rasterization.
type faces struct {
	title, caption, label, price, body font.Face
}

func newFaces(s *Surface, scale float64) (*faces, error) {
	all, err := loadFonts()
	if err != nil {
		return nil, err
	}
	pair := all[s.Font]

	var opened []font.Face
	open := func(f *opentype.Font, size float64) (font.Face, error) {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size * scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			for _, o := range opened {
				o.Close()
			}
			return nil, fmt.Errorf("failed to create font face: %w", err)
		}
		opened = append(opened, face)
		return face, nil
	}

	fs := &faces{}
	if fs.title, err = open(pair.bold, s.TitleSize); err != nil {
		return nil, err
	}
	if fs.caption, err = open(pair.regular, captionSize); err != nil {
		return nil, err
	}
	if fs.label, err = open(pair.bold, labelSize); err != nil {
		return nil, err
	}
	if fs.price, err = open(pair.bold, s.PriceSize); err != nil {
		return nil, err
	}
	if fs.body, err = open(pair.regular, labelSize); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.caption, f.label, f.price, f.body} {
		face.Close()
	}
}

// Rasterize draws the surface at scale device pixels per logical pixel onto
// an opaque background.
func Rasterize(s *Surface, scale float64, background color.Color) (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 || scale <= 0 {
		return nil, ErrEmptySurface
	}
	fs, err := newFaces(s, scale)
	if err != nil {
		return nil, err
	}
	defer fs.Close()

	w := int(math.Ceil(float64(s.Width) * scale))
	h := int(math.Ceil(float64(s.Height) * scale))
	c := &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), k: scale}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	l := s.layout()
	s.drawHeader(c, fs, l)
	switch s.Template {
	case models.TemplateRows:
		s.drawRows(c, fs, l)
	case models.TemplateBillboard:
		s.drawBillboard(c, fs, l)
	default:
		s.drawCards(c, fs, l)
	}
	if l.HasEmpty {
		c.dashed(l.Empty, dashes)
		c.text(fs.body, EmptyMessage, box{l.Empty.X, l.Empty.Y + (emptyHeight-labelSize)/2, l.Empty.W, labelSize}, muted, models.AlignCenter)
	}
	s.drawFooter(c, fs, l)
	return c.img, nil
}

func (s *Surface) drawHeader(c *canvas, fs *faces, l layout) {
	light := s.Blend(0x16)
	c.gradient(l.Bar, s.Accent, light)

	title := box{l.TitleBlock.X, l.TitleBlock.Y + (l.TitleBlock.H-s.titleLine()-4-captionSize*lineHeight)/2, l.TitleBlock.W, s.titleLine()}
	c.text(fs.title, s.Title, title, s.Accent, s.Align)
	c.text(fs.caption, Subtitle, box{title.X, title.bottom() + 4, title.W, captionSize * lineHeight}, muted, s.Align)

	if s.Logo != "" {
		if img, err := media.Load(s.Logo); err == nil {
			c.picture(img, fit(img.Bounds(), l.Logo), false)
			return
		}
	}
	c.placeholder(l.Logo)
}

func (s *Surface) drawCards(c *canvas, fs *faces, l layout) {
	border := s.Blend(0x10)
	for i, ib := range l.Items {
		row := s.Items[i]
		c.stroke(ib.Frame, border)
		c.fill(box{ib.Frame.X, ib.Frame.Y, ib.Frame.W, cardStrip}, s.Accent)
		s.drawThumb(c, row, ib.Thumb)
		s.drawLabel(c, fs, row, ib.Label)
		c.text(fs.price, row.Price, ib.Price, s.Accent, s.Align)
	}
}

func (s *Surface) drawRows(c *canvas, fs *faces, l layout) {
	c.fill(l.TableHead, wash)
	head := box{l.TableHead.X + 16, l.TableHead.Y + (tableHead-captionSize)/2, l.TableHead.W - 32, captionSize * lineHeight}
	c.text(fs.caption, "Item", head, body, models.AlignLeft)
	c.text(fs.caption, "Price", head, body, models.AlignRight)

	for i, ib := range l.Items {
		row := s.Items[i]
		if i > 0 {
			c.fill(box{ib.Frame.X, ib.Frame.Y, ib.Frame.W, 1}, wash)
		}
		s.drawThumb(c, row, ib.Thumb)
		s.drawLabel(c, fs, row, ib.Label)
		c.text(fs.price, row.Price, ib.Price, s.Accent, s.Align)
	}
	c.stroke(l.Table, hairline)
}

func (s *Surface) drawBillboard(c *canvas, fs *faces, l layout) {
	c.fill(l.Hero, s.Blend(0x10))
	c.stroke(l.Hero, s.Blend(0x10))

	y := l.Hero.Y + heroPad
	inner := l.Hero.W - 2*heroPad
	c.text(fs.body, HeroKicker, box{l.Hero.X + heroPad, y, inner, labelSize * lineHeight}, muted, models.AlignLeft)
	y += labelSize*lineHeight + 8
	c.text(fs.title, s.Title, box{l.Hero.X + heroPad, y, inner, s.titleLine()}, s.Accent, models.AlignLeft)
	y += s.titleLine() + 12
	c.paragraph(fs.body, HeroBlurb, box{l.Hero.X + heroPad, y, inner, 2 * labelSize * lineHeight * 1.2}, body)

	for i, ib := range l.Items {
		row := s.Items[i]
		c.fill(ib.Frame, color.White)
		c.stroke(ib.Frame, hairline)
		s.drawThumb(c, row, ib.Thumb)
		s.drawLabel(c, fs, row, ib.Label)
		c.text(fs.price, row.Price, ib.Price, s.Accent, s.Align)
	}
}

func (s *Surface) drawThumb(c *canvas, row Row, b box) {
	if row.Image != "" {
		if img, err := media.Load(row.Image); err == nil {
			c.picture(img, b, true)
			c.stroke(b, hairline)
			return
		}
	}
	c.placeholder(b)
}

func (s *Surface) drawLabel(c *canvas, fs *faces, row Row, b box) {
	top := b.Y + (b.H-(labelSize+captionSize)*lineHeight)/2
	c.text(fs.label, row.Name, box{b.X, top, b.W, labelSize * lineHeight}, ink, models.AlignLeft)
	c.text(fs.caption, row.Unit, box{b.X, top + labelSize*lineHeight, b.W, captionSize * lineHeight}, muted, models.AlignLeft)
}

func (s *Surface) drawFooter(c *canvas, fs *faces, l layout) {
	c.fill(l.Footer, wash)
	line := box{padX, l.Footer.Y + footerPadY, l.Footer.W - 2*padX, captionSize * lineHeight}
	dateW := measure(fs.caption, s.Date)/c.k + gap
	c.text(fs.caption, s.Note, box{line.X, line.Y, line.W - dateW, line.H}, muted, models.AlignLeft)
	c.text(fs.caption, s.Date, line, muted, models.AlignRight)
}

// fit returns the largest box with the aspect ratio of r that fits in b,
// anchored to the right edge and centred vertically.
func fit(r image.Rectangle, b box) box {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return b
	}
	k := math.Min(b.W/float64(r.Dx()), b.H/float64(r.Dy()))
	w, h := float64(r.Dx())*k, float64(r.Dy())*k
	return box{b.right() - w, b.Y + (b.H-h)/2, w, h}
}

// canvas draws logical-pixel boxes onto a device-pixel image.
type canvas struct {
	img *image.RGBA
	k   float64
}

func (c *canvas) rect(b box) image.Rectangle {
	return image.Rect(
		int(math.Floor(b.X*c.k)), int(math.Floor(b.Y*c.k)),
		int(math.Ceil(b.right()*c.k)), int(math.Ceil(b.bottom()*c.k)),
	)
}

func (c *canvas) fill(b box, col color.Color) {
	draw.Draw(c.img, c.rect(b), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *canvas) stroke(b box, col color.Color) {
	c.fill(box{b.X, b.Y, b.W, 1}, col)
	c.fill(box{b.X, b.bottom() - 1, b.W, 1}, col)
	c.fill(box{b.X, b.Y, 1, b.H}, col)
	c.fill(box{b.right() - 1, b.Y, 1, b.H}, col)
}

func (c *canvas) dashed(b box, col color.Color) {
	const dash, space = 6.0, 4.0
	for x := b.X; x < b.right(); x += dash + space {
		w := math.Min(dash, b.right()-x)
		c.fill(box{x, b.Y, w, 1}, col)
		c.fill(box{x, b.bottom() - 1, w, 1}, col)
	}
	for y := b.Y; y < b.bottom(); y += dash + space {
		h := math.Min(dash, b.bottom()-y)
		c.fill(box{b.X, y, 1, h}, col)
		c.fill(box{b.right() - 1, y, 1, h}, col)
	}
}

func (c *canvas) placeholder(b box) {
	c.fill(b, wash)
	c.stroke(b, hairline)
}

// gradient fills b with a horizontal blend from one colour to another.
func (c *canvas) gradient(b box, from, to color.NRGBA) {
	r := c.rect(b)
	span := float64(max(r.Dx()-1, 1))
	lerp := func(a, z uint8, t float64) uint8 { return uint8(float64(a) + (float64(z)-float64(a))*t + 0.5) }
	for x := r.Min.X; x < r.Max.X; x++ {
		t := float64(x-r.Min.X) / span
		col := color.NRGBA{lerp(from.R, to.R, t), lerp(from.G, to.G, t), lerp(from.B, to.B, t), 0xff}
		draw.Draw(c.img, image.Rect(x, r.Min.Y, x+1, r.Max.Y), image.NewUniform(col), image.Point{}, draw.Src)
	}
}

// picture scales src into b. With cover set the source is cropped to the
// aspect ratio of b first.
func (c *canvas) picture(src image.Image, b box, cover bool) {
	sr := src.Bounds()
	if cover && sr.Dx() > 0 && sr.Dy() > 0 {
		want := b.W / b.H
		have := float64(sr.Dx()) / float64(sr.Dy())
		if have > want {
			w := int(float64(sr.Dy()) * want)
			x := sr.Min.X + (sr.Dx()-w)/2
			sr = image.Rect(x, sr.Min.Y, x+w, sr.Max.Y)
		} else if have < want {
			h := int(float64(sr.Dx()) / want)
			y := sr.Min.Y + (sr.Dy()-h)/2
			sr = image.Rect(sr.Min.X, y, sr.Max.X, y+h)
		}
	}
	draw.CatmullRom.Scale(c.img, c.rect(b), src, sr, draw.Over, nil)
}

// text draws a single line inside b, truncated with an ellipsis to fit.
func (c *canvas) text(face font.Face, s string, b box, col color.Color, align models.Align) {
	maxW := b.W * c.k
	s = truncate(face, s, maxW)
	w := measure(face, s)

	x := b.X * c.k
	switch align {
	case models.AlignCenter:
		x += (maxW - w) / 2
	case models.AlignRight:
		x += maxW - w
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(int(x), int(b.Y*c.k)+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// paragraph wraps s on word boundaries and draws as many lines as fit in b.
func (c *canvas) paragraph(face font.Face, s string, b box, col color.Color) {
	lineH := float64(face.Metrics().Height.Ceil()) / c.k * 1.2
	y := b.Y
	for _, line := range wrap(face, s, b.W*c.k) {
		if y+lineH > b.bottom()+1 {
			break
		}
		c.text(face, line, box{b.X, y, b.W, lineH}, col, models.AlignLeft)
		y += lineH
	}
}

func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

func truncate(face font.Face, s string, maxW float64) string {
	if measure(face, s) <= maxW {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if measure(face, candidate) <= maxW {
			return candidate
		}
	}
	return ""
}

func wrap(face font.Face, s string, maxW float64) []string {
	var lines []string
	var cur string
	for _, word := range splitWords(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if cur != "" && measure(face, next) > maxW {
			lines = append(lines, cur)
			next = word
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
