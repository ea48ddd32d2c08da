package render

import (
	"math"

	"github.com/mmynk/ratecraft/internal/models"
)

// Geometry in logical pixels.
const (
	accentBar   = 8.0
	padX        = 32.0
	headerPadY  = 24.0
	logoSize    = 48.0
	captionSize = 12.0
	labelSize   = 14.0
	gap         = 16.0
	bottomPad   = 32.0
	footerPadY  = 16.0
	emptyHeight = 80.0
	cardColumns = 3
	cardStrip   = 4.0
	heroPad     = 24.0
	heroGap     = 24.0
	tableHead   = 40.0
	listPad     = 16.0
	priceWidth  = 180.0
	lineHeight  = 1.25
)

type box struct {
	X, Y, W, H float64
}

func (b box) right() float64  { return b.X + b.W }
func (b box) bottom() float64 { return b.Y + b.H }

// itemBox is the placement of one row on the surface.
type itemBox struct {
	Frame box
	Thumb box
	Label box
	Price box
}

type layout struct {
	Bar        box
	TitleBlock box
	Logo       box
	Hero       box
	TableHead  box
	Table      box
	Items      []itemBox
	Empty      box
	HasEmpty   bool
	Footer     box
	Height     float64
}

func (s *Surface) titleLine() float64 { return math.Ceil(s.TitleSize * lineHeight) }
func (s *Surface) priceLine() float64 { return math.Ceil(s.PriceSize * lineHeight) }

// layout places every element of the surface. Build uses it for the height,
// the rasterizer for drawing.
func (s *Surface) layout() layout {
	var l layout
	width := float64(s.Width)
	inner := width - 2*padX

	l.Bar = box{0, 0, width, accentBar}

	headerH := math.Max(logoSize, s.titleLine()+4+captionSize*lineHeight+4)
	top := accentBar + headerPadY
	l.Logo = box{width - padX - logoSize, top + (headerH-logoSize)/2, logoSize, logoSize}
	l.TitleBlock = box{padX, top, inner - logoSize - gap, headerH}
	y := top + headerH + headerPadY

	switch s.Template {
	case models.TemplateRows:
		y = s.layoutRows(&l, y, inner)
	case models.TemplateBillboard:
		y = s.layoutBillboard(&l, y, inner)
	default:
		y = s.layoutCards(&l, y, inner)
	}

	y += bottomPad
	l.Footer = box{0, y, width, 2*footerPadY + captionSize*lineHeight}
	l.Height = l.Footer.bottom()
	return l
}

func (s *Surface) layoutCards(l *layout, y, inner float64) float64 {
	if len(s.Items) == 0 {
		l.Empty, l.HasEmpty = box{padX, y, inner, emptyHeight}, true
		return y + emptyHeight
	}
	cardW := (inner - gap*(cardColumns-1)) / cardColumns
	cardH := cardStrip + 2*s.Padding + s.Thumb + 12 + s.priceLine()
	for i := range s.Items {
		col, row := i%cardColumns, i/cardColumns
		frame := box{padX + float64(col)*(cardW+gap), y + float64(row)*(cardH+gap), cardW, cardH}
		inTop := frame.Y + cardStrip + s.Padding
		thumb := box{frame.X + s.Padding, inTop, s.Thumb, s.Thumb}
		l.Items = append(l.Items, itemBox{
			Frame: frame,
			Thumb: thumb,
			Label: box{thumb.right() + 12, inTop, frame.right() - s.Padding - thumb.right() - 12, s.Thumb},
			Price: box{frame.X + s.Padding, thumb.bottom() + 12, cardW - 2*s.Padding, s.priceLine()},
		})
	}
	rows := (len(s.Items) + cardColumns - 1) / cardColumns
	return y + float64(rows)*cardH + float64(rows-1)*gap
}

func (s *Surface) layoutRows(l *layout, y, inner float64) float64 {
	l.TableHead = box{padX, y, inner, tableHead}
	y += tableHead
	if len(s.Items) == 0 {
		l.Empty, l.HasEmpty = box{padX, y, inner, emptyHeight}, true
		y += emptyHeight
	}
	rowH := 2*s.Padding + s.Thumb
	for range s.Items {
		frame := box{padX, y, inner, rowH}
		thumb := box{frame.X + s.Padding, y + s.Padding, s.Thumb, s.Thumb}
		price := box{frame.right() - s.Padding - priceWidth, y + (rowH-s.priceLine())/2, priceWidth, s.priceLine()}
		l.Items = append(l.Items, itemBox{
			Frame: frame,
			Thumb: thumb,
			Label: box{thumb.right() + 12, thumb.Y, price.X - thumb.right() - 24, s.Thumb},
			Price: price,
		})
		y += rowH
	}
	l.Table = box{padX, l.TableHead.Y, inner, y - l.TableHead.Y}
	return y
}

func (s *Surface) layoutBillboard(l *layout, y, inner float64) float64 {
	heroW := (inner - heroGap) * 1.2 / 2.2
	listX := padX + heroW + heroGap
	listW := inner - heroW - heroGap

	heroH := 2*heroPad + labelSize*lineHeight + 8 + s.titleLine() + 12 + 2*labelSize*lineHeight*1.2
	l.Hero = box{padX, y, heroW, heroH}

	listH := 0.0
	if len(s.Items) == 0 {
		l.Empty, l.HasEmpty = box{listX, y, listW, emptyHeight}, true
		listH = emptyHeight
	}
	rowH := 2*listPad + s.Thumb
	for i := range s.Items {
		frame := box{listX, y + float64(i)*(rowH+gap), listW, rowH}
		thumb := box{frame.X + listPad, frame.Y + listPad, s.Thumb, s.Thumb}
		pw := math.Min(priceWidth, listW/2)
		price := box{frame.right() - listPad - pw, frame.Y + (rowH-s.priceLine())/2, pw, s.priceLine()}
		l.Items = append(l.Items, itemBox{
			Frame: frame,
			Thumb: thumb,
			Label: box{thumb.right() + 12, thumb.Y, price.X - thumb.right() - 24, s.Thumb},
			Price: price,
		})
		listH = frame.bottom() - y
	}
	return y + math.Max(heroH, listH)
}
