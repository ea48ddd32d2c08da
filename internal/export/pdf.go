package export

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/mmynk/ratecraft/internal/render"
)

// pxToPt converts CSS pixels (1/96 in) to PDF points (1/72 in).
const pxToPt = 0.75

// Page is the PDF page geometry for a surface.
type Page struct {
	Orientation string // "L" or "P"
	Width       float64
	Height      float64
}

// PageFor sizes a page to the logical surface dimensions. Landscape when
// width >= height.
func PageFor(width, height int) Page {
	p := Page{
		Orientation: "P",
		Width:       float64(width) * pxToPt,
		Height:      float64(height) * pxToPt,
	}
	if width >= height {
		p.Orientation = "L"
	}
	return p
}

func buildPDF(s *render.Surface, img *image.RGBA) ([]byte, error) {
	bitmap, err := encodePNG(s, img)
	if err != nil {
		return nil, err
	}
	page := PageFor(s.Width, s.Height)

	// gofpdf swaps the size for landscape pages, so the short side goes first.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: page.Orientation,
		UnitStr:        "pt",
		Size: gofpdf.SizeType{
			Wd: math.Min(page.Width, page.Height),
			Ht: math.Max(page.Width, page.Height),
		},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(s.Title, true)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("surface", opts, bytes.NewReader(bitmap))
	pdf.ImageOptions("surface", 0, 0, page.Width, page.Height, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return out.Bytes(), nil
}
