// Package export turns a rendering surface snapshot into a downloadable PNG
// or single-page PDF artifact.
//
// Only one export runs at a time. The exporter walks an explicit state
// machine (Idle, Capturing, BuildingArtifact, Downloading) and returns to
// Idle on every exit path.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mmynk/ratecraft/internal/render"
)

// DefaultStem names artifacts when the card has no title.
const DefaultStem = "rate-card"

// CaptureScale is the device pixel ratio used for capture.
const CaptureScale = 2

var (
	ErrBusy    = errors.New("export already in progress")
	ErrCapture = errors.New("failed to capture surface")
)

// State is the exporter's position in the export state machine.
type State int

const (
	Idle State = iota
	Capturing
	BuildingArtifact
	Downloading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case BuildingArtifact:
		return "building_artifact"
	case Downloading:
		return "downloading"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Format is an artifact file format.
type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

func (f Format) ContentType() string {
	if f == PDF {
		return "application/pdf"
	}
	return "image/png"
}

// Artifact is a finished export.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte

	// Token identifies the artifact in the download registry, when one is
	// attached to the exporter.
	Token string

	// Width and Height are the captured bitmap size in device pixels.
	Width  int
	Height int
}

// SurfaceSource supplies the surface to capture. A nil surface means there
// is nothing on screen to export.
type SurfaceSource interface {
	Surface() *render.Surface
}

// Observer is told about every finished export attempt.
type Observer interface {
	ObserveExport(format string, took time.Duration, err error)
}

type rasterizer func(*render.Surface, float64, color.Color) (*image.RGBA, error)

// Exporter produces artifacts from surfaces, one at a time.
type Exporter struct {
	mu    sync.Mutex
	state State

	background color.Color
	rasterize  rasterizer
	downloads  *Downloads
	observer   Observer
}

type Option func(*Exporter)

// WithDownloads registers every artifact in d.
func WithDownloads(d *Downloads) Option {
	return func(e *Exporter) { e.downloads = d }
}

// WithObserver reports export outcomes to o.
func WithObserver(o Observer) Option {
	return func(e *Exporter) { e.observer = o }
}

func New(opts ...Option) *Exporter {
	e := &Exporter{
		background: color.White,
		rasterize:  render.Rasterize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State reports the current state.
func (e *Exporter) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Busy reports whether an export is in progress.
func (e *Exporter) Busy() bool {
	return e.State() != Idle
}

// ExportRaster captures the surface as a PNG.
func (e *Exporter) ExportRaster(ctx context.Context, src SurfaceSource, stem string) (*Artifact, error) {
	return e.run(ctx, src, PNG, stem, encodePNG)
}

// ExportDocument captures the surface and places it on a single PDF page of
// the same logical size.
func (e *Exporter) ExportDocument(ctx context.Context, src SurfaceSource, stem string) (*Artifact, error) {
	return e.run(ctx, src, PDF, stem, buildPDF)
}

type builder func(*render.Surface, *image.RGBA) ([]byte, error)

func (e *Exporter) run(ctx context.Context, src SurfaceSource, format Format, stem string, build builder) (art *Artifact, err error) {
	s := src.Surface()
	if s == nil {
		return nil, nil
	}
	if err := e.begin(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			art, err = nil, fmt.Errorf("%w: %v", ErrCapture, r)
		}
		e.setState(Idle)
		e.observe(format, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := e.rasterize(s, CaptureScale, e.background)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	e.setState(BuildingArtifact)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := build(s, img)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", format, err)
	}

	art = &Artifact{
		Filename:    Filename(stem, format),
		ContentType: format.ContentType(),
		Data:        data,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}
	if e.downloads != nil {
		e.setState(Downloading)
		art.Token = e.downloads.Add(art)
	}

	slog.Info("Export finished",
		"format", format,
		"filename", art.Filename,
		"size", humanize.Bytes(uint64(len(data))),
		"pixels", fmt.Sprintf("%dx%d", art.Width, art.Height),
	)
	return art, nil
}

func (e *Exporter) begin() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Idle {
		return ErrBusy
	}
	e.state = Capturing
	return nil
}

func (e *Exporter) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func (e *Exporter) observe(format Format, took time.Duration, err error) {
	if err != nil {
		slog.Error("Export failed", "format", format, "error", err)
	}
	if e.observer != nil {
		e.observer.ObserveExport(string(format), took, err)
	}
}

// Filename returns "<stem>.<format>", falling back to DefaultStem for an
// empty stem. The stem is used as typed except that path separators are
// replaced so the name stays a single path element.
func Filename(stem string, format Format) string {
	if stem == "" {
		stem = DefaultStem
	}
	stem = strings.NewReplacer("/", "-", "\\", "-").Replace(stem)
	return stem + "." + string(format)
}

func encodePNG(_ *render.Surface, img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
