package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/ratecraft/internal/models"
	"github.com/mmynk/ratecraft/internal/render"
)

type source struct {
	surface *render.Surface
}

func (s source) Surface() *render.Surface { return s.surface }

func testSurface(items int) *render.Surface {
	list := make([]models.Item, items)
	for i := range list {
		list[i] = models.Item{ID: string(rune('a' + i)), Name: "Logo design", Unit: "per logo", Rate: 4999}
	}
	return render.Build(models.DefaultSettings(), list, render.Options{})
}

type recorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *recorder) ObserveExport(_ string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestExportRaster(t *testing.T) {
	e := New()
	art, err := e.ExportRaster(context.Background(), source{testSurface(2)}, "Studio Rates")
	if err != nil {
		t.Fatalf("ExportRaster() error = %v", err)
	}
	if art.Filename != "Studio Rates.png" || art.ContentType != "image/png" {
		t.Errorf("artifact = %q (%s)", art.Filename, art.ContentType)
	}
	if !bytes.HasPrefix(art.Data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("data is not a PNG")
	}
	if art.Width != 2*render.SurfaceWidth {
		t.Errorf("Width = %d, want %d", art.Width, 2*render.SurfaceWidth)
	}
	if e.Busy() {
		t.Error("exporter still busy after success")
	}
}

func TestExportDocument(t *testing.T) {
	e := New()
	art, err := e.ExportDocument(context.Background(), source{testSurface(5)}, "")
	if err != nil {
		t.Fatalf("ExportDocument() error = %v", err)
	}
	if art.Filename != "rate-card.pdf" || art.ContentType != "application/pdf" {
		t.Errorf("artifact = %q (%s)", art.Filename, art.ContentType)
	}
	if !bytes.HasPrefix(art.Data, []byte("%PDF-")) {
		t.Error("data is not a PDF")
	}
}

func TestExportWithoutSurface(t *testing.T) {
	rec := &recorder{}
	e := New(WithObserver(rec))
	for name, fn := range map[string]func(context.Context, SurfaceSource, string) (*Artifact, error){
		"raster":   e.ExportRaster,
		"document": e.ExportDocument,
	} {
		art, err := fn(context.Background(), source{}, "x")
		if art != nil || err != nil {
			t.Errorf("%s: got (%v, %v), want (nil, nil)", name, art, err)
		}
	}
	if e.State() != Idle {
		t.Errorf("State() = %v, want idle", e.State())
	}
	if len(rec.errs) != 0 {
		t.Errorf("observer called %d times, want 0", len(rec.errs))
	}
}

func TestBusy(t *testing.T) {
	e := New()
	entered := make(chan struct{})
	unblock := make(chan struct{})
	e.rasterize = func(s *render.Surface, scale float64, bg color.Color) (*image.RGBA, error) {
		close(entered)
		<-unblock
		return render.Rasterize(s, scale, bg)
	}

	done := make(chan error, 1)
	go func() {
		_, err := e.ExportRaster(context.Background(), source{testSurface(1)}, "first")
		done <- err
	}()
	<-entered

	if got := e.State(); got != Capturing {
		t.Errorf("State() = %v, want capturing", got)
	}
	if _, err := e.ExportDocument(context.Background(), source{testSurface(1)}, "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent export error = %v, want ErrBusy", err)
	}

	close(unblock)
	if err := <-done; err != nil {
		t.Fatalf("first export error = %v", err)
	}
	if e.Busy() {
		t.Error("exporter still busy after first export finished")
	}
}

func TestBusyReleasedOnFailure(t *testing.T) {
	tests := []struct {
		name      string
		rasterize rasterizer
	}{
		{
			name: "capture error",
			rasterize: func(*render.Surface, float64, color.Color) (*image.RGBA, error) {
				return nil, errors.New("no fonts")
			},
		},
		{
			name: "capture panic",
			rasterize: func(*render.Surface, float64, color.Color) (*image.RGBA, error) {
				panic("boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := New(WithObserver(rec))
			e.rasterize = tt.rasterize

			art, err := e.ExportRaster(context.Background(), source{testSurface(1)}, "x")
			if art != nil || !errors.Is(err, ErrCapture) {
				t.Errorf("got (%v, %v), want ErrCapture", art, err)
			}
			if e.Busy() {
				t.Error("exporter still busy after failure")
			}
			if len(rec.errs) != 1 || rec.errs[0] == nil {
				t.Errorf("observer errors = %v", rec.errs)
			}
		})
	}
}

func TestExportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New()
	if _, err := e.ExportRaster(ctx, source{testSurface(1)}, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if e.Busy() {
		t.Error("exporter still busy after cancellation")
	}
}

func TestPageFor(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Page
	}{
		{"wide", 900, 600, Page{"L", 675, 450}},
		{"square", 900, 900, Page{"L", 675, 675}},
		{"tall", 900, 1200, Page{"P", 675, 900}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageFor(tt.width, tt.height); got != tt.want {
				t.Errorf("PageFor(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		stem   string
		format Format
		want   string
	}{
		{"Acme Studio", PNG, "Acme Studio.png"},
		{"", PDF, "rate-card.pdf"},
		{" Spaced ", PNG, " Spaced .png"},
		{"a/b\\c", PDF, "a-b-c.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.stem, tt.format); got != tt.want {
			t.Errorf("Filename(%q, %s) = %q, want %q", tt.stem, tt.format, got, tt.want)
		}
	}
}

func TestDownloads(t *testing.T) {
	d := NewDownloads(50 * time.Millisecond)
	e := New(WithDownloads(d))

	art, err := e.ExportRaster(context.Background(), source{testSurface(1)}, "Card")
	if err != nil {
		t.Fatalf("ExportRaster() error = %v", err)
	}
	if art.Token == "" {
		t.Fatal("artifact has no download token")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /downloads/{token}", d)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/downloads/" + art.Token)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename=Card.png` {
		t.Errorf("Content-Disposition = %q", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if _, ok := d.Get(art.Token); ok {
		t.Fatal("download handle not released")
	}

	resp, err = http.Get(srv.URL + "/downloads/" + art.Token)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status after release = %d, want 404", resp.StatusCode)
	}
}
