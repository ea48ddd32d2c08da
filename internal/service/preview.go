package service

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/mmynk/ratecraft/internal/editor"
	"github.com/mmynk/ratecraft/internal/render"
)

// PreviewHandler serves the live rate card as an HTML page.
type PreviewHandler struct {
	session  *editor.Session
	renderer *render.HTMLRenderer
}

func NewPreviewHandler(session *editor.Session) *PreviewHandler {
	return &PreviewHandler{session: session, renderer: render.NewHTMLRenderer()}
}

func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, h.session.Surface()); err != nil {
		slog.Error("Preview render failed", "error", err)
		http.Error(w, "failed to render preview", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
