package export

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a download handle stays valid.
const DefaultTTL = 5 * time.Second

// Downloads holds finished artifacts under short-lived tokens.
type Downloads struct {
	mu      sync.Mutex
	ttl     time.Duration
	handles map[string]*Artifact
}

func NewDownloads(ttl time.Duration) *Downloads {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Downloads{ttl: ttl, handles: make(map[string]*Artifact)}
}

// Add registers a and returns its token. The handle is released after the
// registry's TTL.
func (d *Downloads) Add(a *Artifact) string {
	token := uuid.NewString()
	d.mu.Lock()
	d.handles[token] = a
	d.mu.Unlock()

	time.AfterFunc(d.ttl, func() { d.Release(token) })
	return token
}

func (d *Downloads) Get(token string) (*Artifact, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.handles[token]
	return a, ok
}

// Release drops the handle for token, if any.
func (d *Downloads) Release(token string) {
	d.mu.Lock()
	delete(d.handles, token)
	d.mu.Unlock()
}

func (d *Downloads) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handles)
}

// ServeHTTP serves GET /downloads/{token} as an attachment.
func (d *Downloads) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	a, ok := d.Get(token)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename}))
	if _, err := w.Write(a.Data); err != nil {
		slog.Warn("Failed to write download", "filename", a.Filename, "error", err)
	}
}
