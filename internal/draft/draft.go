// Package draft implements the form staging buffer: the single mutable draft
// used to compose a new item or edit an existing one.
//
// Text fields are stored verbatim; validation only happens when the draft is
// committed to the catalog. Image uploads decode in the background and are
// merged into the draft they were started for. Once that draft is replaced
// the upload is dropped.
package draft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mmynk/ratecraft/internal/catalog"
	"github.com/mmynk/ratecraft/internal/media"
	"github.com/mmynk/ratecraft/internal/models"
)

// Field names accepted by SetField.
const (
	FieldName = "name"
	FieldUnit = "unit"
	FieldRate = "rate"
)

var (
	ErrUnknownField = errors.New("unknown draft field")

	// ErrSuperseded is delivered when a newer image replaced this upload
	// before it finished decoding.
	ErrSuperseded = errors.New("image upload superseded")
)

// Buffer holds the current draft and the id of the item being edited.
// It is safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	draft   models.Draft
	editing string

	// imageSeq increments with every image change and every new draft, so
	// an older decode finishing late cannot overwrite a newer image or leak
	// into another draft.
	imageSeq uint64

	decode func(io.Reader) (string, error)
}

// New returns a Buffer holding an empty draft.
func New() *Buffer {
	return &Buffer{draft: models.EmptyDraft(), decode: media.Encode}
}

// BeginCreate clears the draft and leaves edit mode.
func (b *Buffer) BeginCreate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.imageSeq++
	b.draft = models.EmptyDraft()
	b.editing = ""
}

// Cancel discards the draft and any edit target. Pending image uploads
// finish with ErrSuperseded.
func (b *Buffer) Cancel() {
	b.BeginCreate()
}

// BeginEdit copies item into the draft and makes it the edit target.
func (b *Buffer) BeginEdit(item models.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.imageSeq++
	b.draft = models.Draft{
		Name:  item.Name,
		Unit:  item.Unit,
		Rate:  catalog.FormatRate(item.Rate),
		Image: item.Image,
	}
	b.editing = item.ID
}

// SetField replaces one text field. The value is not validated.
func (b *Buffer) SetField(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch key {
	case FieldName:
		b.draft.Name = value
	case FieldUnit:
		b.draft.Unit = value
	case FieldRate:
		b.draft.Rate = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return nil
}

// ClearImage removes the draft image and supersedes any pending upload.
func (b *Buffer) ClearImage() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.imageSeq++
	b.draft.Image = ""
}

// SetImage decodes r in the background and stores the result as the draft
// image. A nil reader clears the image immediately. The returned channel
// receives the outcome once and is then closed.
//
// Only the image field is written on completion, so edits made to other
// fields while decoding are kept.
func (b *Buffer) SetImage(ctx context.Context, r io.Reader) <-chan error {
	done := make(chan error, 1)
	if r == nil {
		b.ClearImage()
		done <- nil
		close(done)
		return done
	}

	b.mu.Lock()
	b.imageSeq++
	seq := b.imageSeq
	b.mu.Unlock()

	go func() {
		defer close(done)
		url, err := b.decode(r)
		if err != nil {
			done <- err
			return
		}
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		if seq != b.imageSeq {
			done <- ErrSuperseded
			return
		}
		b.draft.Image = url
		done <- nil
	}()
	return done
}

// Snapshot returns a copy of the current draft.
func (b *Buffer) Snapshot() models.Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

// Editing returns the id of the item being edited, if any.
func (b *Buffer) Editing() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editing, b.editing != ""
}
