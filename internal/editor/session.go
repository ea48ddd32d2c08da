// Package editor holds the application state of one rate-card editing
// session: settings, the item repository and the draft buffer. Every
// committed change is written through to the key-value store before the
// call returns; store failures are logged and the in-memory state stays
// authoritative.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mmynk/ratecraft/internal/catalog"
	"github.com/mmynk/ratecraft/internal/draft"
	"github.com/mmynk/ratecraft/internal/media"
	"github.com/mmynk/ratecraft/internal/models"
	"github.com/mmynk/ratecraft/internal/persist"
	"github.com/mmynk/ratecraft/internal/render"
)

// ErrInvalidSetting is returned when a setting value is outside its domain.
var ErrInvalidSetting = errors.New("invalid setting")

// Recorder receives persistence and size signals. *metrics.Metrics
// satisfies it.
type Recorder interface {
	PersistFailed(key string)
	SetItemCount(n int)
}

type nopRecorder struct{}

func (nopRecorder) PersistFailed(string) {}
func (nopRecorder) SetItemCount(int) {}

// Snapshot is a consistent copy of the whole session state.
type Snapshot struct {
	Settings models.Settings
	Items    []models.Item
	Draft    models.Draft
	Editing  string
}

// Session is the explicit application-state object. It is safe for
// concurrent use.
type Session struct {
	mu       sync.Mutex
	settings models.Settings
	items    *catalog.Repository
	draft    *draft.Buffer

	state      *persist.State
	renderOpts render.Options
	recorder   Recorder
}

type Option func(*Session)

// WithRenderOptions sets the locale and clock used for surfaces.
func WithRenderOptions(o render.Options) Option {
	return func(s *Session) { s.renderOpts = o }
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New creates a session with default settings and no items. Call Load to
// rehydrate from the store.
func New(state *persist.State, opts ...Option) *Session {
	s := &Session{
		settings: models.DefaultSettings(),
		items:    catalog.NewRepository(),
		draft:    draft.New(),
		state:    state,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the session state with what the store holds. Missing or
// malformed entries load as defaults; store errors are logged only.
func (s *Session) Load(ctx context.Context) {
	settings, items, err := s.state.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load persisted state, continuing with defaults", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.items.Replace(items)
	s.draft.Cancel()
	s.recorder.SetItemCount(s.items.Len())
	slog.Info("Session loaded", "title", settings.Title, "items", s.items.Len())
}

// Reset restores default settings, empties the item list, clears the draft
// and removes every persisted entry.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.DefaultSettings()
	s.items.Clear()
	s.draft.Cancel()
	if err := s.state.Clear(ctx); err != nil {
		s.persistFailed("*", err)
	}
	s.recorder.SetItemCount(0)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	editing, _ := s.draft.Editing()
	return Snapshot{
		Settings: s.settings,
		Items:    s.items.Items(),
		Draft:    s.draft.Snapshot(),
		Editing:  editing,
	}
}

func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Session) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Items()
}

// Title is the live title as typed, used to name exports.
func (s *Session) Title() string {
	return s.Settings().Title
}

// Surface builds a rendering surface from the current state.
func (s *Session) Surface() *render.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.Build(s.settings, s.items.Items(), s.renderOpts)
}

// Submit commits the draft: an update when an item is being edited,
// otherwise an add.
func (s *Session) Submit(ctx context.Context) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draft.Snapshot()
	if id, ok := s.draft.Editing(); ok {
		return s.update(ctx, id, d)
	}
	return s.add(ctx, d)
}

// AddItem appends an item built from d and clears the draft.
func (s *Session) AddItem(ctx context.Context, d models.Draft) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(ctx, d)
}

// UpdateItem replaces the fields of item id from d. When id is the edit
// target, edit mode ends and the draft is cleared.
func (s *Session) UpdateItem(ctx context.Context, id string, d models.Draft) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, id, d)
}

func (s *Session) add(ctx context.Context, d models.Draft) (models.Item, error) {
	item, err := s.items.Add(d)
	if err != nil {
		return models.Item{}, err
	}
	// An edit in progress keeps its draft.
	if _, editing := s.draft.Editing(); !editing {
		s.draft.BeginCreate()
	}
	s.saveItems(ctx)
	return item, nil
}

func (s *Session) update(ctx context.Context, id string, d models.Draft) (models.Item, error) {
	item, err := s.items.Update(id, d)
	if err != nil {
		return models.Item{}, err
	}
	if editing, _ := s.draft.Editing(); editing == id {
		s.draft.Cancel()
	}
	s.saveItems(ctx)
	return item, nil
}

// RemoveItem deletes item id. Removing the edit target cancels the edit.
// It reports whether an item was removed.
func (s *Session) RemoveItem(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.items.Remove(id) {
		return false
	}
	if editing, _ := s.draft.Editing(); editing == id {
		s.draft.Cancel()
	}
	s.saveItems(ctx)
	return true
}

func (s *Session) MoveItem(ctx context.Context, id string, dir models.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.items.Move(id, dir) {
		return false
	}
	s.saveItems(ctx)
	return true
}

func (s *Session) ReorderItems(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.items.Reorder(ids); err != nil {
		return err
	}
	s.saveItems(ctx)
	return nil
}

func (s *Session) BeginCreate() {
	s.draft.BeginCreate()
}

// BeginEdit loads item id into the draft.
func (s *Session) BeginEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	s.draft.BeginEdit(item)
	return nil
}

func (s *Session) CancelEdit() {
	s.draft.Cancel()
}

func (s *Session) SetDraftField(key, value string) error {
	return s.draft.SetField(key, value)
}

// SetDraftImage starts decoding r into the draft image; see draft.Buffer.SetImage.
func (s *Session) SetDraftImage(ctx context.Context, r io.Reader) <-chan error {
	return s.draft.SetImage(ctx, r)
}

// Draft returns the draft and the id of the item being edited, if any.
func (s *Session) Draft() (models.Draft, string) {
	editing, _ := s.draft.Editing()
	return s.draft.Snapshot(), editing
}

// SetLogo stores the image read from r as the logo. A nil reader removes it.
func (s *Session) SetLogo(ctx context.Context, r io.Reader) error {
	logo := ""
	if r != nil {
		var err error
		if logo, err = media.Encode(r); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Logo = logo
	s.saveSetting(ctx, persist.KeyLogo)
	return nil
}

func (s *Session) saveItems(ctx context.Context) {
	s.recorder.SetItemCount(s.items.Len())
	if err := s.state.SaveItems(ctx, s.items.Items()); err != nil {
		s.persistFailed(persist.KeyItems, err)
	}
}

func (s *Session) saveSetting(ctx context.Context, key string) {
	if err := s.state.SaveSetting(ctx, key, s.settings); err != nil {
		s.persistFailed(key, err)
	}
}

func (s *Session) persistFailed(key string, err error) {
	slog.Warn("Failed to persist state", "key", key, "error", err)
	s.recorder.PersistFailed(key)
}
