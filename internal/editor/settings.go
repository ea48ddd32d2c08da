package editor

import (
	"context"
	"fmt"

	"github.com/mmynk/ratecraft/internal/models"
	"github.com/mmynk/ratecraft/internal/persist"
)

// Patch is a partial settings update. Nil fields are left unchanged.
type Patch struct {
	Title     *string
	Currency  *string
	Accent    *string
	Note      *string
	Template  *models.Template
	Density   *models.Density
	Font      *models.Font
	Align     *models.Align
	TitleSize *float64
	PriceSize *float64
}

// apply validates every field of p before writing any of them to st and
// returns the keys that were set.
func (p Patch) apply(st *models.Settings) ([]string, error) {
	switch {
	case p.Accent != nil && !models.ValidAccent(*p.Accent):
		return nil, fmt.Errorf("%w: accent %q is not a #rrggbb colour", ErrInvalidSetting, *p.Accent)
	case p.Template != nil && !p.Template.Valid():
		return nil, fmt.Errorf("%w: template %q", ErrInvalidSetting, *p.Template)
	case p.Density != nil && !p.Density.Valid():
		return nil, fmt.Errorf("%w: density %q", ErrInvalidSetting, *p.Density)
	case p.Font != nil && !p.Font.Valid():
		return nil, fmt.Errorf("%w: font %q", ErrInvalidSetting, *p.Font)
	case p.Align != nil && !p.Align.Valid():
		return nil, fmt.Errorf("%w: align %q", ErrInvalidSetting, *p.Align)
	case p.TitleSize != nil && !models.ValidSize(*p.TitleSize):
		return nil, fmt.Errorf("%w: title size %v", ErrInvalidSetting, *p.TitleSize)
	case p.PriceSize != nil && !models.ValidSize(*p.PriceSize):
		return nil, fmt.Errorf("%w: price size %v", ErrInvalidSetting, *p.PriceSize)
	}

	var keys []string
	set := func(key string, ok bool, write func()) {
		if ok {
			write()
			keys = append(keys, key)
		}
	}
	set(persist.KeyTitle, p.Title != nil, func() { st.Title = *p.Title })
	set(persist.KeyCurrency, p.Currency != nil, func() { st.Currency = *p.Currency })
	set(persist.KeyAccent, p.Accent != nil, func() { st.Accent = *p.Accent })
	set(persist.KeyNote, p.Note != nil, func() { st.Note = *p.Note })
	set(persist.KeyTemplate, p.Template != nil, func() { st.Template = *p.Template })
	set(persist.KeyDensity, p.Density != nil, func() { st.Density = *p.Density })
	set(persist.KeyFont, p.Font != nil, func() { st.Font = *p.Font })
	set(persist.KeyAlign, p.Align != nil, func() { st.Align = *p.Align })
	set(persist.KeyTitleSize, p.TitleSize != nil, func() { st.TitleSize = *p.TitleSize })
	set(persist.KeyPriceSize, p.PriceSize != nil, func() { st.PriceSize = *p.PriceSize })
	return keys, nil
}

// UpdateSettings applies p atomically: an invalid field rejects the whole
// patch. Each changed key is persisted.
func (s *Session) UpdateSettings(ctx context.Context, p Patch) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.settings
	keys, err := p.apply(&next)
	if err != nil {
		return s.settings, err
	}
	s.settings = next
	for _, key := range keys {
		s.saveSetting(ctx, key)
	}
	return s.settings, nil
}

func (s *Session) SetTitle(ctx context.Context, v string) error {
	_, err := s.UpdateSettings(ctx, Patch{Title: &v})
	return err
}

func (s *Session) SetCurrency(ctx context.Context, v string) error {
	_, err := s.UpdateSettings(ctx, Patch{Currency: &v})
	return err
}

func (s *Session) SetAccent(ctx context.Context, v string) error {
	_, err := s.UpdateSettings(ctx, Patch{Accent: &v})
	return err
}

func (s *Session) SetNote(ctx context.Context, v string) error {
	_, err := s.UpdateSettings(ctx, Patch{Note: &v})
	return err
}

func (s *Session) SetTemplate(ctx context.Context, v models.Template) error {
	_, err := s.UpdateSettings(ctx, Patch{Template: &v})
	return err
}

func (s *Session) SetDensity(ctx context.Context, v models.Density) error {
	_, err := s.UpdateSettings(ctx, Patch{Density: &v})
	return err
}

func (s *Session) SetFont(ctx context.Context, v models.Font) error {
	_, err := s.UpdateSettings(ctx, Patch{Font: &v})
	return err
}

func (s *Session) SetAlign(ctx context.Context, v models.Align) error {
	_, err := s.UpdateSettings(ctx, Patch{Align: &v})
	return err
}

func (s *Session) SetTitleSize(ctx context.Context, v float64) error {
	_, err := s.UpdateSettings(ctx, Patch{TitleSize: &v})
	return err
}

func (s *Session) SetPriceSize(ctx context.Context, v float64) error {
	_, err := s.UpdateSettings(ctx, Patch{PriceSize: &v})
	return err
}
