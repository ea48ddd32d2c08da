// Package persist maps editor state onto a key-value store: one entry per
// setting plus a JSON encoded item list.
//
// Loading never fails outright. Missing or malformed entries are replaced by
// their documented defaults and store errors are returned alongside the
// best-effort state so the caller can log them and carry on in memory.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/ratecraft/internal/catalog"
	"github.com/mmynk/ratecraft/internal/models"
	"github.com/mmynk/ratecraft/internal/storage"
)

// DefaultPrefix is prepended to every key.
const DefaultPrefix = "rcc-"

// Persisted keys, without prefix.
const (
	KeyTitle     = "title"
	KeyCurrency  = "currency"
	KeyAccent    = "accent"
	KeyLogo      = "logo"
	KeyItems     = "items"
	KeyTemplate  = "template"
	KeyDensity   = "density"
	KeyNote      = "note"
	KeyFont      = "font"
	KeyTitleSize = "titleSize"
	KeyPriceSize = "priceSize"
	KeyAlign     = "align"
)

// SettingKeys lists every settings key in a stable order.
var SettingKeys = []string{
	KeyTitle, KeyCurrency, KeyAccent, KeyLogo, KeyTemplate, KeyDensity,
	KeyNote, KeyFont, KeyTitleSize, KeyPriceSize, KeyAlign,
}

// ErrUnknownKey is returned by SaveSetting for a key outside SettingKeys.
var ErrUnknownKey = errors.New("unknown settings key")

// State reads and writes editor state through a storage.Store.
type State struct {
	store  storage.Store
	prefix string
}

// New creates a State over store. An empty prefix selects DefaultPrefix.
func New(store storage.Store, prefix string) *State {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &State{store: store, prefix: prefix}
}

func (s *State) key(k string) string { return s.prefix + k }

// Load reads settings and items. The returned values are always usable.
func (s *State) Load(ctx context.Context) (models.Settings, []models.Item, error) {
	settings := models.DefaultSettings()
	var errs []error

	get := func(k string) (string, bool) {
		v, found, err := s.store.Get(ctx, s.key(k))
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", k, err))
			return "", false
		}
		return v, found && v != ""
	}

	if v, ok := get(KeyTitle); ok {
		settings.Title = v
	}
	if v, ok := get(KeyCurrency); ok {
		settings.Currency = v
	}
	if v, ok := get(KeyAccent); ok && models.ValidAccent(v) {
		settings.Accent = v
	}
	if v, ok := get(KeyLogo); ok {
		settings.Logo = v
	}
	if v, ok := get(KeyTemplate); ok && models.Template(v).Valid() {
		settings.Template = models.Template(v)
	}
	if v, ok := get(KeyDensity); ok && models.Density(v).Valid() {
		settings.Density = models.Density(v)
	}
	if v, ok := get(KeyNote); ok {
		settings.Note = v
	}
	if v, ok := get(KeyFont); ok && models.Font(v).Valid() {
		settings.Font = models.Font(v)
	}
	if v, ok := get(KeyTitleSize); ok {
		settings.TitleSize = parseSize(v, models.DefaultTitleSize)
	}
	if v, ok := get(KeyPriceSize); ok {
		settings.PriceSize = parseSize(v, models.DefaultPriceSize)
	}
	if v, ok := get(KeyAlign); ok && models.Align(v).Valid() {
		settings.Align = models.Align(v)
	}

	var items []models.Item
	if v, ok := get(KeyItems); ok {
		items = DecodeItems(v)
	}

	return settings, items, errors.Join(errs...)
}

// SaveSetting writes the entry for one settings key from settings.
// An empty logo removes the entry.
func (s *State) SaveSetting(ctx context.Context, key string, settings models.Settings) error {
	var value string
	switch key {
	case KeyTitle:
		value = settings.Title
	case KeyCurrency:
		value = settings.Currency
	case KeyAccent:
		value = settings.Accent
	case KeyLogo:
		if settings.Logo == "" {
			return s.store.Delete(ctx, s.key(KeyLogo))
		}
		value = settings.Logo
	case KeyTemplate:
		value = string(settings.Template)
	case KeyDensity:
		value = string(settings.Density)
	case KeyNote:
		value = settings.Note
	case KeyFont:
		value = string(settings.Font)
	case KeyTitleSize:
		value = formatSize(settings.TitleSize)
	case KeyPriceSize:
		value = formatSize(settings.PriceSize)
	case KeyAlign:
		value = string(settings.Align)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return s.store.Set(ctx, s.key(key), value)
}

// SaveItems writes the serialized item list.
func (s *State) SaveItems(ctx context.Context, items []models.Item) error {
	raw, err := EncodeItems(items)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.key(KeyItems), raw)
}

// Clear removes every persisted entry.
func (s *State) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(SettingKeys)+1)
	for _, k := range SettingKeys {
		keys = append(keys, s.key(k))
	}
	keys = append(keys, s.key(KeyItems))
	return s.store.Delete(ctx, keys...)
}

// EncodeItems serializes items as a JSON array.
func EncodeItems(items []models.Item) (string, error) {
	if items == nil {
		items = []models.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(raw), nil
}

// DecodeItems parses a serialized item list. Unparseable input yields an
// empty list; entries that break item invariants are skipped.
func DecodeItems(raw string) []models.Item {
	var decoded []models.Item
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil
	}
	items := make([]models.Item, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for _, it := range decoded {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		if strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Unit) == "" {
			continue
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items
}

func parseSize(v string, fallback float64) float64 {
	f, ok := catalog.ParseRate(v)
	if !ok || !models.ValidSize(f) {
		return fallback
	}
	return f
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
