// Package settings persists the learner's app preferences.
package settings

import (
	"context"
	"sync"

	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

// StorageKey is the storage key of the settings document.
const StorageKey = "app_settings"

// Settings are the user-visible preferences.
type Settings struct {
	ClockTheme   theme.ID       `json:"clockTheme"`
	SoundEnabled bool           `json:"soundEnabled"`
	Language     speech.Setting `json:"language"`
}

// Defaults returns the settings of a fresh install.
func Defaults() Settings {
	return Settings{
		ClockTheme:   theme.Default,
		SoundEnabled: true,
		Language:     speech.SettingAuto,
	}
}

// Normalize replaces unknown theme and language values with those of d.
func (s Settings) Normalize(d Settings) Settings {
	if !s.ClockTheme.Valid() {
		s.ClockTheme = d.ClockTheme
	}
	if !s.Language.Valid() {
		s.Language = d.Language
	}
	return s
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	ClockTheme   *theme.ID       `json:"clockTheme,omitempty"`
	SoundEnabled *bool           `json:"soundEnabled,omitempty"`
	Language     *speech.Setting `json:"language,omitempty"`
}

// Normalize validates the values present in p and rewrites them to their
// canonical form.
func (p Patch) Normalize() (Patch, error) {
	if p.ClockTheme != nil {
		id, err := theme.ParseID(string(*p.ClockTheme))
		if err != nil {
			return p, err
		}
		p.ClockTheme = &id
	}
	if p.Language != nil {
		lang, err := speech.ParseSetting(string(*p.Language))
		if err != nil {
			return p, err
		}
		p.Language = &lang
	}
	return p, nil
}

// Apply returns s with the fields of p applied.
func (p Patch) Apply(s Settings) Settings {
	if p.ClockTheme != nil {
		s.ClockTheme = *p.ClockTheme
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	return s
}

// Store reads and writes settings through a storage client.
type Store struct {
	client   *storage.Client
	defaults Settings
	mu       sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaults replaces the built-in defaults. Invalid fields keep the
// built-in values.
func WithDefaults(d Settings) StoreOption {
	return func(s *Store) { s.defaults = d.Normalize(Defaults()) }
}

// NewStore creates a store on client.
func NewStore(client *storage.Client, opts ...StoreOption) *Store {
	s := &Store{client: client, defaults: Defaults()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the settings used when nothing is stored.
func (s *Store) Defaults() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// SetDefaults replaces the settings used when nothing is stored. Invalid
// fields keep the built-in values.
func (s *Store) SetDefaults(d Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = d.Normalize(Defaults())
}

// Get returns the stored settings merged over the store's defaults.
func (s *Store) Get(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save replaces the stored settings.
func (s *Store) Save(ctx context.Context, v Settings) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	v = v.Normalize(s.defaults)
	s.client.SetItem(ctx, StorageKey, v)
	return v
}

// Update normalizes p, applies it to the stored settings and saves them.
func (s *Store) Update(ctx context.Context, p Patch) (Settings, error) {
	p, err := p.Normalize()
	if err != nil {
		return s.Get(ctx), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v := p.Apply(s.load(ctx)).Normalize(s.defaults)
	s.client.SetItem(ctx, StorageKey, v)
	return v, nil
}

// Reset deletes the stored settings and returns the store's defaults.
func (s *Store) Reset(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client.RemoveItem(ctx, StorageKey)
	return s.defaults
}

func (s *Store) load(ctx context.Context) Settings {
	v := s.defaults
	if !s.client.GetItem(ctx, StorageKey, &v) {
		return s.defaults
	}
	return v.Normalize(s.defaults)
}
