package settings

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

func newTestStore() (*Store, *storage.Memory) {
	mem := storage.NewMemory()
	return NewStore(storage.NewClient(mem, storage.WithLogger(log.New(io.Discard)))), mem
}

func ptr[T any](v T) *T { return &v }

func TestDefaults(t *testing.T) {
	s, _ := newTestStore()
	want := Settings{ClockTheme: theme.IDCuckoo, SoundEnabled: true, Language: speech.SettingAuto}
	if diff := cmp.Diff(want, s.Get(context.Background())); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()

	got, err := s.Update(ctx, Patch{ClockTheme: ptr(theme.ID(" Watch ")), SoundEnabled: ptr(false)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := Settings{ClockTheme: theme.IDWatch, SoundEnabled: false, Language: speech.SettingAuto}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Update result (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Get(ctx)); diff != "" {
		t.Errorf("stored settings (-want +got):\n%s", diff)
	}

	data, _, _ := mem.Get(ctx, storage.DefaultPrefix+StorageKey)
	if string(data) != `{"clockTheme":"watch","soundEnabled":false,"language":"auto"}` {
		t.Errorf("stored document = %s", data)
	}

	got, _ = s.Update(ctx, Patch{Language: ptr(speech.SettingGerman)})
	if got.ClockTheme != theme.IDWatch || got.Language != speech.SettingGerman {
		t.Errorf("second Update should keep earlier fields: %+v", got)
	}
}

func TestUpdateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()

	tests := []struct {
		name  string
		patch Patch
		code  errors.Code
	}{
		{"theme", Patch{ClockTheme: ptr(theme.ID("disco"))}, errors.ErrCodeInvalidTheme},
		{"language", Patch{Language: ptr(speech.Setting("fr"))}, errors.ErrCodeInvalidLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Update(ctx, tt.patch)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
			if diff := cmp.Diff(Defaults(), got); diff != "" {
				t.Errorf("rejected update changed settings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoredUnknownValuesFallBack(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()
	mem.Set(ctx, storage.DefaultPrefix+StorageKey, []byte(`{"clockTheme":"disco","soundEnabled":false,"language":"xx"}`))

	want := Settings{ClockTheme: theme.IDCuckoo, SoundEnabled: false, Language: speech.SettingAuto}
	if diff := cmp.Diff(want, s.Get(ctx)); diff != "" {
		t.Errorf("normalized settings (-want +got):\n%s", diff)
	}
}

func TestPartialDocumentMergedOverDefaults(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()
	mem.Set(ctx, storage.DefaultPrefix+StorageKey, []byte(`{"clockTheme":"tower"}`))

	want := Settings{ClockTheme: theme.IDTower, SoundEnabled: true, Language: speech.SettingAuto}
	if diff := cmp.Diff(want, s.Get(ctx)); diff != "" {
		t.Errorf("merged settings (-want +got):\n%s", diff)
	}
}

func TestSaveAndReset(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore()

	s.Save(ctx, Settings{ClockTheme: theme.IDLearning, Language: speech.SettingEnglish})
	if s.Get(ctx).ClockTheme != theme.IDLearning {
		t.Error("Save should persist the theme")
	}
	if got := s.Reset(ctx); got != Defaults() {
		t.Errorf("Reset() = %+v", got)
	}
	if keys, _ := mem.Keys(ctx, ""); len(keys) != 0 {
		t.Errorf("Reset should delete the document, found %v", keys)
	}
}

func TestWithDefaults(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	client := storage.NewClient(mem, storage.WithLogger(log.New(io.Discard)))
	s := NewStore(client, WithDefaults(Settings{ClockTheme: theme.IDTower, SoundEnabled: true, Language: "xx"}))

	want := Settings{ClockTheme: theme.IDTower, SoundEnabled: true, Language: speech.SettingAuto}
	if diff := cmp.Diff(want, s.Get(ctx)); diff != "" {
		t.Errorf("configured defaults (-want +got):\n%s", diff)
	}
	mem.Set(ctx, storage.DefaultPrefix+StorageKey, []byte(`{"clockTheme":"disco"}`))
	if got := s.Get(ctx).ClockTheme; got != theme.IDTower {
		t.Errorf("unknown stored theme should fall back to the configured default, got %q", got)
	}
	if got := s.Reset(ctx); got != want {
		t.Errorf("Reset() = %+v, want %+v", got, want)
	}
}

func TestSetDefaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore()
	s.SetDefaults(Settings{ClockTheme: theme.IDWatch, Language: "xx"})

	want := Settings{ClockTheme: theme.IDWatch, Language: speech.SettingAuto}
	if diff := cmp.Diff(want, s.Get(ctx)); diff != "" {
		t.Errorf("replaced defaults (-want +got):\n%s", diff)
	}
	if got := s.Defaults(); got != want {
		t.Errorf("Defaults() = %+v, want %+v", got, want)
	}
}
