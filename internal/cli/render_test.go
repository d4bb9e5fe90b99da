package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/errors"
)

func TestRenderTime(t *testing.T) {
	wall := time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)
	tests := []struct {
		name    string
		args    []string
		now     bool
		want    clock.Time
		wantErr bool
	}{
		{"default", nil, false, clock.Time{Hour: 10, Minute: 30}, false},
		{"argument", []string{"3:45"}, false, clock.Time{Hour: 3, Minute: 45}, false},
		{"now", nil, true, clock.Time{Hour: 14, Minute: 5}, false},
		{"both", []string{"3:45"}, true, clock.Time{}, true},
		{"invalid", []string{"25:00"}, false, clock.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderTime(tt.args, tt.now, wall)
			if (err != nil) != tt.wantErr {
				t.Fatalf("renderTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("renderTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderFlagValidation(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
	}{
		{"size too small", []string{"render", "--size", "8"}},
		{"size too large", []string{"render", "--size", "5000"}},
		{"date", []string{"render", "--date", "32"}},
		{"active", []string{"render", "--active", "second"}},
		{"theme", []string{"render", "--theme", "sundial"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.IsValidation(err) {
				t.Errorf("error %v should be a validation error", err)
			}
		})
	}
}

func TestRenderToStdout(t *testing.T) {
	isolate(t)
	out, err := runCLI(t, "render", "3:30", "--theme", "watch", "--date", "14", "--edit", "--active", "hour")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<svg", "<title>03:30</title>", "clock-watch", ">14<", "hand-handle"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderUsesStoredTheme(t *testing.T) {
	dir := isolate(t)
	if _, err := runCLI(t, "settings", "set", "--theme", "cuckoo"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "clock.svg")
	out, err := runCLI(t, "render", "-o", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output %q should name the written file", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "clock-cuckoo") || !strings.Contains(string(data), "<title>10:30</title>") {
		t.Error("rendered file should use the stored theme and the practice start time")
	}
}
