package errors

import (
	"strings"
	"testing"
)

func TestValidateTime(t *testing.T) {
	tests := []struct {
		hour, minute int
		wantErr      bool
	}{
		{0, 0, false},
		{23, 59, false},
		{10, 30, false},
		{-1, 0, true},
		{24, 0, true},
		{12, -1, true},
		{12, 60, true},
	}

	for _, tt := range tests {
		err := ValidateTime(tt.hour, tt.minute)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTime(%d, %d) error = %v, wantErr %v", tt.hour, tt.minute, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidTime) {
			t.Errorf("ValidateTime(%d, %d) code = %v, want %v", tt.hour, tt.minute, GetCode(err), ErrCodeInvalidTime)
		}
	}
}

func TestValidateLevelID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"full hours", "clock_full_hours", false},
		{"digits", "level2", false},
		{"empty", "", true},
		{"uppercase", "Clock", true},
		{"leading digit", "1level", true},
		{"dash", "clock-hours", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLevelID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLevelID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"simple", "uhrzeit_app_learning_progress", false},
		{"scoped", "uhrzeit_app_player:1234_app_settings", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control", "a\x00b", true},
		{"too long", strings.Repeat("k", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStorageKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStorageKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
