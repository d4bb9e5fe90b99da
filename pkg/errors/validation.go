package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTime checks that hour and minute describe a wall-clock time.
func ValidateTime(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return New(ErrCodeInvalidTime, "hour must be between 0 and 23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return New(ErrCodeInvalidTime, "minute must be between 0 and 59, got %d", minute)
	}
	return nil
}

// levelIDRegex matches level identifiers such as "clock_full_hours".
var levelIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateLevelID validates a learning level identifier.
// Level identifiers are lowercase snake_case and at most 64 characters.
func ValidateLevelID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidLevel, "level id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidLevel, "level id too long (max 64 characters)")
	}
	if !levelIDRegex.MatchString(id) {
		return New(ErrCodeInvalidLevel, "invalid level id: %q", id)
	}
	return nil
}

// ValidateStorageKey validates a key for the key-value store.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 200 characters
//
// File-backed stores derive paths from keys, so the same rules apply to
// every backend.
func ValidateStorageKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "storage key cannot be empty")
	}

	if len(key) > 200 {
		return New(ErrCodeInvalidKey, "storage key too long (max 200 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "storage key contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "storage key contains invalid characters: %q", pattern)
		}
	}

	return nil
}
