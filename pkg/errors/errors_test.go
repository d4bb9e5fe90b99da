package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidTheme, "unknown theme: %s", "disco")

	if err.Code != ErrCodeInvalidTheme {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidTheme)
	}

	if err.Message != "unknown theme: disco" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown theme: disco")
	}

	expected := "INVALID_THEME: unknown theme: disco"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeStorageUnavailable, cause, "ping redis")

	if err.Code != ErrCodeStorageUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorageUnavailable)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "STORAGE_UNAVAILABLE: ping redis: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidTime, "test"),
			code:     ErrCodeInvalidTime,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidTime, "test"),
			code:     ErrCodeInvalidTheme,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeStorageUnavailable, New(ErrCodeInvalidKey, "inner"), "outer"),
			code:     ErrCodeStorageUnavailable,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidTheme, "inner"), "defaults.theme"),
			code:     ErrCodeInvalidTheme,
			expected: true,
		},
		{
			name:     "through fmt wrapping",
			err:      fmt.Errorf("load config: %w", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidTheme, "inner"), "x")),
			code:     ErrCodeInvalidTheme,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{name: "Error type", err: New(ErrCodeAnswerPending, "test"), expected: ErrCodeAnswerPending},
		{name: "plain error", err: errors.New("plain"), expected: ""},
		{name: "nil", err: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidLevel, "bad level")); got != "bad level" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad level")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(ErrCodeInvalidTime, "x")) {
		t.Error("INVALID_TIME should be a validation error")
	}
	if IsValidation(New(ErrCodeStorageUnavailable, "x")) {
		t.Error("STORAGE_UNAVAILABLE should not be a validation error")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("plain errors should not be validation errors")
	}
}
