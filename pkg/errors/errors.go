// Package errors defines the coded errors shared by the uhrzeit library,
// CLI and HTTP API.
//
// Every failure a caller may want to branch on carries a [Code]. The HTTP
// layer maps codes to status codes and the CLI prints [UserMessage]:
//
//	if _, err := theme.ParseID(s); errors.Is(err, errors.ErrCodeInvalidTheme) {
//	    // fall back to the default theme
//	}
//
// Storage and speech failures are normally absorbed where they happen; their
// codes exist for logs and for the few operations that report them.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidTime     Code = "INVALID_TIME"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidLanguage Code = "INVALID_LANGUAGE"
	ErrCodeInvalidLevel    Code = "INVALID_LEVEL"
	ErrCodeInvalidKey      Code = "INVALID_KEY"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Collaborator errors
	ErrCodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	ErrCodeQuotaExceeded      Code = "QUOTA_EXCEEDED"
	ErrCodeSpeechUnavailable  Code = "SPEECH_UNAVAILABLE"

	// Game state errors
	ErrCodeAnswerPending Code = "ANSWER_PENDING"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain has code. A config error
// wrapping an unknown theme matches both INVALID_CONFIG and INVALID_THEME.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries one of the INVALID_* codes.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidTime, ErrCodeInvalidTheme,
		ErrCodeInvalidLanguage, ErrCodeInvalidLevel, ErrCodeInvalidKey,
		ErrCodeInvalidConfig:
		return true
	}
	return false
}
