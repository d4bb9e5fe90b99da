package clock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// Time is a wall-clock time of day with minute resolution.
// Hour is 0–23 and Minute 0–59; the face shows Hour modulo 12.
type Time struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// New returns a validated Time.
func New(hour, minute int) (Time, error) {
	t := Time{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return Time{}, err
	}
	return t, nil
}

// Validate reports an INVALID_TIME error for out-of-range fields.
func (t Time) Validate() error {
	return errors.ValidateTime(t.Hour, t.Minute)
}

// Hour12 returns the hour on a 12-hour dial, 1–12.
func (t Time) Hour12() int {
	if h := t.Hour % 12; h != 0 {
		return h
	}
	return 12
}

// PM reports whether the time is in the afternoon.
func (t Time) PM() bool {
	return t.Hour >= 12
}

// String formats the time as HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Parse reads a time in H:MM or HH:MM form.
func Parse(s string) (Time, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Time{}, errors.New(errors.ErrCodeInvalidTime, "time must be HH:MM, got %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Time{}, errors.Wrap(errors.ErrCodeInvalidTime, err, "invalid hour %q", hs)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return Time{}, errors.Wrap(errors.ErrCodeInvalidTime, err, "invalid minute %q", ms)
	}
	return New(h, m)
}
