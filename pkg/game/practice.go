package game

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/widget"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
)

// SpeakCooldown is how long the speak control stays disabled after use.
const SpeakCooldown = 2500 * time.Millisecond

// Initial practice time.
const (
	PracticeHour   = 10
	PracticeMinute = 30
)

// Practice is free exploration of the clock: the learner drags the hands
// and can have the shown time read aloud. It owns the authoritative time
// the widget displays.
type Practice struct {
	speaker *speech.Speaker
	clock   clockwork.Clock

	mu      sync.Mutex
	hour    int
	minute  int
	cooling bool
}

// PracticeOption configures a Practice.
type PracticeOption func(*Practice)

// WithClock sets the clock driving the speak cooldown.
func WithClock(c clockwork.Clock) PracticeOption { return func(p *Practice) { p.clock = c } }

// WithStartTime overrides the initial time.
func WithStartTime(t clock.Time) PracticeOption {
	return func(p *Practice) { p.hour, p.minute = t.Hour, t.Minute }
}

// NewPractice creates a practice screen. speaker may be nil to disable
// speech entirely.
func NewPractice(speaker *speech.Speaker, opts ...PracticeOption) *Practice {
	p := &Practice{
		speaker: speaker,
		clock:   clockwork.NewRealClock(),
		hour:    PracticeHour,
		minute:  PracticeMinute,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Time returns the current practice time.
func (p *Practice) Time() clock.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clock.Time{Hour: p.hour, Minute: p.minute}
}

// SetHour accepts an hour proposed by the widget. Dial hours are 0–11; the
// current half of the day is kept, so dragging in the afternoon stays PM.
func (p *Practice) SetHour(h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h = ((h % 12) + 12) % 12
	if p.hour >= 12 {
		h += 12
	}
	p.hour = h
}

// SetMinute accepts a minute proposed by the widget.
func (p *Practice) SetMinute(m int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.minute = ((m % 60) + 60) % 60
}

// ToggleHalfDay switches between AM and PM.
func (p *Practice) ToggleHalfDay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hour = (p.hour + 12) % 24
}

// WidgetProps binds the practice time and its setters to a widget.
func (p *Practice) WidgetProps(s settings.Settings, size int) widget.Props {
	t := p.Time()
	return widget.Props{
		Hour:           t.Hour,
		Minute:         t.Minute,
		OnHourChange:   p.SetHour,
		OnMinuteChange: p.SetMinute,
		Theme:          s.ClockTheme,
		AllowTimeEdit:  true,
		Size:           size,
	}
}

// SpeakVisible reports whether the speak control is shown at all.
func (p *Practice) SpeakVisible(s settings.Settings) bool {
	return s.SoundEnabled
}

// CoolingDown reports whether the speak control is temporarily disabled.
func (p *Practice) CoolingDown() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cooling
}

// Speak reads the current time aloud in the language of s. It is refused,
// returning false, while sound is disabled or the control is cooling down.
// The cooldown runs to completion even if the screen is left.
func (p *Practice) Speak(ctx context.Context, s settings.Settings) (speech.Utterance, bool) {
	if !s.SoundEnabled {
		return speech.Utterance{}, false
	}
	p.mu.Lock()
	if p.cooling {
		p.mu.Unlock()
		return speech.Utterance{}, false
	}
	p.cooling = true
	hour, minute := p.hour, p.minute
	p.mu.Unlock()

	p.clock.AfterFunc(SpeakCooldown, func() {
		p.mu.Lock()
		p.cooling = false
		p.mu.Unlock()
	})

	if p.speaker == nil {
		return speech.NewUtterance(hour, minute, s.Language, speech.SystemLanguage()), true
	}
	return p.speaker.Speak(ctx, hour, minute, s.Language), true
}
