package speech

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uhrzeit/pkg/observability"
)

// Synthesizer speaks an utterance and returns when it has finished or ctx
// is cancelled.
type Synthesizer interface {
	Synthesize(ctx context.Context, u Utterance) error
}

// SynthesizerFunc adapts a function to Synthesizer.
type SynthesizerFunc func(ctx context.Context, u Utterance) error

// Synthesize implements Synthesizer.
func (f SynthesizerFunc) Synthesize(ctx context.Context, u Utterance) error { return f(ctx, u) }

// Option configures a Speaker.
type Option func(*Speaker)

// WithLogger sets the logger for synthesis failures.
func WithLogger(l *log.Logger) Option { return func(s *Speaker) { s.logger = l } }

// WithRate overrides DefaultRate. Non-positive values are ignored.
func WithRate(rate float64) Option {
	return func(s *Speaker) {
		if rate > 0 {
			s.rate = rate
		}
	}
}

// WithSystemLanguage overrides the source of the reported system language
// used to resolve SettingAuto.
func WithSystemLanguage(fn func() string) Option { return func(s *Speaker) { s.system = fn } }

// Speaker speaks clock times. At most one utterance is in flight: Speak
// cancels the current one before starting the next, and nothing is queued.
type Speaker struct {
	synth  Synthesizer
	logger *log.Logger
	rate   float64
	system func() string

	mu      sync.Mutex
	current *flight
}

type flight struct {
	locale string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpeaker creates a speaker. A nil synth yields a speaker that builds
// utterances but never plays them.
func NewSpeaker(synth Synthesizer, opts ...Option) *Speaker {
	s := &Speaker{
		synth:  synth,
		logger: log.Default(),
		rate:   DefaultRate,
		system: SystemLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether utterances are actually played.
func (s *Speaker) Available() bool { return s.synth != nil }

// Speak cancels any in-flight utterance and starts speaking hour:minute. It
// returns the utterance without waiting for playback.
func (s *Speaker) Speak(ctx context.Context, hour, minute int, setting Setting) Utterance {
	u := NewUtterance(hour, minute, setting, s.system())
	u.Rate = s.rate

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(ctx)
	if s.synth == nil {
		return u
	}

	fctx, cancel := context.WithCancel(ctx)
	f := &flight{locale: u.Locale, cancel: cancel, done: make(chan struct{})}
	s.current = f

	observability.Speech().OnSpeak(ctx, u.Locale, u.Text)
	go func() {
		defer close(f.done)
		defer cancel()
		if err := s.synth.Synthesize(fctx, u); err != nil && !stderrors.Is(err, context.Canceled) {
			s.logger.Warn("speech synthesis failed", "locale", u.Locale, "error", err)
		}
	}()
	return u
}

// Cancel stops the in-flight utterance, if any, and waits for it to end.
func (s *Speaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(context.Background())
}

// Wait blocks until the in-flight utterance, if any, has finished.
func (s *Speaker) Wait() {
	s.mu.Lock()
	f := s.current
	s.mu.Unlock()
	if f != nil {
		<-f.done
	}
}

// Speaking reports whether an utterance is in flight.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	select {
	case <-s.current.done:
		return false
	default:
		return true
	}
}

func (s *Speaker) cancelLocked(ctx context.Context) {
	f := s.current
	if f == nil {
		return
	}
	s.current = nil
	select {
	case <-f.done:
		return
	default:
	}
	f.cancel()
	<-f.done
	observability.Speech().OnCancel(ctx, f.locale)
}
