package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// baseWordsPerMinute is the normal speed of the supported engines.
const baseWordsPerMinute = 175

// knownCommands are tried in order by DetectSynthesizer.
var knownCommands = []string{"espeak-ng", "espeak", "say"}

// ExecSynthesizer speaks through a text-to-speech command such as espeak-ng
// or macOS say. The process is killed when the context is cancelled.
type ExecSynthesizer struct {
	// Path is the resolved executable.
	Path string
}

// DetectSynthesizer finds a usable speech command. If command is non-empty
// only that command is considered. It returns SPEECH_UNAVAILABLE when none
// is installed, in which case the returned Synthesizer is nil.
func DetectSynthesizer(command string) (Synthesizer, error) {
	candidates := knownCommands
	if command != "" {
		candidates = []string{command}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return &ExecSynthesizer{Path: path}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeSpeechUnavailable,
		"no speech command found (tried %s)", strings.Join(candidates, ", "))
}

// Synthesize implements Synthesizer.
func (e *ExecSynthesizer) Synthesize(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.Path, e.args(u)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(e.Path), err, msg)
		}
		return fmt.Errorf("%s: %w", filepath.Base(e.Path), err)
	}
	return nil
}

func (e *ExecSynthesizer) args(u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	wpm := strconv.Itoa(int(rate * baseWordsPerMinute))

	if filepath.Base(e.Path) == "say" {
		return []string{"-r", wpm, u.Text}
	}
	return []string{"-v", espeakVoice(u.Locale), "-s", wpm, u.Text}
}

func espeakVoice(locale string) string {
	if strings.HasPrefix(locale, "de") {
		return "de"
	}
	return "en-us"
}
