package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uhrzeit/pkg/config"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "uhrzeit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration, or the defaults before loading.
func (c *CLI) Config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// loadConfig reads the configuration file. The configured log level applies
// unless --verbose was given.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	if !c.verbose {
		c.SetLogLevel(parseLevel(cfg.Log.Level))
	}
	return nil
}

func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// =============================================================================
// Storage and Speech Factories
// =============================================================================

// session bundles the player data stores of one command invocation.
type session struct {
	client   *storage.Client
	progress *progress.LocalRepository
	settings *settings.Store
	backend  storage.Backend
}

func (s *session) Close() error { return s.backend.Close() }

// openSession opens the configured storage backend. Unreachable backends
// fall back to memory, so only configuration errors are returned.
func (c *CLI) openSession(ctx context.Context) (*session, error) {
	cfg := c.Config()
	backend, err := storage.Open(ctx, cfg.Storage, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	prefix := cfg.Storage.Prefix
	if prefix == "" {
		prefix = storage.DefaultPrefix
	}
	client := storage.NewClient(backend, storage.WithPrefix(prefix), storage.WithLogger(c.Logger))
	return &session{
		client:   client,
		progress: progress.NewLocalRepository(client),
		settings: settings.NewStore(client, settings.WithDefaults(cfg.SettingsDefaults())),
		backend:  backend,
	}, nil
}

// newSpeaker returns a speaker on the configured synthesizer. Without one
// the speaker is silent and the CLI still prints what would be said.
func (c *CLI) newSpeaker() *speech.Speaker {
	cfg := c.Config()
	synth, err := speech.DetectSynthesizer(cfg.Speech.Command)
	if err != nil {
		if errors.Is(err, errors.ErrCodeSpeechUnavailable) {
			c.Logger.Debug("speech unavailable", "reason", errors.UserMessage(err))
		} else {
			c.Logger.Warn("speech unavailable", "error", err)
		}
	}
	return speech.NewSpeaker(synth, speech.WithLogger(c.Logger), speech.WithRate(cfg.Speech.Rate))
}
