// Package config loads uhrzeit's configuration file.
//
// The file lives at $XDG_CONFIG_HOME/uhrzeit/config.toml (or
// ~/.config/uhrzeit/config.toml). A path ending in .yaml or .yml is read as
// YAML instead. A missing file yields the defaults. UHRZEIT_* environment
// variables override file values:
//
//	UHRZEIT_LOG_LEVEL        log.level
//	UHRZEIT_STORAGE_DRIVER   storage.driver
//	UHRZEIT_STORAGE_PATH     storage.path
//	UHRZEIT_REDIS_URL        storage.redis_url
//	UHRZEIT_MONGO_URI        storage.mongo_uri
//	UHRZEIT_SERVER_ADDR      server.addr
//	UHRZEIT_SPEECH_COMMAND   speech.command
//	UHRZEIT_THEME            defaults.theme
//	UHRZEIT_LANGUAGE         defaults.language
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

const appName = "uhrzeit"

// Config is the complete configuration.
type Config struct {
	Log      LogConfig      `toml:"log" yaml:"log"`
	Storage  storage.Config `toml:"storage" yaml:"storage"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Speech   SpeechConfig   `toml:"speech" yaml:"speech"`
	Defaults DefaultsConfig `toml:"defaults" yaml:"defaults"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// ServerConfig configures `uhrzeit serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr" yaml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout" yaml:"read_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// SpeechConfig configures the text-to-speech command.
type SpeechConfig struct {
	// Command forces a specific engine; empty tries espeak-ng, espeak, say.
	Command string `toml:"command" yaml:"command"`
	// Rate is the speaking rate relative to normal speed.
	Rate float64 `toml:"rate" yaml:"rate"`
}

// DefaultsConfig seeds the settings of a fresh install.
type DefaultsConfig struct {
	Theme    string `toml:"theme" yaml:"theme"`
	Language string `toml:"language" yaml:"language"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Storage: storage.Config{Driver: storage.DriverFile, Prefix: storage.DefaultPrefix},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     Duration(10 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Speech:   SpeechConfig{Rate: speech.DefaultRate},
		Defaults: DefaultsConfig{Theme: string(theme.Default), Language: string(speech.SettingAuto)},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path, or at Path() if path is empty.
// Environment overrides are applied and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	default:
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), filepath.Base(path))
		}
	}
	return nil
}

// applyEnvOverrides applies UHRZEIT_* environment variables.
func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"UHRZEIT_LOG_LEVEL", &c.Log.Level},
		{"UHRZEIT_STORAGE_DRIVER", &c.Storage.Driver},
		{"UHRZEIT_STORAGE_PATH", &c.Storage.Path},
		{"UHRZEIT_REDIS_URL", &c.Storage.RedisURL},
		{"UHRZEIT_MONGO_URI", &c.Storage.MongoURI},
		{"UHRZEIT_SERVER_ADDR", &c.Server.Addr},
		{"UHRZEIT_SPEECH_COMMAND", &c.Speech.Command},
		{"UHRZEIT_THEME", &c.Defaults.Theme},
		{"UHRZEIT_LANGUAGE", &c.Defaults.Language},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if _, err := theme.ParseID(c.Defaults.Theme); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "defaults.theme")
	}
	if _, err := speech.ParseSetting(c.Defaults.Language); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "defaults.language")
	}
	if c.Speech.Rate < 0 || c.Speech.Rate > 4 {
		return errors.New(errors.ErrCodeInvalidConfig, "speech.rate must be between 0 and 4, got %g", c.Speech.Rate)
	}
	if c.Storage.FallbackMaxBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "storage.fallback_max_bytes must not be negative")
	}
	if c.Server.ReadTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	return nil
}

// Theme returns the validated default theme.
func (c *Config) Theme() theme.ID {
	id, err := theme.ParseID(c.Defaults.Theme)
	if err != nil {
		return theme.Default
	}
	return id
}

// Language returns the validated default language setting.
func (c *Config) Language() speech.Setting {
	s, err := speech.ParseSetting(c.Defaults.Language)
	if err != nil {
		return speech.SettingAuto
	}
	return s
}

// SettingsDefaults returns the settings a fresh install starts with.
func (c *Config) SettingsDefaults() settings.Settings {
	return settings.Settings{ClockTheme: c.Theme(), SoundEnabled: true, Language: c.Language()}
}
