package storage

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uhrzeit/pkg/observability"
)

// probeKey is written and removed to check that a backend accepts writes.
const probeKey = "__uhrzeit_probe__"

// Probe checks that b can store and delete a value.
func Probe(ctx context.Context, b Backend) error {
	if err := b.Set(ctx, probeKey, []byte("1")); err != nil {
		return err
	}
	return b.Delete(ctx, probeKey)
}

// Fallback returns primary if it passes Probe. Otherwise primary is closed
// and alternate is returned. A nil primary selects alternate directly.
func Fallback(ctx context.Context, name string, primary, alternate Backend, logger *log.Logger) Backend {
	if logger == nil {
		logger = log.Default()
	}
	if primary == nil {
		return alternate
	}
	err := Probe(ctx, primary)
	if err == nil {
		return primary
	}
	logger.Warn("storage unavailable, progress will not survive a restart", "backend", name, "error", err)
	observability.Storage().OnFallback(ctx, name, err)
	_ = primary.Close()
	return alternate
}
