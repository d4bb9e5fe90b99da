package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uhrzeit/pkg/observability"
)

// logHooks reports render, storage and speech events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetStorageHooks(h)
	observability.SetSpeechHooks(h)
}

func (h logHooks) OnRender(_ context.Context, theme string, size int, d time.Duration) {
	h.logger.Debug("rendered clock", "theme", theme, "size", size, "elapsed", d)
}

func (h logHooks) OnRead(_ context.Context, key string, hit bool) {
	h.logger.Debug("storage read", "key", key, "hit", hit)
}

func (h logHooks) OnWrite(_ context.Context, key string, size int) {
	h.logger.Debug("storage write", "key", key, "bytes", size)
}

// OnError is a no-op; the storage client already logs the failure.
func (h logHooks) OnError(context.Context, string, string, error) {}

func (h logHooks) OnFallback(_ context.Context, backend string, err error) {
	h.logger.Debug("storage fallback engaged", "backend", backend, "cause", err)
}

func (h logHooks) OnSpeak(_ context.Context, locale, text string) {
	h.logger.Debug("speaking", "locale", locale, "text", text)
}

func (h logHooks) OnCancel(_ context.Context, locale string) {
	h.logger.Debug("speech cancelled", "locale", locale)
}

var (
	_ observability.RenderHooks  = logHooks{}
	_ observability.StorageHooks = logHooks{}
	_ observability.SpeechHooks  = logHooks{}
)
