// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about clock rendering, storage operations, and speech.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so there are no import
// cycles and the core packages stay free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStorageHooks(&myStorageHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Storage().OnRead(ctx, key, hit)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the clock face renderer.
type RenderHooks interface {
	// OnRender records a rendered clock face.
	OnRender(ctx context.Context, theme string, size int, duration time.Duration)
}

// =============================================================================
// Storage Hooks
// =============================================================================

// StorageHooks receives events from key-value storage operations.
type StorageHooks interface {
	// OnRead records a read and whether a value was found.
	OnRead(ctx context.Context, key string, hit bool)

	// OnWrite records a write of size bytes.
	OnWrite(ctx context.Context, key string, size int)

	// OnError records a swallowed storage failure.
	OnError(ctx context.Context, op, key string, err error)

	// OnFallback records that the primary backend was unavailable.
	OnFallback(ctx context.Context, backend string, err error)
}

// =============================================================================
// Speech Hooks
// =============================================================================

// SpeechHooks receives events from the speech helper.
type SpeechHooks interface {
	// OnSpeak records an utterance handed to the synthesizer.
	OnSpeak(ctx context.Context, locale, text string)

	// OnCancel records an in-flight utterance that was cut off.
	OnCancel(ctx context.Context, locale string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRender(context.Context, string, int, time.Duration) {}

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnRead(context.Context, string, bool)           {}
func (NoopStorageHooks) OnWrite(context.Context, string, int)           {}
func (NoopStorageHooks) OnError(context.Context, string, string, error) {}
func (NoopStorageHooks) OnFallback(context.Context, string, error)      {}

// NoopSpeechHooks is a no-op implementation of SpeechHooks.
type NoopSpeechHooks struct{}

func (NoopSpeechHooks) OnSpeak(context.Context, string, string) {}
func (NoopSpeechHooks) OnCancel(context.Context, string)        {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks  RenderHooks  = NoopRenderHooks{}
	storageHooks StorageHooks = NoopStorageHooks{}
	speechHooks  SpeechHooks  = NoopSpeechHooks{}
	hooksMu      sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetStorageHooks registers custom storage hooks.
// This should be called once at application startup before any storage operations.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// SetSpeechHooks registers custom speech hooks.
func SetSpeechHooks(h SpeechHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		speechHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// Speech returns the registered speech hooks.
func Speech() SpeechHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return speechHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	storageHooks = NoopStorageHooks{}
	speechHooks = NoopSpeechHooks{}
}
