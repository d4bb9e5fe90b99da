package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopRenderHooks{}.OnRender(ctx, "cuckoo", 280, time.Millisecond)

	s := NoopStorageHooks{}
	s.OnRead(ctx, "uhrzeit_app_app_settings", true)
	s.OnWrite(ctx, "uhrzeit_app_app_settings", 64)
	s.OnError(ctx, "set", "uhrzeit_app_app_settings", errors.New("disk full"))
	s.OnFallback(ctx, "redis", errors.New("connection refused"))

	sp := NoopSpeechHooks{}
	sp.OnSpeak(ctx, "de-DE", "Es ist 6 Uhr")
	sp.OnCancel(ctx, "de-DE")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Error("Storage() should return NoopStorageHooks by default")
	}
	if _, ok := Speech().(NoopSpeechHooks); !ok {
		t.Error("Speech() should return NoopSpeechHooks by default")
	}

	customStorage := &testStorageHooks{}
	SetStorageHooks(customStorage)
	if Storage() != customStorage {
		t.Error("SetStorageHooks should set custom hooks")
	}

	customSpeech := &testSpeechHooks{}
	SetSpeechHooks(customSpeech)
	if Speech() != customSpeech {
		t.Error("SetSpeechHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// nil does not replace registered hooks
	SetStorageHooks(nil)
	if Storage() != customStorage {
		t.Error("SetStorageHooks(nil) should keep existing hooks")
	}

	Storage().OnRead(context.Background(), "k", true)
	if customStorage.reads != 1 {
		t.Errorf("reads = %d, want 1", customStorage.reads)
	}

	Reset()
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Error("Reset() should restore NoopStorageHooks")
	}
}

type testRenderHooks struct{ NoopRenderHooks }

type testStorageHooks struct {
	NoopStorageHooks
	reads int
}

func (h *testStorageHooks) OnRead(context.Context, string, bool) { h.reads++ }

type testSpeechHooks struct{ NoopSpeechHooks }
