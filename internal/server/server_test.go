package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/game"
	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

type testServer struct {
	t      *testing.T
	srv    *Server
	clock  *clockwork.FakeClock
	player string
}

func newTestServer(t *testing.T, opts ...Option) *testServer {
	t.Helper()
	fc := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	logger := log.New(io.Discard)
	client := storage.NewClient(storage.NewMemory(), storage.WithLogger(logger))
	opts = append([]Option{WithLogger(logger), WithClock(fc)}, opts...)
	return &testServer{t: t, srv: New(client, opts...), clock: fc, player: uuid.NewString()}
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	ts.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if ts.player != "" {
		req.Header.Set(playerHeader, ts.player)
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) errors.Code {
	t.Helper()
	return decode[errorBody](t, rec).Error.Code
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[healthResponse](t, rec); got.Status != "ok" || got.Build.Version == "" {
		t.Errorf("health = %+v", got)
	}
}

func TestPlayerIdentity(t *testing.T) {
	ts := newTestServer(t)
	ts.player = ""

	rec := ts.do(http.MethodGet, "/api/settings", "")
	id := rec.Header().Get(playerHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("generated player id %q: %v", id, err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != playerCookie || cookies[0].Value != id {
		t.Errorf("cookies = %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req.AddCookie(&http.Cookie{Name: playerCookie, Value: id})
	rec = httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(playerHeader); got != id {
		t.Errorf("cookie player = %q, want %q", got, id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("known player should not get a new cookie")
	}

	ts.player = "not-a-uuid"
	rec = ts.do(http.MethodGet, "/api/settings", "")
	if got := rec.Header().Get(playerHeader); got == "not-a-uuid" || got == "" {
		t.Errorf("malformed player id kept: %q", got)
	}
}

func TestThemes(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/api/themes", "")
	got := decode[[]themeResponse](t, rec)
	if len(got) != 4 {
		t.Fatalf("got %d themes, want 4", len(got))
	}
	for i, id := range theme.IDs() {
		if got[i].ID != id || got[i].Variant != id {
			t.Errorf("theme %d = %s/%s, want %s", i, got[i].ID, got[i].Variant, id)
		}
	}
	if got[0].Colors.HourHand == "" {
		t.Error("palette missing from response")
	}
}

func TestClockSVG(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/api/clock.svg?hour=3&minute=30&theme=tower&size=320&edit=true&active=hour", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"<title>03:30</title>", "clock-tower", `width="320"`, "hand-handle", "hand-hour active"} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestClockSVGUsesPlayerTheme(t *testing.T) {
	ts := newTestServer(t)
	ts.do(http.MethodPatch, "/api/settings", `{"clockTheme":"watch"}`)
	rec := ts.do(http.MethodGet, "/api/clock.svg", "")
	body := rec.Body.String()
	if !strings.Contains(body, "clock-watch") || !strings.Contains(body, "<title>10:30</title>") {
		t.Errorf("default clock did not use player theme and practice time:\n%s", body)
	}
}

func TestClockSVGErrors(t *testing.T) {
	tests := []struct {
		query string
		code  errors.Code
	}{
		{"hour=24", errors.ErrCodeInvalidTime},
		{"minute=60", errors.ErrCodeInvalidTime},
		{"hour=x", errors.ErrCodeInvalidInput},
		{"theme=disco", errors.ErrCodeInvalidTheme},
		{"size=8", errors.ErrCodeInvalidInput},
		{"size=99999", errors.ErrCodeInvalidInput},
		{"edit=maybe", errors.ErrCodeInvalidInput},
		{"active=second", errors.ErrCodeInvalidInput},
		{"date=32", errors.ErrCodeInvalidInput},
	}
	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := ts.do(http.MethodGet, "/api/clock.svg?"+tt.query, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if got := errorCode(t, rec); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestPhrase(t *testing.T) {
	tests := []struct {
		name, query, accept string
		want                speech.Utterance
	}{
		{"explicit german", "hour=6&minute=30&lang=de", "", speech.Utterance{Text: "Es ist halb 7", Locale: "de-DE", Rate: speech.DefaultRate}},
		{"auto from header", "hour=6&minute=15", "de-AT,de;q=0.9,en;q=0.5", speech.Utterance{Text: "Es ist viertel nach 6", Locale: "de-DE", Rate: speech.DefaultRate}},
		{"auto from english header", "hour=6&minute=0", "en-GB,en;q=0.8", speech.Utterance{Text: "6 o'clock AM", Locale: "en-US", Rate: speech.DefaultRate}},
		{"auto without header", "hour=6&minute=0", "", speech.Utterance{Text: "Es ist 6 Uhr", Locale: "de-DE", Rate: speech.DefaultRate}},
	}
	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/phrase?"+tt.query, nil)
			req.Header.Set(playerHeader, ts.player)
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			ts.srv.Handler().ServeHTTP(rec, req)
			got := decode[speech.Utterance](t, rec)
			if got.Locale != tt.want.Locale || got.Rate != tt.want.Rate || !strings.Contains(got.Text, tt.want.Text) {
				t.Errorf("utterance = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSettingsLifecycle(t *testing.T) {
	ts := newTestServer(t, WithDefaults(settings.Settings{ClockTheme: theme.IDLearning, SoundEnabled: true, Language: speech.SettingGerman}))

	if got := decode[settings.Settings](t, ts.do(http.MethodGet, "/api/settings", "")); got.ClockTheme != theme.IDLearning {
		t.Errorf("initial settings = %+v, want configured defaults", got)
	}

	rec := ts.do(http.MethodPatch, "/api/settings", `{"soundEnabled":false,"language":"EN"}`)
	got := decode[settings.Settings](t, rec)
	if got.SoundEnabled || got.Language != speech.SettingEnglish || got.ClockTheme != theme.IDLearning {
		t.Errorf("patched settings = %+v", got)
	}

	rec = ts.do(http.MethodPatch, "/api/settings", `{"clockTheme":"disco"}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != errors.ErrCodeInvalidTheme {
		t.Errorf("bad patch = %d %s", rec.Code, rec.Body)
	}
	rec = ts.do(http.MethodPatch, "/api/settings", `{"volume":3}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field status = %d", rec.Code)
	}

	other := *ts
	other.player = uuid.NewString()
	if got := decode[settings.Settings](t, other.do(http.MethodGet, "/api/settings", "")); !got.SoundEnabled {
		t.Error("settings leaked between players")
	}

	ts.srv.SetDefaults(settings.Defaults())
	got = decode[settings.Settings](t, ts.do(http.MethodDelete, "/api/settings", ""))
	if got != settings.Defaults() {
		t.Errorf("reset settings = %+v, want %+v", got, settings.Defaults())
	}
}

func TestProgressLifecycle(t *testing.T) {
	ts := newTestServer(t)

	got := decode[progress.LearningProgress](t, ts.do(http.MethodPost, "/api/progress/sessions", ""))
	if got.SessionsPlayed != 1 || got.LastPlayedAt == nil || !got.LastPlayedAt.Equal(ts.clock.Now()) {
		t.Errorf("after session = %+v", got)
	}

	ts.do(http.MethodPost, "/api/progress/correct", "")
	got = decode[progress.LearningProgress](t, ts.do(http.MethodPost, "/api/progress/correct", `{"count":3}`))
	if got.TotalCorrectAnswers != 4 {
		t.Errorf("correct answers = %d, want 4", got.TotalCorrectAnswers)
	}
	rec := ts.do(http.MethodPost, "/api/progress/correct", `{"count":0}`)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != errors.ErrCodeInvalidInput {
		t.Errorf("zero count = %d %s", rec.Code, rec.Body)
	}

	ts.do(http.MethodPost, "/api/progress/levels/clock_full_hours", "")
	got = decode[progress.LearningProgress](t, ts.do(http.MethodPost, "/api/progress/levels/clock_full_hours", ""))
	if len(got.CompletedLevels) != 1 || got.CompletedLevels[0] != "clock_full_hours" {
		t.Errorf("completed levels = %v", got.CompletedLevels)
	}
	rec = ts.do(http.MethodPost, "/api/progress/levels/bad%20level", "")
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != errors.ErrCodeInvalidLevel {
		t.Errorf("bad level = %d %s", rec.Code, rec.Body)
	}

	got = decode[progress.LearningProgress](t, ts.do(http.MethodDelete, "/api/progress", ""))
	if got.TotalCorrectAnswers != 0 || len(got.CompletedLevels) != 0 || got.CompletedLevels == nil {
		t.Errorf("reset progress = %+v", got)
	}
}

// slowBackend widens the gap between reading and writing a document, like
// a network round trip to Redis or MongoDB does.
type slowBackend struct {
	*storage.Memory
}

func (b slowBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok, err := b.Memory.Get(ctx, key)
	time.Sleep(2 * time.Millisecond)
	return v, ok, err
}

func TestConcurrentProgressUpdates(t *testing.T) {
	logger := log.New(io.Discard)
	client := storage.NewClient(slowBackend{storage.NewMemory()}, storage.WithLogger(logger))
	ts := &testServer{t: t, srv: New(client, WithLogger(logger)), player: uuid.NewString()}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/progress/correct", strings.NewReader(`{"count":1}`))
			req.Header.Set(playerHeader, ts.player)
			ts.srv.Handler().ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	got := decode[progress.LearningProgress](t, ts.do(http.MethodGet, "/api/progress", ""))
	if got.TotalCorrectAnswers != n {
		t.Errorf("after %d concurrent increments totalCorrectAnswers = %d", n, got.TotalCorrectAnswers)
	}
}

func TestPlayerRepositoriesShared(t *testing.T) {
	ts := newTestServer(t)
	ctx := withPlayer(context.Background(), ts.player)

	repo := ts.srv.progressRepo(ctx)
	if ts.srv.progressRepo(ctx) != repo || ts.srv.settingsStore(ctx) != ts.srv.settingsStore(ctx) {
		t.Error("requests of one player should share their repositories")
	}
	if other := ts.srv.progressRepo(withPlayer(context.Background(), uuid.NewString())); other == repo {
		t.Error("players should not share repositories")
	}

	ts.clock.Advance(playerTTL + time.Minute)
	ts.srv.progressRepo(ctx)
	if got := ts.srv.players.len(); got != 1 {
		t.Errorf("idle players should be dropped, %d left", got)
	}
}

func TestQuizFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/quiz", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	created := decode[quizResponse](t, rec)
	if created.ID == "" || created.Required != game.RequiredCorrect || len(created.Question.Options) != game.OptionCount {
		t.Fatalf("created = %+v", created)
	}
	base := "/api/quiz/" + created.ID

	wrong := created.Question.Hour%12 + 1
	ans := decode[answerResponse](t, ts.do(http.MethodPost, base+"/answer", `{"hour":`+itoa(wrong)+`}`))
	if ans.Feedback == nil || ans.Feedback.Kind != game.FeedbackError || ans.DelayMS != game.ErrorDelay.Milliseconds() {
		t.Errorf("wrong answer = %+v", ans)
	}

	rec = ts.do(http.MethodPost, base+"/answer", `{"hour":`+itoa(created.Question.Hour)+`}`)
	if rec.Code != http.StatusConflict || errorCode(t, rec) != errors.ErrCodeAnswerPending {
		t.Errorf("pending answer = %d %s", rec.Code, rec.Body)
	}

	state := decode[quizResponse](t, ts.do(http.MethodPost, base+"/next", ""))
	if state.Feedback != nil || state.Question.Hour != created.Question.Hour {
		t.Errorf("after wrong answer the question should stay: %+v", state)
	}

	for i := 0; i < game.RequiredCorrect; i++ {
		ans = decode[answerResponse](t, ts.do(http.MethodPost, base+"/answer", `{"hour":`+itoa(state.Question.Hour)+`}`))
		if ans.Feedback == nil || ans.Feedback.Kind != game.FeedbackSuccess {
			t.Fatalf("answer %d = %+v", i, ans)
		}
		state = decode[quizResponse](t, ts.do(http.MethodPost, base+"/next", ""))
	}
	if !state.Complete || state.CorrectCount != game.RequiredCorrect {
		t.Errorf("final state = %+v", state)
	}
	p := decode[progress.LearningProgress](t, ts.do(http.MethodGet, "/api/progress", ""))
	if !p.Completed(game.LevelFullHours) || p.TotalCorrectAnswers != game.RequiredCorrect {
		t.Errorf("progress = %+v", p)
	}

	state = decode[quizResponse](t, ts.do(http.MethodPost, base+"/restart", ""))
	if state.CorrectCount != 0 || state.Complete || !state.AlreadyCompleted {
		t.Errorf("restarted = %+v", state)
	}

	rec = ts.do(http.MethodPost, base+"/answer", `{"hour":13}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out of range answer status = %d", rec.Code)
	}
}

func TestQuizOwnershipAndExpiry(t *testing.T) {
	ts := newTestServer(t)
	created := decode[quizResponse](t, ts.do(http.MethodPost, "/api/quiz", ""))

	other := *ts
	other.player = uuid.NewString()
	if rec := other.do(http.MethodGet, "/api/quiz/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("other player status = %d, want 404", rec.Code)
	}
	if rec := ts.do(http.MethodGet, "/api/quiz/"+created.ID, ""); rec.Code != http.StatusOK {
		t.Errorf("owner status = %d", rec.Code)
	}

	ts.clock.Advance(quizTTL + time.Minute)
	if rec := ts.do(http.MethodGet, "/api/quiz/"+created.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("expired status = %d, want 404", rec.Code)
	}
	if n := ts.srv.quizzes.len(); n != 0 {
		t.Errorf("expired quiz still stored, %d entries", n)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeInvalidTime:        http.StatusBadRequest,
		errors.ErrCodeNotFound:           http.StatusNotFound,
		errors.ErrCodeAnswerPending:      http.StatusConflict,
		errors.ErrCodeQuotaExceeded:      http.StatusInsufficientStorage,
		errors.ErrCodeStorageUnavailable: http.StatusServiceUnavailable,
		errors.ErrCodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestListenAndServe(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	addrc := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- ts.srv.ListenAndServe(ctx, ServeOptions{
			Addr:            "127.0.0.1:0",
			ShutdownTimeout: time.Second,
			Ready:           func(a net.Addr) { addrc <- a },
		})
	}()

	addr := <-addrc
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe = %v", err)
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
