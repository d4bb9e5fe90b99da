package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/matzehuels/uhrzeit/pkg/buildinfo"
	"github.com/matzehuels/uhrzeit/pkg/clock"
	"github.com/matzehuels/uhrzeit/pkg/clock/face"
	"github.com/matzehuels/uhrzeit/pkg/clock/theme"
	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/game"
	"github.com/matzehuels/uhrzeit/pkg/observability"
	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/speech"
)

const (
	minClockSize = 32
	maxClockSize = 2048
)

type healthResponse struct {
	Status  string         `json:"status"`
	Build   buildinfo.Info `json:"build"`
	Quizzes int            `json:"quizzes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current(), Quizzes: s.quizzes.len()})
}

type themeResponse struct {
	theme.Theme
	Variant theme.ID `json:"variant"`
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	all := theme.All()
	out := make([]themeResponse, len(all))
	for i, th := range all {
		out[i] = themeResponse{Theme: th, Variant: th.Decoration.Variant()}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleClockSVG renders a clock face. Omitted parameters fall back to the
// practice start time and the player's theme.
func (s *Server) handleClockSVG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := queryTime(r, clock.Time{Hour: game.PracticeHour, Minute: game.PracticeMinute})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id := s.settingsStore(ctx).Get(ctx).ClockTheme
	if v := r.URL.Query().Get("theme"); v != "" {
		if id, err = theme.ParseID(v); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	size, err := queryInt(r, "size", face.DefaultSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if size < minClockSize || size > maxClockSize {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "size must be between %d and %d, got %d", minClockSize, maxClockSize, size))
		return
	}

	opts := []face.SVGOption{face.WithTheme(theme.Lookup(id)), face.WithSize(size)}
	edit, err := queryBool(r, "edit", false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if edit {
		opts = append(opts, face.WithEditable())
	}
	if v := r.URL.Query().Get("active"); v != "" {
		h := clock.ParseHand(v)
		if h == clock.HandNone {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "active must be hour or minute, got %q", v))
			return
		}
		opts = append(opts, face.WithActiveHand(h))
	}
	day, err := queryInt(r, "date", 0)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if day < 0 || day > 31 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "date must be between 1 and 31, got %d", day))
		return
	}
	if day > 0 {
		opts = append(opts, face.WithDate(day))
	}

	start := s.clock.Now()
	svg := face.RenderSVG(t, opts...)
	observability.Render().OnRender(ctx, string(id), size, s.clock.Since(start))

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(svg)
}

// handlePhrase returns the utterance for a time. Automatic language
// detection uses the request's Accept-Language header.
func (s *Server) handlePhrase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := queryTime(r, clock.Time{Hour: game.PracticeHour, Minute: game.PracticeMinute})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setting := s.settingsStore(ctx).Get(ctx).Language
	if v := r.URL.Query().Get("lang"); v != "" {
		if setting, err = speech.ParseSetting(v); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, speech.NewUtterance(t.Hour, t.Minute, setting, acceptedLanguage(r)))
}

// acceptedLanguage returns the most preferred tag of Accept-Language.
func acceptedLanguage(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

func queryTime(r *http.Request, def clock.Time) (clock.Time, error) {
	hour, err := queryInt(r, "hour", def.Hour)
	if err != nil {
		return clock.Time{}, err
	}
	minute, err := queryInt(r, "minute", def.Minute)
	if err != nil {
		return clock.Time{}, err
	}
	return clock.New(hour, minute)
}

// =============================================================================
// Settings
// =============================================================================

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settingsStore(r.Context()).Get(r.Context()))
}

func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var p settings.Patch
	if err := decodeBody(r, &p); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.settingsStore(r.Context()).Update(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settingsStore(r.Context()).Reset(r.Context()))
}

// =============================================================================
// Progress
// =============================================================================

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.progressRepo(r.Context()).GetProgress(r.Context()))
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	repo := s.progressRepo(r.Context())
	repo.ResetProgress(r.Context())
	writeJSON(w, http.StatusOK, repo.GetProgress(r.Context()))
}

func (s *Server) handleCompleteLevel(w http.ResponseWriter, r *http.Request) {
	p, err := progress.CompleteLevel(r.Context(), s.progressRepo(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type correctRequest struct {
	Count *int `json:"count"`
}

func (s *Server) handleCorrectAnswers(w http.ResponseWriter, r *http.Request) {
	var req correctRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	n := 1
	if req.Count != nil {
		n = *req.Count
	}
	repo := s.progressRepo(r.Context())
	if err := repo.IncrementCorrectAnswers(r.Context(), n); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, repo.GetProgress(r.Context()))
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.StartSession(r.Context(), s.progressRepo(r.Context())))
}

// =============================================================================
// Quiz
// =============================================================================

type quizResponse struct {
	ID string `json:"id"`
	game.QuizState
}

type answerRequest struct {
	Hour int `json:"hour"`
}

type answerResponse struct {
	quizResponse
	DelayMS int64 `json:"delayMs"`
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := game.NewQuiz(s.progressRepo(ctx))
	id := s.quizzes.add(playerFromContext(ctx), q)
	writeJSON(w, http.StatusCreated, quizResponse{ID: id, QuizState: q.State(ctx)})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	s.withQuiz(w, r, func(id string, q *game.Quiz) {
		writeJSON(w, http.StatusOK, quizResponse{ID: id, QuizState: q.State(r.Context())})
	})
}

// handleAnswerQuiz checks an answer. The client shows the feedback for
// delayMs and then calls next.
func (s *Server) handleAnswerQuiz(w http.ResponseWriter, r *http.Request) {
	s.withQuiz(w, r, func(id string, q *game.Quiz) {
		var req answerRequest
		if err := decodeBody(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if _, err := q.Answer(r.Context(), req.Hour); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, answerResponse{
			quizResponse: quizResponse{ID: id, QuizState: q.State(r.Context())},
			DelayMS:      q.Delay().Milliseconds(),
		})
	})
}

func (s *Server) handleNextQuiz(w http.ResponseWriter, r *http.Request) {
	s.withQuiz(w, r, func(id string, q *game.Quiz) {
		q.Continue()
		writeJSON(w, http.StatusOK, quizResponse{ID: id, QuizState: q.State(r.Context())})
	})
}

func (s *Server) handleRestartQuiz(w http.ResponseWriter, r *http.Request) {
	s.withQuiz(w, r, func(id string, q *game.Quiz) {
		q.Restart()
		writeJSON(w, http.StatusOK, quizResponse{ID: id, QuizState: q.State(r.Context())})
	})
}

func (s *Server) withQuiz(w http.ResponseWriter, r *http.Request, fn func(id string, q *game.Quiz)) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	q, err := s.quizzes.get(playerFromContext(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	fn(id, q)
}
