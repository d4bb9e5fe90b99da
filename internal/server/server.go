// Package server implements the uhrzeit HTTP API.
//
// Every request belongs to a player, an anonymous UUID taken from the
// X-Player-ID header or the uhrzeit_player cookie and generated when
// missing. Progress, settings and quiz sessions are scoped to the player.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/matzehuels/uhrzeit/pkg/progress"
	"github.com/matzehuels/uhrzeit/pkg/settings"
	"github.com/matzehuels/uhrzeit/pkg/storage"
)

// Server serves the HTTP API.
type Server struct {
	logger   *log.Logger
	clock    clockwork.Clock
	defaults settings.Settings
	players  *playerStore
	quizzes  *quizStore
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithClock sets the clock for timestamps and quiz expiry.
func WithClock(c clockwork.Clock) Option { return func(s *Server) { s.clock = c } }

// WithDefaults sets the settings of players without stored settings.
func WithDefaults(d settings.Settings) Option { return func(s *Server) { s.defaults = d } }

// New creates a server storing player data through client.
func New(client *storage.Client, opts ...Option) *Server {
	s := &Server{
		logger:   log.Default(),
		clock:    clockwork.NewRealClock(),
		defaults: settings.Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.players = newPlayerStore(client, s.clock, s.defaults)
	s.quizzes = newQuizStore(s.clock)
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// SetDefaults replaces the settings of players without stored settings,
// for example after the configuration was reloaded.
func (s *Server) SetDefaults(d settings.Settings) {
	s.players.setDefaults(d)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.playerMiddleware)

		r.Get("/themes", s.handleThemes)
		r.Get("/clock.svg", s.handleClockSVG)
		r.Get("/phrase", s.handlePhrase)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Patch("/", s.handlePatchSettings)
			r.Delete("/", s.handleResetSettings)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/", s.handleGetProgress)
			r.Delete("/", s.handleResetProgress)
			r.Post("/levels/{id}", s.handleCompleteLevel)
			r.Post("/correct", s.handleCorrectAnswers)
			r.Post("/sessions", s.handleStartSession)
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Post("/", s.handleCreateQuiz)
			r.Get("/{id}", s.handleGetQuiz)
			r.Post("/{id}/answer", s.handleAnswerQuiz)
			r.Post("/{id}/next", s.handleNextQuiz)
			r.Post("/{id}/restart", s.handleRestartQuiz)
		})
	})
	return r
}

// progressRepo returns the progress repository of the request's player.
func (s *Server) progressRepo(ctx context.Context) *progress.LocalRepository {
	return s.players.get(playerFromContext(ctx)).progress
}

func (s *Server) settingsStore(ctx context.Context) *settings.Store {
	return s.players.get(playerFromContext(ctx)).settings
}

// ServeOptions configures ListenAndServe.
type ServeOptions struct {
	Addr            string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	// Ready, if set, receives the bound address once listening.
	Ready func(addr net.Addr)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, opts ServeOptions) error {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: opts.ReadTimeout,
		ReadTimeout:       opts.ReadTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	if opts.Ready != nil {
		opts.Ready(ln.Addr())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down server", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
