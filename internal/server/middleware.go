package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	playerHeader = "X-Player-ID"
	playerCookie = "uhrzeit_player"
)

type ctxKey int

const playerKey ctxKey = 0

func withPlayer(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, playerKey, id)
}

func playerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(playerKey).(string)
	return id
}

// playerMiddleware resolves the player of a request. Malformed ids are
// replaced rather than rejected, and a new id is returned in both the
// header and the cookie.
func (s *Server) playerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := parsePlayer(r.Header.Get(playerHeader))
		if !ok {
			if c, err := r.Cookie(playerCookie); err == nil {
				id, ok = parsePlayer(c.Value)
			}
		}
		if !ok {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     playerCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   400 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(playerHeader, id)
		next.ServeHTTP(w, r.WithContext(withPlayer(r.Context(), id)))
	})
}

func parsePlayer(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// requestLogger logs one line per request at debug level, and at warn level
// for server errors.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= 500 {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Debug("request", fields...)
	})
}
