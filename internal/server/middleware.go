package web

import (
	"net/http"
	"strings"
	"time"

	"learning-hub/internal/auth"

	"go.uber.org/zap"
)

// adminHandler receives the resolved session as an explicit argument.
type adminHandler func(w http.ResponseWriter, r *http.Request, sess auth.Session)

// admin resolves the bearer token and rejects requests without a live session.
func (s *Server) admin(h adminHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		sess, err := s.sessions.Resolve(r.Context(), token)
		if err != nil {
			if err != auth.ErrInvalidSession {
				s.logger.Error("Session lookup failed", zap.Error(err))
			}
			writeError(w, http.StatusUnauthorized, auth.ErrInvalidSession.Error())
			return
		}
		h(w, r, sess)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}
