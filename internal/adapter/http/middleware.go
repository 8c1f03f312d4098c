package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"weightgoal/internal/app"
	"weightgoal/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const userContextKey contextKey = "user"

// localUser is the identity used when authentication is disabled.
var localUser = &domain.User{ID: 1, Username: "local"}

func userFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey).(*domain.User)
	return u, ok && u != nil
}

// authMiddleware validates session tokens and forward auth headers.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.disableAuth {
			ctx := context.WithValue(r.Context(), userContextKey, localUser)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if remoteUser := r.Header.Get("Remote-User"); s.trustForwardAuth && remoteUser != "" {
			user, err := s.authSvc.ValidateForwardAuth(r.Context(), remoteUser)
			if err == nil && user != nil {
				ctx := context.WithValue(r.Context(), userContextKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			log.WithError(err).WithField("remote_user", remoteUser).Warn("forward auth rejected")
		}

		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		user, err := s.authSvc.ValidateSession(r.Context(), cookie.Value, r.UserAgent())
		if errors.Is(err, app.ErrSessionNotFound) || errors.Is(err, app.ErrSessionExpired) || errors.Is(err, app.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		if err != nil {
			log.WithError(err).Error("validate session")
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(resp, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   resp.statusCode,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func(begin time.Time) {
			s.metrics.HistRequestDuration.Observe(time.Since(begin).Seconds())
		}(time.Now())

		resp := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(resp, r)

		s.metrics.CounterRequests.With(
			prometheus.Labels{
				"method": r.Method,
				"status": strconv.Itoa(resp.statusCode),
			},
		).Inc()
	})
}
