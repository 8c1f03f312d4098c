package adapthttp

import (
	"net/http"
	"time"

	"weightgoal/internal/app"
	"weightgoal/internal/domain"
	"weightgoal/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight    *app.WeightService
	dashboard *app.DashboardService
	authSvc   *app.AuthService
	webDir    string

	oidcConfig       OIDCConfig
	metrics          *metrics.Manager
	gatherer         prometheus.Gatherer
	loc              *time.Location
	now              func() time.Time
	disableAuth      bool
	trustForwardAuth bool
}

// New creates a Server wired to the given application services.
func New(ws *app.WeightService, ds *app.DashboardService, as *app.AuthService, webDir string) *Server {
	return &Server{
		weight:    ws,
		dashboard: ds,
		authSvc:   as,
		webDir:    webDir,
		loc:       time.UTC,
		now:       time.Now,
	}
}

// WithoutAuth disables authentication. Every request acts as the local
// user (ID 1).
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithForwardAuth trusts the Remote-User header set by a reverse proxy.
func (s *Server) WithForwardAuth() *Server {
	s.trustForwardAuth = true
	return s
}

// WithOIDC enables the SSO endpoints.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithMetrics records request metrics into m and serves g on /metrics.
func (s *Server) WithMetrics(m *metrics.Manager, g prometheus.Gatherer) *Server {
	s.metrics = m
	s.gatherer = g
	return s
}

// WithLocation sets the time zone that decides the current calendar day.
func (s *Server) WithLocation(loc *time.Location) *Server {
	if loc != nil {
		s.loc = loc
	}
	return s
}

// WithClock overrides the wall clock.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

func (s *Server) today() domain.CalendarDate {
	return domain.DateIn(s.now(), s.loc)
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.Handle("/weight/entries", s.authMiddleware(http.HandlerFunc(s.handleWeightEntries)))
	api.Handle("/weight/undo-last", s.authMiddleware(http.HandlerFunc(s.handleWeightUndoLast)))
	api.Handle("/dashboard", s.authMiddleware(http.HandlerFunc(s.handleDashboard)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.gatherer != nil {
		root.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	root.Handle("/", spaFromDisk(s.webDir))

	var h http.Handler = withNoCache(root)
	if s.metrics != nil {
		h = s.metricsMiddleware(h)
	}
	return s.loggingMiddleware(h)
}
