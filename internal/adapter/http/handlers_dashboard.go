package adapthttp

import (
	"errors"
	"net/http"

	"weightgoal/internal/analytics"
	"weightgoal/internal/metrics"
)

// handleDashboard serves the goal dashboard. Query: days (window length),
// bar (BMI bar width in px).
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	days := intQuery(r, "days", analytics.DefaultWindow)
	bar := floatQuery(r, "bar", analytics.DefaultBarWidth)

	d, err := s.dashboard.Get(r.Context(), user.ID, days, bar, s.today())
	if err != nil {
		writeAppError(w, err)
		return
	}
	s.withMetrics(func(m *metrics.Manager) { m.CounterDashboards.Inc() })
	writeJSON(w, http.StatusOK, d)
}
