package adapthttp

import (
	"errors"
	"net/http"

	"weightgoal/internal/domain"
	"weightgoal/internal/metrics"
)

func (s *Server) handleWeightEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := userFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := s.weight.ListEntries(ctx, user.ID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if items == nil {
			items = []domain.WeightEntry{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body struct {
			Date  string  `json:"date"`
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
			Notes string  `json:"notes"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		today := s.today()
		entry, err := s.weight.RecordWeight(ctx, user.ID, body.Date, body.Value, body.Unit, body.Notes, today)
		if err != nil {
			writeAppError(w, err)
			return
		}
		s.withMetrics(func(m *metrics.Manager) { m.CounterWeightEntries.Inc() })
		writeJSON(w, http.StatusOK, map[string]any{"today": today, "entry": entry})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	deleted, err := s.weight.UndoLast(r.Context(), user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if deleted {
		s.withMetrics(func(m *metrics.Manager) { m.CounterUndos.Inc() })
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
