package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mizanlabs/athan/chain"
	"github.com/mizanlabs/athan/metrics"
	"github.com/mizanlabs/athan/store"
)

// newDebugRouter exposes read-only introspection endpoints for operators:
// the pending notification set, the chain state, and counter snapshots.
func newDebugRouter(st store.NotificationStore, controller *chain.Controller, col *metrics.InMemory) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"state": controller.State(),
		})
	})

	r.Get("/pending", func(w http.ResponseWriter, req *http.Request) {
		pending, err := st.ListPending(req.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"count":         len(pending),
			"notifications": pending,
		})
	})

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"pending_notifications": col.GetPendingNotifications(),
			"future_prayers":        col.GetFuturePrayers(),
			"scheduled_total":       col.GetScheduled(),
			"schedule_failures":     col.GetScheduleFailures(),
			"refresh_cycles_armed":    col.GetRefreshCycles(string(chain.StateArmed)),
			"refresh_cycles_degraded": col.GetRefreshCycles(string(chain.StateDegraded)),
			"fallback_arms":         col.GetFallbackArms(),
			"health_repairs":        col.GetHealthRepairs(),
			"generated_at":          time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
