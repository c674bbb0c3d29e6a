package http

import (
	"encoding/json"
	"net/http"
	"time"

	"budget/internal/core"
	applog "budget/internal/log"
)

type dashboardPage struct {
	dashboardView
	Categories []core.Category
	Message    string
	Error      string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := s.currentIdentity(r)
	if !ok {
		s.renderLogin(w, http.StatusOK, loginPage{})
		return
	}

	view, err := s.dashboardFor(r, id)
	if err != nil {
		s.logger.Error("Failed loading dashboard",
			applog.FieldUsername, id.Username,
			applog.FieldError, err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	page := dashboardPage{
		dashboardView: view,
		Categories:    core.Categories(),
		Message:       r.URL.Query().Get("msg"),
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", page); err != nil {
		s.logger.Error("Failed rendering dashboard", applog.FieldError, err)
	}
}

// dashboardFor assembles the view, served from cache when fresh.
func (s *Server) dashboardFor(r *http.Request, id core.Identity) (dashboardView, error) {
	if view, ok := s.dashCache.Get(id.CustomerID); ok {
		return view, nil
	}

	ctx := r.Context()
	txs, err := s.ledger.List(ctx, id)
	if err != nil {
		return dashboardView{}, err
	}

	view := dashboardView{
		Username:     id.Username,
		Transactions: txs,
		Summary:      core.Summarize(txs),
		Breakdown:    core.BreakdownByCategory(txs),
		Trend:        core.MonthlyTrend(txs),
	}
	s.dashCache.Set(id.CustomerID, view)
	return view, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]string{"templates": "ok"}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
