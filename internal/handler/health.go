package handler

import (
	"context"
	"net/http"

	"github.com/healthsync/healthsync-go/internal/logging"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and database checks.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleRoot handles GET / requests.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the HealthSync API"})
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleDBHealth handles GET /api/db-health requests.
func (h *HealthHandler) HandleDBHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Error("database health check failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "Database connection failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Database connected"})
}
