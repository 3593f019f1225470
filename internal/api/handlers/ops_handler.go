package handlers

import (
	"database/sql"
	"net/http"
)

// OpsHandler serves the unauthenticated liveness probes.
type OpsHandler struct {
	db *sql.DB
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(db *sql.DB) *OpsHandler {
	return &OpsHandler{db: db}
}

// Ping handles the trivial liveness probe.
func (h *OpsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"pong": true})
}

// Healthz reports process and database health. Always 200; the body says
// whether the store answered.
func (h *OpsHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"ok": true, "db": false, "error": nil}
	if err := h.db.PingContext(r.Context()); err != nil {
		status["error"] = err.Error()
	} else {
		status["db"] = true
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, status)
}
