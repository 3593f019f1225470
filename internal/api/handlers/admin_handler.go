package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sillaskon/incidentreporthub-be/internal/county"
	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

// AdminHandler exposes operator listings and the county-directory reload,
// gated by a shared admin token.
type AdminHandler struct {
	adminToken string
	users      services.UserServiceProvider
	requests   services.RequestServiceProvider
	inbound    services.InboundServiceProvider
	directory  *county.Directory
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminToken string, users services.UserServiceProvider, requests services.RequestServiceProvider, inbound services.InboundServiceProvider, directory *county.Directory) *AdminHandler {
	return &AdminHandler{
		adminToken: adminToken,
		users:      users,
		requests:   requests,
		inbound:    inbound,
		directory:  directory,
	}
}

// RequireToken rejects requests whose token query parameter does not match
// the configured admin token.
func (h *AdminHandler) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListUsers handles listing all registered users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ListRequests handles listing the full request ledger.
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.requests.ListRequests()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list incident requests")
		writeError(w, http.StatusInternalServerError, "Failed to list incident requests")
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

// ListInbound handles listing all recorded inbound emails.
func (h *AdminHandler) ListInbound(w http.ResponseWriter, r *http.Request) {
	emails, err := h.inbound.ListInbound()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list inbound emails")
		writeError(w, http.StatusInternalServerError, "Failed to list inbound emails")
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

// RefreshCounties reloads the county directory from its sources.
func (h *AdminHandler) RefreshCounties(w http.ResponseWriter, r *http.Request) {
	n, err := h.directory.Refresh()
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh county directory")
		writeError(w, http.StatusInternalServerError, "Failed to refresh county directory")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"entries": n})
}
