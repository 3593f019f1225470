package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/sillaskon/incidentreporthub-be/internal/auth"
	"github.com/sillaskon/incidentreporthub-be/internal/county"
	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

// RequestHandler handles incident request submission and listing.
type RequestHandler struct {
	service services.RequestServiceProvider
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service services.RequestServiceProvider) *RequestHandler {
	return &RequestHandler{service: service}
}

// IncidentRequestPayload defines the structure for submissions.
type IncidentRequestPayload struct {
	IncidentAddress  string `json:"incident_address"`
	IncidentDatetime string `json:"incident_datetime"`
	County           string `json:"county"`
}

// Create handles one incident request submission. The bearer token has
// already been verified by the middleware; the payload is validated here,
// before the workflow runs.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	rawToken, _ := r.Context().Value(auth.RawTokenKey).(string)
	if !ok || rawToken == "" {
		log.Error().Msg("Could not retrieve token from context")
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var payload IncidentRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.IncidentAddress == "" || payload.IncidentDatetime == "" || payload.County == "" {
		writeError(w, http.StatusBadRequest, "incident_address, incident_datetime and county are required")
		return
	}

	id, err := h.service.CreateRequest(r.Context(), services.IntakeInput{
		Token:            rawToken,
		Username:         claims.Subject,
		IncidentAddress:  payload.IncidentAddress,
		IncidentDatetime: payload.IncidentDatetime,
		County:           payload.County,
	})
	if err != nil {
		switch {
		case errors.Is(err, county.ErrUnknownCounty):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("No email found for county '%s'", payload.County))
		case errors.Is(err, services.ErrNotificationFailed):
			log.Error().Err(err).Int64("request_id", id).Msg("Failed to send request email")
			writeError(w, http.StatusInternalServerError, "Failed to send email")
		default:
			log.Error().Err(err).Str("county", payload.County).Msg("Failed to persist incident request")
			writeError(w, http.StatusInternalServerError, "Failed to persist incident request")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"msg":        "Incident request created and email sent",
		"request_id": id,
	})
}

// GetRecent handles the request to list recent submissions.
func (h *RequestHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	reqs, err := h.service.GetRecentRequests(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve recent requests")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve requests")
		return
	}

	writeJSON(w, http.StatusOK, reqs)
}
