package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sillaskon/incidentreporthub-be/internal/services"
)

// InboundHandler accepts inbound-parse webhook posts from the email
// provider. It records what arrived and acknowledges unconditionally;
// reply parsing belongs to a later phase.
type InboundHandler struct {
	service services.InboundServiceProvider
}

// NewInboundHandler creates a new InboundHandler.
func NewInboundHandler(service services.InboundServiceProvider) *InboundHandler {
	return &InboundHandler{service: service}
}

// Receive handles one inbound email post. The provider sends
// multipart/form-data with attachments as file parts.
func (h *InboundHandler) Receive(w http.ResponseWriter, r *http.Request) {
	attachmentCount := 0
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		// Plain form-encoded posts are fine too.
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid form body")
			return
		}
	} else if r.MultipartForm != nil {
		for _, files := range r.MultipartForm.File {
			attachmentCount += len(files)
		}
	}

	sender := r.FormValue("from")
	subject := r.FormValue("subject")
	body := r.FormValue("text")

	id, err := h.service.Record(sender, subject, body, attachmentCount)
	if err != nil {
		// The webhook is acknowledged regardless so the provider does not
		// redeliver; the loss is logged.
		log.Error().Err(err).Str("from", sender).Msg("Failed to record inbound email")
	} else {
		log.Info().Int64("inbound_id", id).Str("from", sender).Str("subject", subject).
			Int("attachments", attachmentCount).Msg("Inbound email recorded")
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
