package consultation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"veilandvow-backend/internal/middleware"
	"veilandvow-backend/internal/transport"
)

const (
	msgReceived      = "Consultation request received"
	errMissingFields = "Missing required fields"
	errEmailFailed   = "Failed to send email"
	errGeneric       = "Failed to submit consultation request"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

type submitResponse struct {
	Success          bool    `json:"success"`
	Message          string  `json:"message"`
	AirtableRecordID *string `json:"airtableRecordId"`
	EmailID          *string `json:"emailId"`
}

// Submit accepts a briefing-form lead and fans it out to the record store
// and the notification mailer. The response contract is fixed: 400 only
// for missing identity fields, 500 "Failed to send email" only when the
// notification failed and nothing was persisted, otherwise 200 with
// whatever ids the collaborators produced (null when skipped or failed).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	// Outermost error boundary: anything unexpected becomes a generic 500
	// with no stack trace leaking to the client.
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("consultation submit: panic", slog.Any("panic", rec))
			transport.WriteError(w, http.StatusInternalServerError, errGeneric, nil)
		}
	}()

	var lead Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		log.Error("consultation submit: unreadable body", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, errGeneric, nil)
		return
	}

	if strings.TrimSpace(lead.Partner1) == "" ||
		strings.TrimSpace(lead.Partner2) == "" ||
		strings.TrimSpace(lead.Email) == "" {
		log.Warn("consultation submit: missing required fields")
		transport.WriteError(w, http.StatusBadRequest, errMissingFields, nil)
		return
	}

	receipt := h.service.Submit(r.Context(), lead)
	if receipt.Failed() {
		transport.WriteError(w, http.StatusInternalServerError, errEmailFailed, nil)
		return
	}

	log.Info("consultation submit: ok",
		slog.Bool("record_stored", receipt.Record.ID != ""),
		slog.Bool("email_sent", receipt.Email.ID != ""),
	)
	transport.WriteJSON(w, http.StatusOK, submitResponse{
		Success:          true,
		Message:          msgReceived,
		AirtableRecordID: nullable(receipt.Record.ID),
		EmailID:          nullable(receipt.Email.ID),
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
