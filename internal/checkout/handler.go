package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"veilandvow-backend/internal/config"
	"veilandvow-backend/internal/httpx"
	"veilandvow-backend/internal/middleware"
	"veilandvow-backend/internal/transport"
	"veilandvow-backend/internal/validation"
)

// Sessions is the seam the handler talks through so tests can fake the
// Stripe call.
type Sessions interface {
	CreateSession(ctx context.Context, params SessionParams) (Session, error)
}

type createRequest struct {
	Partner1 string `json:"partner1" validate:"required,min=1,max=120"`
	Partner2 string `json:"partner2" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
}

type Handler struct {
	sessions Sessions
	cfg      *config.Config
	val      *validation.Validator
	log      *slog.Logger
}

func NewHandler(sessions Sessions, cfg *config.Config, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		cfg:      cfg,
		val:      val,
		log:      log,
	}
}

// CreateSession handles POST /api/stripe/create-checkout. It asks
// Stripe for a hosted payment page holding the booking deposit and
// hands the URL back for the browser to redirect to.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.sessions == nil {
		transport.WriteError(w, http.StatusServiceUnavailable, "payments not configured", nil)
		return
	}

	var req createRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	session, err := h.sessions.CreateSession(ctx, SessionParams{
		CustomerEmail: strings.TrimSpace(req.Email),
		PartnerNames:  fmt.Sprintf("%s & %s", strings.TrimSpace(req.Partner1), strings.TrimSpace(req.Partner2)),
		AmountCents:   h.cfg.DepositAmountCents,
		Currency:      h.cfg.DepositCurrency,
		SuccessURL:    h.cfg.CheckoutSuccessURL,
		CancelURL:     h.cfg.CheckoutCancelURL,
	})
	if err != nil {
		log.Error("checkout: stripe session failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "payment provider error", nil)
		return
	}

	log.Info("checkout: session created", slog.String("session_id", session.ID))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"url": session.URL})
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
