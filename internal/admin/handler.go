package admin

import (
	"log/slog"
	"net/http"
	"time"

	"veilandvow-backend/internal/auth"
	"veilandvow-backend/internal/config"
	"veilandvow-backend/internal/httpx"
	"veilandvow-backend/internal/middleware"
	"veilandvow-backend/internal/transport"
	"veilandvow-backend/internal/validation"
)

const RefreshCookie = "vv_refresh"

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Handler struct {
	cfg *config.Config
	jwt *auth.Manager
	val *validation.Validator
	log *slog.Logger
}

func NewHandler(cfg *config.Config, jwt *auth.Manager, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		cfg: cfg,
		jwt: jwt,
		val: val,
		log: log,
	}
}

func (h *Handler) configured() bool {
	return h.jwt != nil && h.cfg.AdminUser != "" && h.cfg.AdminPasswordHash != ""
}

// Login handles POST /api/admin/login. Credentials are checked against
// the single studio operator account from the environment; success sets
// the access and refresh token cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if !h.configured() {
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	var req loginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if req.Username != h.cfg.AdminUser || auth.ComparePassword(h.cfg.AdminPasswordHash, req.Password) != nil {
		log.Warn("admin login: bad credentials", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	if err := h.issueTokens(w); err != nil {
		log.Error("admin login: token issue failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	log.Info("admin login: ok", slog.String("username", req.Username))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Refresh handles POST /api/admin/refresh. A valid refresh cookie is
// exchanged for a fresh access/refresh pair.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if !h.configured() {
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	cookie, err := r.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		transport.WriteError(w, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	claims, err := h.jwt.Parse(cookie.Value)
	if err != nil || claims.Role != "admin" {
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	if err := h.issueTokens(w); err != nil {
		log.Error("admin refresh: token issue failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Logout handles POST /api/admin/logout by expiring both cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, middleware.AccessCookie)
	h.clearCookie(w, RefreshCookie)
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) issueTokens(w http.ResponseWriter) error {
	access, err := h.jwt.NewAccessToken("admin")
	if err != nil {
		return err
	}
	refresh, err := h.jwt.NewRefreshToken("admin")
	if err != nil {
		return err
	}

	h.setCookie(w, middleware.AccessCookie, access, h.jwt.AccessTTL)
	h.setCookie(w, RefreshCookie, refresh, h.jwt.RefreshTTL)
	return nil
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
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
