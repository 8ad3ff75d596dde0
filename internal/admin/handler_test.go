package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veilandvow-backend/internal/auth"
	"veilandvow-backend/internal/config"
	"veilandvow-backend/internal/middleware"
	"veilandvow-backend/internal/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHandler(t *testing.T) *Handler {
	t.Helper()
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := &config.Config{
		AdminUser:         "studio",
		AdminPasswordHash: hash,
	}
	manager := &auth.Manager{
		Secret:     []byte("test-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		Issuer:     "veilandvow",
	}
	return NewHandler(cfg, manager, validation.New(), discardLogger())
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookies(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username":"studio","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	access := cookieByName(cookies, middleware.AccessCookie)
	refresh := cookieByName(cookies, RefreshCookie)
	if access == nil || access.Value == "" {
		t.Fatal("missing access cookie")
	}
	if refresh == nil || refresh.Value == "" {
		t.Fatal("missing refresh cookie")
	}
	if !access.HttpOnly {
		t.Fatal("access cookie must be HttpOnly")
	}

	claims, err := h.jwt.Parse(access.Value)
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username":"studio","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookies should be set on failed login")
	}
}

func TestLoginUnconfigured(t *testing.T) {
	h := NewHandler(&config.Config{}, nil, validation.New(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
		strings.NewReader(`{"username":"studio","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	h := testHandler(t)

	refresh, err := h.jwt.NewRefreshToken("admin")
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: refresh})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if cookieByName(rec.Result().Cookies(), middleware.AccessCookie) == nil {
		t.Fatal("expected new access cookie")
	}
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRefreshMissingCookie(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLogoutExpiresCookies(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	access := cookieByName(rec.Result().Cookies(), middleware.AccessCookie)
	if access == nil || access.MaxAge != -1 {
		t.Fatal("access cookie should be expired")
	}
}
