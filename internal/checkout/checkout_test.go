package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"veilandvow-backend/internal/config"
	"veilandvow-backend/internal/validation"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		DepositAmountCents: 100000,
		DepositCurrency:    "usd",
		CheckoutSuccessURL: "https://veilandvow.film/booking/confirmed",
		CheckoutCancelURL:  "https://veilandvow.film/booking",
	}
}

func TestNewStripeClientUnconfigured(t *testing.T) {
	if c := NewStripeClient(""); c != nil {
		t.Fatal("expected nil client without a secret key")
	}
}

func TestCreateSessionRequestShape(t *testing.T) {
	var captured url.Values
	var capturedAuth string
	var capturedURL string

	client := &StripeClient{
		secretKey: "sk_test_abc",
		httpClient: &http.Client{
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				capturedURL = r.URL.String()
				capturedAuth = r.Header.Get("Authorization")
				body, _ := io.ReadAll(r.Body)
				captured, _ = url.ParseQuery(string(body))
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(strings.NewReader(`{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`)),
					Header:     make(http.Header),
				}, nil
			}),
		},
	}

	session, err := client.CreateSession(context.Background(), SessionParams{
		CustomerEmail: "maya@example.com",
		PartnerNames:  "Maya & Jordan",
		AmountCents:   100000,
		Currency:      "usd",
		SuccessURL:    "https://veilandvow.film/booking/confirmed",
		CancelURL:     "https://veilandvow.film/booking",
	})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.ID != "cs_test_1" {
		t.Fatalf("session id = %q", session.ID)
	}
	if session.URL != "https://checkout.stripe.com/pay/cs_test_1" {
		t.Fatalf("session url = %q", session.URL)
	}

	if capturedURL != "https://api.stripe.com/v1/checkout/sessions" {
		t.Fatalf("url = %q", capturedURL)
	}
	if capturedAuth != "Bearer sk_test_abc" {
		t.Fatalf("auth = %q", capturedAuth)
	}

	want := map[string]string{
		"mode":                                            "payment",
		"customer_email":                                  "maya@example.com",
		"success_url":                                     "https://veilandvow.film/booking/confirmed",
		"cancel_url":                                      "https://veilandvow.film/booking",
		"line_items[0][quantity]":                         "1",
		"line_items[0][price_data][currency]":             "usd",
		"line_items[0][price_data][unit_amount]":          "100000",
		"line_items[0][price_data][product_data][name]":   "Wedding Film Booking Deposit",
		"metadata[partner_names]":                         "Maya & Jordan",
	}
	for key, value := range want {
		if got := captured.Get(key); got != value {
			t.Errorf("form[%q] = %q, want %q", key, got, value)
		}
	}
}

func TestCreateSessionErrorStatus(t *testing.T) {
	client := &StripeClient{
		secretKey: "sk_test_abc",
		httpClient: &http.Client{
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusPaymentRequired,
					Body:       io.NopCloser(strings.NewReader(`{"error":{"message":"card declined"}}`)),
					Header:     make(http.Header),
				}, nil
			}),
		},
	}

	_, err := client.CreateSession(context.Background(), SessionParams{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status=402") {
		t.Fatalf("error should carry status, got %v", err)
	}
}

type fakeSessions struct {
	params SessionParams
	err    error
}

func (f *fakeSessions) CreateSession(_ context.Context, params SessionParams) (Session, error) {
	f.params = params
	if f.err != nil {
		return Session{}, f.err
	}
	return Session{ID: "cs_1", URL: "https://checkout.stripe.com/pay/cs_1"}, nil
}

func TestHandlerReturnsURL(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewHandler(sessions, testConfig(), validation.New(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/create-checkout",
		strings.NewReader(`{"partner1":"Maya","partner2":"Jordan","email":"maya@example.com"}`))
	rec := httptest.NewRecorder()
	h.CreateSession(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "https://checkout.stripe.com/pay/cs_1") {
		t.Fatalf("body = %s", rec.Body.String())
	}
	if sessions.params.PartnerNames != "Maya & Jordan" {
		t.Fatalf("partner names = %q", sessions.params.PartnerNames)
	}
	if sessions.params.AmountCents != 100000 {
		t.Fatalf("amount = %d", sessions.params.AmountCents)
	}
}

func TestHandlerValidation(t *testing.T) {
	h := NewHandler(&fakeSessions{}, testConfig(), validation.New(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/create-checkout",
		strings.NewReader(`{"partner1":"Maya","email":"not-an-email"}`))
	rec := httptest.NewRecorder()
	h.CreateSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerProviderError(t *testing.T) {
	sessions := &fakeSessions{err: errors.New("stripe down")}
	h := NewHandler(sessions, testConfig(), validation.New(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/create-checkout",
		strings.NewReader(`{"partner1":"Maya","partner2":"Jordan","email":"maya@example.com"}`))
	rec := httptest.NewRecorder()
	h.CreateSession(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandlerUnconfigured(t *testing.T) {
	h := NewHandler(nil, testConfig(), validation.New(), discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/stripe/create-checkout",
		strings.NewReader(`{"partner1":"Maya","partner2":"Jordan","email":"maya@example.com"}`))
	rec := httptest.NewRecorder()
	h.CreateSession(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
