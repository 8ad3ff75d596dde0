package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const stripeEndpoint = "https://api.stripe.com/v1"

// Session is the slice of a Stripe Checkout Session the booking flow
// needs: the id for reconciliation and the hosted payment page URL.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SessionParams describes the deposit a couple is putting down to hold
// their date.
type SessionParams struct {
	CustomerEmail string
	PartnerNames  string
	AmountCents   int64
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// StripeClient creates Checkout Sessions over Stripe's form-encoded
// REST API. A nil client means payments are not configured.
type StripeClient struct {
	secretKey  string
	httpClient *http.Client
}

func NewStripeClient(secretKey string) *StripeClient {
	if secretKey == "" {
		return nil
	}
	return &StripeClient{
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *StripeClient) CreateSession(ctx context.Context, params SessionParams) (Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("customer_email", params.CustomerEmail)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Wedding Film Booking Deposit")
	form.Set("metadata[partner_names]", params.PartnerNames)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stripeEndpoint+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, fmt.Errorf("checkout: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("checkout: create session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Session{}, fmt.Errorf("checkout: create session: status=%d body=%s", resp.StatusCode, string(body))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("checkout: decode session: %w", err)
	}
	return session, nil
}
