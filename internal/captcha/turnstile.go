package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTurnstileEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var ErrChallengeFailed = errors.New("captcha challenge failed")

// TurnstileClient verifies Cloudflare Turnstile tokens submitted with the
// public inquiry form.
type TurnstileClient struct {
	secret     string
	endpoint   string
	httpClient *http.Client
}

// NewTurnstileClient returns nil when no secret is configured; a nil
// client means verification is skipped.
func NewTurnstileClient(secret string) *TurnstileClient {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	return &TurnstileClient{
		secret:     secret,
		endpoint:   defaultTurnstileEndpoint,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type turnstileResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks one challenge token. ErrChallengeFailed means the token
// was rejected; any other error is a transport problem.
func (c *TurnstileClient) Verify(ctx context.Context, token, remoteIP string) error {
	if c == nil {
		return errors.New("turnstile client is nil")
	}
	if strings.TrimSpace(token) == "" {
		return ErrChallengeFailed
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("turnstile create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("turnstile request failed: %w", err)
	}
	defer resp.Body.Close()

	var out turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("turnstile decode response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("%w: %s", ErrChallengeFailed, strings.Join(out.ErrorCodes, ","))
	}
	return nil
}
