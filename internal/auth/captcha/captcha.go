// Package captcha validates human-verification challenge responses.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ledgerlane/identity/internal/platform/config"
)

// Verifier checks a challenge response provided by a client.
type Verifier interface {
	Verify(ctx context.Context, response, remoteIP string) (bool, error)
}

// Config controls the remote verification endpoint.
type Config struct {
	URL    string `env:"LEDGERLANE_AUTH_CAPTCHA_URL"`
	Secret string `env:"LEDGERLANE_AUTH_CAPTCHA_SECRET"`
}

// LoadConfigFromEnv returns captcha configuration. An empty URL disables
// verification.
func LoadConfigFromEnv() Config {
	var cfg Config
	_ = config.ParseEnv(&cfg)
	return cfg
}

// NewFromConfig returns an HTTPVerifier, or a pass-through verifier when no
// endpoint is configured.
func NewFromConfig(cfg Config, client *http.Client) Verifier {
	if strings.TrimSpace(cfg.URL) == "" {
		return AllowAll{}
	}
	return NewHTTPVerifier(cfg.URL, cfg.Secret, client)
}

// AllowAll accepts every response. Used when captcha is not configured.
type AllowAll struct{}

func (AllowAll) Verify(context.Context, string, string) (bool, error) { return true, nil }

type verifyResult struct {
	Success bool `json:"success"`
}

// HTTPVerifier calls a remote siteverify-style endpoint.
type HTTPVerifier struct {
	url    string
	secret string
	client *http.Client
}

// NewHTTPVerifier creates a verifier that POSTs form data to the given URL.
func NewHTTPVerifier(url, secret string, client *http.Client) *HTTPVerifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPVerifier{
		url:    url,
		secret: secret,
		client: client,
	}
}

// Verify checks the challenge response against the remote endpoint.
func (h *HTTPVerifier) Verify(ctx context.Context, response, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", h.secret)
	form.Set("response", response)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha endpoint returned %s", resp.Status)
	}

	var result verifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode captcha response: %w", err)
	}
	return result.Success, nil
}
