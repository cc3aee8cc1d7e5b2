package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// Config holds client configuration loaded from the environment.
type Config struct {
	BaseURL        string        `env:"BLOG_API_BASE_URL,required"`
	RequestTimeout time.Duration `env:"BLOG_API_REQUEST_TIMEOUT" envDefault:"10s"`
	RetryAttempts  uint64        `env:"BLOG_API_RETRY_ATTEMPTS" envDefault:"1"`
	RetryDelay     time.Duration `env:"BLOG_API_RETRY_DELAY" envDefault:"500ms"`
}

// TokenSource returns the bearer token for an audience, or empty if the
// caller has no stored credential for that identity kind.
type TokenSource func(aud Audience) string

// Client is a typed HTTP client over the platform REST API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenSource   TokenSource
	retryAttempts uint64
	retryDelay    time.Duration
	log           *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to share a cookie
// jar with an embedding application. Nil clients are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets the per-audience bearer token source.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		if src != nil {
			c.tokenSource = src
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the given configuration.
// Panics if the base URL is empty to fail fast during initialization.
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		panic(ErrMissingBaseURL)
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: cfg.RequestTimeout},
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		log:           slog.Default(),
	}
	if c.retryDelay <= 0 {
		c.retryDelay = 500 * time.Millisecond
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SessionCheck asks the server who the caller is for the given audience.
// Returns ErrAuthRequired when no valid session exists; that outcome is
// never retried.
func (c *Client) SessionCheck(ctx context.Context, aud Audience) (*IdentityPayload, error) {
	var identity IdentityPayload
	if err := c.do(ctx, aud, http.MethodGet, c.sessionPath(aud), nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout invalidates the server-side session for the given audience.
// Callers must clear their local session state regardless of this call's
// outcome; the client only reports the server's answer.
func (c *Client) Logout(ctx context.Context, aud Audience) error {
	path := "/api/auth/logout"
	if aud == AudienceAdmin {
		path = "/api/admin/logout"
	}
	return c.do(ctx, aud, http.MethodPost, path, nil, nil)
}

// Profile re-fetches the caller's full profile. Used after payment
// verification to pick up a newly attached plan reference.
func (c *Client) Profile(ctx context.Context) (*IdentityPayload, error) {
	var identity IdentityPayload
	if err := c.do(ctx, AudienceUser, http.MethodGet, "/api/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// PlanAndUsage returns the caller's current plan paired with the usage
// counters computed against it.
func (c *Client) PlanAndUsage(ctx context.Context) (*PlanUsagePayload, error) {
	var payload PlanUsagePayload
	if err := c.do(ctx, AudienceUser, http.MethodGet, "/api/me/plan", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ListPlans returns all active plans.
func (c *Client) ListPlans(ctx context.Context) ([]PlanPayload, error) {
	var plans []PlanPayload
	if err := c.do(ctx, AudienceUser, http.MethodGet, "/api/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// CreateCheckout starts a payment for the given plan and returns the gateway
// client secret plus the payment reference used for later verification.
func (c *Client) CreateCheckout(ctx context.Context, planID string) (*CheckoutPayload, error) {
	body := map[string]string{"plan_id": planID}
	var payload CheckoutPayload
	if err := c.do(ctx, AudienceUser, http.MethodPost, "/api/payments/checkout", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// VerifyPayment queries the terminal state of a payment reference.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*VerifyPayload, error) {
	var payload VerifyPayload
	path := "/api/payments/verify/" + reference
	if err := c.do(ctx, AudienceUser, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AssignPlan sets a user's plan directly without payment (admin only; the
// server re-checks the admin role regardless of client-side gating).
// A nil planID reverts the user to the implicit free tier.
func (c *Client) AssignPlan(ctx context.Context, userID uuid.UUID, planID *string) error {
	body := map[string]any{"plan_id": planID}
	path := "/api/admin/users/" + userID.String() + "/plan"
	return c.do(ctx, AudienceAdmin, http.MethodPut, path, body, nil)
}

func (c *Client) sessionPath(aud Audience) string {
	if aud == AudienceAdmin {
		return "/api/admin/me"
	}
	return "/api/auth/me"
}

// do executes one API request with the bounded retry policy: transient
// failures are retried up to RetryAttempts times, auth failures never.
func (c *Client) do(ctx context.Context, aud Audience, method, path string, body, out any) error {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	backoff := retry.WithMaxRetries(c.retryAttempts, retry.NewConstant(c.retryDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doOnce(ctx, aud, method, path, encoded, out)
		if errors.Is(err, ErrTransient) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, aud Audience, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(aud); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed", "method", method, "path", path, "error", err)
		return errors.Join(ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		// Drain the body so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrMalformedResponse, err)
	}
	return nil
}

// classifyStatus maps an HTTP status to the client's error taxonomy.
func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return ErrAuthRequired
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return fmt.Errorf("%w: server returned %d", ErrTransient, code)
	default:
		return fmt.Errorf("%w: unexpected status %d", ErrMalformedResponse, code)
	}
}
