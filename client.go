// Package tecnifix provides the TecniFix Go client for the repair-shop
// ticketing API.
package tecnifix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tecnifix/tecnifix-go/headers"
)

const defaultUserAgent = "tecnifix-go/0.3"

// Environment selects which backend origin the client talks to. The
// origin is resolved once at construction and never re-evaluated.
type Environment string

const (
	// EnvironmentLocal targets a backend running on the developer machine.
	EnvironmentLocal Environment = "local"
	// EnvironmentProduction targets the hosted backend.
	EnvironmentProduction Environment = "production"
)

const (
	localBaseURL      = "http://localhost:8082"
	productionBaseURL = "https://api.tecnifix.app"
)

// BaseURL returns the fixed origin for the environment.
func (e Environment) BaseURL() (string, error) {
	switch e {
	case EnvironmentLocal, "":
		return localBaseURL, nil
	case EnvironmentProduction:
		return productionBaseURL, nil
	default:
		return "", ConfigError{Reason: fmt.Sprintf("unknown environment %q", e)}
	}
}

// Config wires credentials, origin selection, and telemetry for the client.
type Config struct {
	// Environment picks the backend origin. Defaults to EnvironmentLocal.
	Environment Environment
	// BaseURL overrides the environment-derived origin when set.
	BaseURL string
	// Credentials supplies the bearer credential attached to outgoing
	// requests. A nil source (or an empty token) sends unauthenticated.
	Credentials TokenSource
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Retry controls backoff for idempotent requests.
	Retry     *RetryConfig
	Telemetry TelemetryHooks
	UserAgent string
	// OnAuthExpired fires when the backend answers 401 on a request that
	// carried a credential. Callers typically wire this to
	// session.Service.Invalidate so an expired credential is discarded
	// the same way an explicit logout would discard it.
	OnAuthExpired func(ctx context.Context, req *http.Request)
}

// Client provides high-level helpers for interacting with the TecniFix API.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	auth          authChain
	retry         RetryConfig
	telemetry     TelemetryHooks
	userAgent     string
	onAuthExpired func(ctx context.Context, req *http.Request)

	// Grouped service clients.
	Users   *UsersClient
	Tickets *TicketsClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		resolved, err := cfg.Environment.BaseURL()
		if err != nil {
			return nil, err
		}
		baseURL = resolved
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	retry := defaultRetryConfig()
	if cfg.Retry != nil {
		retry = cfg.Retry.normalized()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client := &Client{
		baseURL:       normalized,
		httpClient:    httpClient,
		auth:          buildAuthChain(cfg.Credentials),
		retry:         retry,
		telemetry:     cfg.Telemetry,
		userAgent:     ua,
		onAuthExpired: cfg.OnAuthExpired,
	}
	client.Users = &UsersClient{client: client}
	client.Tickets = &TicketsClient{client: client}
	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ConfigError{Reason: "base URL required"}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ConfigError{Reason: fmt.Sprintf("invalid base URL: %v", err)}
	}
	if u.Scheme == "" {
		return "", ConfigError{Reason: "base URL missing scheme (http/https)"}
	}
	if u.Host == "" {
		return "", ConfigError{Reason: "base URL missing host"}
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return strings.TrimSuffix(u.String(), "/"), nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	injectTraceparent(ctx, req)
	return req, nil
}

func (c *Client) prepare(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Header.Get(headers.RequestID) == "" {
		req.Header.Set(headers.RequestID, uuid.NewString())
	}
	c.auth.Apply(req)
}

// send runs the request through the shared pipeline: credential attach,
// correlation id, telemetry, retry for idempotent methods, and
// centralized auth-failure handling. Callers own resp.Body on success.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if delay := c.retry.backoffDelay(attempt); delay > 0 {
			select {
			case <-req.Context().Done():
				err := req.Context().Err()
				return nil, TransportError{
					Kind:    classifyTransportErrorKind(err),
					Message: "request canceled during backoff",
					Cause:   err,
				}
			case <-time.After(delay):
			}
		}
		attemptReq, err := cloneRequest(req)
		if err != nil {
			return nil, err
		}
		resp, err := c.doOnce(attemptReq)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !c.retry.retryable(req.Method) || !isRetryableError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(req *http.Request) (*http.Response, error) {
	c.prepare(req)
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(req.Context(), req)
	}
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(req.Context(), req, resp, err, time.Since(start))
	}
	c.telemetry.metric(req.Context(), "http_request_latency_ms", float64(time.Since(start).Milliseconds()), map[string]string{
		"path": req.URL.Path,
	})
	if err != nil {
		return nil, TransportError{
			Kind:    classifyTransportErrorKind(err),
			Message: "request failed",
			Cause:   err,
		}
	}
	if resp.StatusCode >= 400 {
		//nolint:errcheck // best-effort cleanup on return
		defer func() { _ = resp.Body.Close() }()
		apiErr := decodeAPIError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleAuthFailure(req)
		}
		return nil, apiErr
	}
	return resp, nil
}

// handleAuthFailure centralizes the 401 path: log a diagnostic and let
// the caller-provided hook discard the credential. The hook fires only
// for requests that actually carried one; an anonymous 401 (a failed
// login) has no session to tear down.
func (c *Client) handleAuthFailure(req *http.Request) {
	if req.Header.Get("Authorization") == "" {
		return
	}
	c.telemetry.log(req.Context(), LogLevelError, "auth_expired", map[string]any{
		"method": req.Method,
		"path":   req.URL.Path,
	})
	if c.onAuthExpired != nil {
		c.onAuthExpired(req.Context(), req)
	}
}

func cloneRequest(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody == nil {
		return clone, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

// sendAndDecode sends a JSON request and decodes the JSON response into out.
// Pass a nil out to discard the response body.
func (c *Client) sendAndDecode(ctx context.Context, method, path string, payload, out any) error {
	req, err := c.newJSONRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
