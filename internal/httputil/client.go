// Package httputil holds the JSON envelope helpers shared by the REST layer
// and the client used to call access service endpoints.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/odpi/itinfra/internal/logging"
)

const (
	maxErrorBody    = 64 << 10
	maxResponseBody = 8 << 20
)

// ServiceClient calls access service endpoints with a bearer token and
// retries transient failures.
type ServiceClient struct {
	httpClient  *http.Client
	tokenSource func(ctx context.Context) (string, error)
	baseURL     string
	maxRetries  int
	backoff     time.Duration
}

// ServiceClientConfig configures the service client. TokenSource takes
// precedence over Token.
type ServiceClientConfig struct {
	BaseURL      string
	Token        string
	TokenSource  func(ctx context.Context) (string, error)
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// NewServiceClient creates a client for cfg.BaseURL.
func NewServiceClient(cfg ServiceClientConfig) *ServiceClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = 2
	}
	backoff := cfg.RetryBackoff
	if backoff == 0 {
		backoff = 200 * time.Millisecond
	}

	source := cfg.TokenSource
	if source == nil && cfg.Token != "" {
		token := cfg.Token
		source = func(context.Context) (string, error) { return token, nil }
	}

	return &ServiceClient{
		httpClient:  &http.Client{Timeout: timeout},
		tokenSource: source,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries:  maxRetries,
		backoff:     backoff,
	}
}

// Do executes a request. The trace id in ctx, if any, is propagated.
func (c *ServiceClient) Do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}
	return c.doWithRetry(ctx, method, path, payload, 0)
}

func (c *ServiceClient) doWithRetry(ctx context.Context, method, path string, payload []byte, attempt int) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if traceID := logging.GetTraceID(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if c.tokenSource != nil {
		token, err := c.tokenSource(ctx)
		if err != nil {
			return nil, fmt.Errorf("obtain token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attempt < c.maxRetries && ctx.Err() == nil {
			if werr := c.wait(ctx, attempt); werr != nil {
				return nil, werr
			}
			return c.doWithRetry(ctx, method, path, payload, attempt+1)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if retryable(resp.StatusCode) && attempt < c.maxRetries {
		resp.Body.Close()
		if err := c.wait(ctx, attempt); err != nil {
			return nil, err
		}
		return c.doWithRetry(ctx, method, path, payload, attempt+1)
	}
	return resp, nil
}

func (c *ServiceClient) wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(c.backoff << attempt)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Get performs a GET request.
func (c *ServiceClient) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *ServiceClient) Post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// RemoteError is a failure reported by the server in an exception envelope.
type RemoteError struct {
	StatusCode int
	FFDCResponse
}

func (e *RemoteError) Error() string {
	if e.ExceptionErrorMessageID != "" {
		return fmt.Sprintf("%s (%d): %s", e.ExceptionErrorMessageID, e.StatusCode, e.ExceptionErrorMessage)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.ExceptionErrorMessage)
}

type enveloped interface {
	Envelope() *FFDCResponse
}

// DecodeResponse decodes a JSON response into target and closes the body.
// Error statuses, and envelopes whose relatedHTTPCode reports a failure,
// are returned as *RemoteError.
func DecodeResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return fmt.Errorf("read error response body: %w", err)
		}
		remote := &RemoteError{StatusCode: resp.StatusCode}
		if json.Unmarshal(body, &remote.FFDCResponse) != nil || remote.ExceptionErrorMessage == "" {
			remote.ExceptionErrorMessage = strings.TrimSpace(string(body))
		}
		return remote
	}

	if target == nil {
		_, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxResponseBody {
		return fmt.Errorf("response body exceeds %d bytes", maxResponseBody)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env, ok := target.(enveloped); ok && env.Envelope().Failed() {
		return &RemoteError{StatusCode: env.Envelope().RelatedHTTPCode, FFDCResponse: *env.Envelope()}
	}
	return nil
}
