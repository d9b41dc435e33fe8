package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"cratedig-hq/cratedig/pkg/ratelimit"
)

// transportRetryStatus is the fixed set of status codes retried at the
// transport level. This is a connection-level safety net, distinct from the
// caller-configurable policy in package retry.
var transportRetryStatus = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// transportRetryMethods is the fixed set of methods eligible for
// transport-level retry.
var transportRetryMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20 // 10 MB

// Config contains the dispatch engine configuration.
type Config struct {
	// BaseURL is the catalog API root, e.g. "https://api.discogs.com".
	BaseURL string

	// Token is the personal access token sent on every request.
	Token string

	// UserAgent identifies this client to the API.
	UserAgent string

	// Timeout bounds each transport send.
	Timeout time.Duration

	// TransportRetries is the number of connection-level retries applied
	// inside a single dispatch for transient transport failures.
	TransportRetries int

	// MaxConcurrent caps simultaneous in-flight dispatches. Zero means
	// unlimited.
	MaxConcurrent int

	// Connection pool tuning for the shared transport.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// RequestLog captures one completed dispatch for observers (metrics,
// audit trail). ErrorKind is empty on success.
type RequestLog struct {
	RequestID     string
	Method        string
	Endpoint      string
	StatusCode    int
	ErrorKind     string
	Duration      time.Duration
	RateLimitWait time.Duration
	Retries       int
	Time          time.Time
}

// Observer receives a RequestLog after every dispatch. Implementations must
// not block; they are called synchronously on the request path.
type Observer interface {
	ObserveRequest(RequestLog)
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for dispatch logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithObserver registers an observer for completed dispatches.
func WithObserver(obs Observer) Option {
	return func(c *Client) { c.observers = append(c.observers, obs) }
}

// WithHTTPClient replaces the underlying HTTP client. The Timeout config
// field is ignored when this is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client dispatches authenticated requests to the catalog API under the
// rate limiter's admission control.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	inflight   *ratelimit.ConcurrentLimiter
	logger     *slog.Logger
	observers  []Observer
}

// New creates a Client sharing one pooled transport across all calls.
// The limiter gates every dispatch; it must not be nil.
func New(cfg Config, limiter *ratelimit.Limiter, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TransportRetries < 0 {
		cfg.TransportRetries = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "cratedig/1.0"
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter:  limiter,
		inflight: ratelimit.NewConcurrentLimiter(cfg.MaxConcurrent),
		logger:   slog.Default().With("component", "client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do dispatches one logical request and returns the decoded payload or a
// typed error.
//
// The limiter is acquired exactly once per call: transport-level retries
// inside the call do not consume additional admission slots. A 2xx response
// with an empty or non-JSON body yields an empty payload, not an error.
func (c *Client) Do(ctx context.Context, method, endpoint string, params url.Values, body any) (json.RawMessage, error) {
	requestID := uuid.NewString()
	start := time.Now()

	target, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, &APIError{
			Kind:      KindBadRequest,
			Message:   fmt.Sprintf("invalid endpoint %q: %v", endpoint, err),
			RequestID: requestID,
		}
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, &APIError{
				Kind:      KindBadRequest,
				Message:   fmt.Sprintf("encode request body: %v", err),
				RequestID: requestID,
			}
		}
	}

	if err := c.inflight.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.inflight.Release()

	waitStart := time.Now()
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	wait := time.Since(waitStart)

	c.logger.Debug("dispatching request",
		"request_id", requestID,
		"method", method,
		"url", target,
		"rate_limit_wait", wait,
	)

	status, header, respBody, retries, sendErr := c.sendWithRetry(ctx, method, target, payload, requestID)

	result := RequestLog{
		RequestID:     requestID,
		Method:        method,
		Endpoint:      endpoint,
		StatusCode:    status,
		Duration:      time.Since(start),
		RateLimitWait: wait,
		Retries:       retries,
		Time:          start,
	}

	if sendErr != nil {
		apiErr := c.networkError(sendErr, requestID)
		result.ErrorKind = apiErr.Kind.String()
		c.notify(result)
		c.logger.Warn("dispatch failed",
			"request_id", requestID,
			"method", method,
			"endpoint", endpoint,
			"error", apiErr.Message,
		)
		return nil, apiErr
	}

	if status >= 200 && status < 300 {
		c.notify(result)
		return decodePayload(respBody), nil
	}

	apiErr := Classify(status, header, respBody, requestID)
	result.ErrorKind = apiErr.Kind.String()
	c.notify(result)
	c.logger.Warn("request rejected",
		"request_id", requestID,
		"method", method,
		"endpoint", endpoint,
		"status", status,
		"kind", apiErr.Kind.String(),
	)
	return nil, apiErr
}

// Get dispatches a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, endpoint, params, nil)
}

// Post dispatches a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, endpoint, nil, body)
}

// Put dispatches a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, endpoint, nil, body)
}

// Delete dispatches a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// RateLimitStatus returns a snapshot of the admission window.
func (c *Client) RateLimitStatus() ratelimit.Status {
	return c.limiter.Status()
}

// Close releases idle pooled connections. The Client must not be used
// afterwards.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// sendWithRetry performs the transport send with the fixed connection-level
// retry policy. It returns the final status code, header, response body,
// and the number of retries spent. A non-nil error means no usable response
// was completed.
func (c *Client) sendWithRetry(ctx context.Context, method, target string, payload []byte, requestID string) (int, http.Header, []byte, int, error) {
	var (
		lastErr    error
		lastStatus int
		lastHeader http.Header
		lastBody   []byte
		retries    int
	)

	retryable := transportRetryMethods[method]

	for attempt := 0; attempt <= c.cfg.TransportRetries; attempt++ {
		if attempt > 0 {
			retries++
			// Backoff factor 1: 1s, 2s, 4s between transport attempts.
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			c.logger.Debug("retrying transport send",
				"request_id", requestID,
				"attempt", attempt,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return 0, nil, nil, retries, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
		if err != nil {
			return 0, nil, nil, retries, err
		}
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		req.Header.Set("Accept", "application/json")
		if c.cfg.Token != "" {
			req.Header.Set("Authorization", "Discogs token="+c.cfg.Token)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil || !retryable {
				return 0, nil, nil, retries, err
			}
			continue
		}

		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			if !retryable {
				return 0, nil, nil, retries, readErr
			}
			continue
		}

		lastStatus = resp.StatusCode
		lastHeader = resp.Header
		lastBody = respBody
		lastErr = nil

		if retryable && transportRetryStatus[resp.StatusCode] {
			continue
		}

		return resp.StatusCode, resp.Header, respBody, retries, nil
	}

	if lastErr != nil {
		return 0, nil, nil, retries, lastErr
	}
	// Retries exhausted on a retryable status; hand the final response to
	// the classifier.
	return lastStatus, lastHeader, lastBody, retries, nil
}

// networkError translates a transport failure into the typed taxonomy.
func (c *Client) networkError(err error, requestID string) *APIError {
	message := fmt.Sprintf("connection error: %v", err)
	if isTimeout(err) {
		message = fmt.Sprintf("request timeout after %s", c.cfg.Timeout)
	}
	return &APIError{
		Kind:      KindNetworkError,
		Message:   message,
		RequestID: requestID,
		Cause:     err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// buildURL joins the configured base URL with the endpoint and encodes the
// query parameters.
func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	full := base + "/" + strings.TrimLeft(endpoint, "/")

	u, err := url.Parse(full)
	if err != nil {
		return "", err
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// decodePayload returns the body as a raw JSON payload. Empty or non-JSON
// bodies on success decode to an empty object rather than an error.
func decodePayload(body []byte) json.RawMessage {
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return json.RawMessage("{}")
	}
	return json.RawMessage(body)
}

// notify fans the request log out to registered observers.
func (c *Client) notify(log RequestLog) {
	for _, obs := range c.observers {
		obs.ObserveRequest(log)
	}
}
