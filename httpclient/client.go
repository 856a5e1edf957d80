package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/http2"

	"github.com/kbukum/middlewarekit/httpclient/sse"
	"github.com/kbukum/middlewarekit/logger"
	"github.com/kbukum/middlewarekit/resilience"
	"github.com/kbukum/middlewarekit/version"
)

const h2cDialTimeout = 10 * time.Second

// Client executes Requests with the configured auth, TLS, resilience and
// error handling. It is safe for concurrent use.
type Client struct {
	httpClient      *http.Client
	customTransport bool
	config          Config
	cb              *resilience.CircuitBreaker
	rl              *resilience.RateLimiter
	log             *logger.Logger

	mu           sync.RWMutex
	errorHandler ErrorHandler
}

// New validates cfg and builds a client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return newClient(cfg, transport, opts...), nil
}

// NewDefault builds a client from the zero Config. It cannot fail.
func NewDefault(opts ...Option) *Client {
	var cfg Config
	cfg.ApplyDefaults()
	return newClient(cfg, http.DefaultTransport.(*http.Transport).Clone(), opts...)
}

func newClient(cfg Config, transport http.RoundTripper, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:       cfg,
		errorHandler: DefaultErrorHandler{},
		log:          logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent(defaultName).WithFields(map[string]any{"client": cfg.Name})
	if c.customTransport && (cfg.TLS.IsEnabled() || cfg.H2C) {
		c.log.Warn("custom transport in use, tls and h2c settings ignored")
	}

	if cfg.Retry != nil && cfg.Retry.RetryIf == nil {
		retry := *cfg.Retry
		retry.RetryIf = IsRetryable
		c.config.Retry = &retry
	}
	if cfg.CircuitBreaker != nil {
		cbCfg := *cfg.CircuitBreaker
		if cbCfg.IsFailure == nil {
			cbCfg.IsFailure = countsAsFailure
		}
		c.cb = resilience.NewCircuitBreaker(cbCfg)
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	return c
}

func newTransport(cfg Config) (http.RoundTripper, error) {
	if cfg.H2C {
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return (&net.Dialer{Timeout: h2cDialTimeout}).DialContext(ctx, network, addr)
			},
		}, nil
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}
	return transport, nil
}

func (c *Client) Name() string { return c.config.Name }

// Config returns the effective configuration after defaults.
func (c *Client) Config() Config { return c.config }

// Unwrap exposes the underlying *http.Client.
func (c *Client) Unwrap() *http.Client { return c.httpClient }

// ErrorHandler returns the handler that decides which responses are errors.
func (c *Client) ErrorHandler() ErrorHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errorHandler
}

// SetErrorHandler replaces the error handler. A nil handler restores
// DefaultErrorHandler.
func (c *Client) SetErrorHandler(h ErrorHandler) {
	if h == nil {
		h = DefaultErrorHandler{}
	}
	c.mu.Lock()
	c.errorHandler = h
	c.mu.Unlock()
}

// IsAvailable reports false while the circuit breaker is open.
func (c *Client) IsAvailable(_ context.Context) bool {
	return c.cb == nil || c.cb.State() != resilience.StateOpen
}

// Close drops idle connections.
func (c *Client) Close(_ context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Do sends req and reads the whole response. When the error handler rejects
// the response, both the response and the error are returned.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.config.Retry == nil {
		return c.doOnce(ctx, req)
	}
	req, err := replayable(req)
	if err != nil {
		return nil, err
	}
	retry := *c.config.Retry
	onRetry := retry.OnRetry
	retry.OnRetry = func(attempt int, err error, wait time.Duration) {
		c.log.Debug("retrying request", logger.Fields(
			logger.FieldMethod, req.Method,
			logger.FieldTarget, req.Path,
			logger.FieldAttempt, attempt,
			logger.FieldError, err.Error(),
		))
		if onRetry != nil {
			onRetry(attempt, err, wait)
		}
	}
	return resilience.Retry(ctx, retry, func() (*Response, error) {
		return c.doOnce(ctx, req)
	})
}

// replayable buffers bodies that can be read only once, so every attempt
// sends the same bytes.
func replayable(req Request) (Request, error) {
	switch v := req.Body.(type) {
	case *MultipartBody:
		r, contentType, err := v.encode()
		if err != nil {
			return req, NewValidationError(fmt.Sprintf("encode body: %v", err))
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return req, NewValidationError(fmt.Sprintf("encode body: %v", err))
		}
		headers := maps.Clone(req.Headers)
		if headers == nil {
			headers = make(map[string]string, 1)
		}
		if !hasHeader(headers, "Content-Type") {
			headers["Content-Type"] = contentType
		}
		req.Headers = headers
		req.Body = data
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return req, NewValidationError(fmt.Sprintf("read body: %v", err))
		}
		req.Body = data
	}
	return req, nil
}

func hasHeader(headers map[string]string, key string) bool {
	for k := range headers {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// DoStream sends req and returns the body unread. text/event-stream bodies
// are wrapped in an SSE reader. When the error handler rejects the response,
// the stream is returned with the already read body alongside the error. Retries are not applied and Config.Timeout
// does not bound the stream; use ctx for cancellation.
func (c *Client) DoStream(ctx context.Context, req Request) (*StreamResponse, error) {
	if err := c.admit(ctx); err != nil {
		return nil, err
	}
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	stream := &http.Client{
		Transport:     c.httpClient.Transport,
		CheckRedirect: c.httpClient.CheckRedirect,
		Jar:           c.httpClient.Jar,
	}
	resp, err := stream.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	headers := flattenHeaders(resp.Header)

	body := resp.Body
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		full := &Response{StatusCode: resp.StatusCode, Headers: headers, Body: data}
		body = io.NopCloser(bytes.NewReader(data))
		if err := c.ErrorHandler().HandleResponse(full); err != nil {
			return &StreamResponse{StatusCode: resp.StatusCode, Headers: headers, Body: body}, err
		}
	}

	out := &StreamResponse{StatusCode: resp.StatusCode, Headers: headers}
	if strings.Contains(resp.Header.Get("Content-Type"), "text/event-stream") {
		out.SSE = sse.NewReader(body)
	} else {
		out.Body = body
	}
	return out, nil
}

func (c *Client) admit(ctx context.Context) error {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}
	}
	if !c.IsAvailable(ctx) {
		return resilience.ErrCircuitOpen
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, req Request) (*Response, error) {
	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if c.cb == nil {
		return c.execute(ctx, req)
	}
	var resp *Response
	err := c.cb.Execute(func() error {
		var execErr error
		resp, execErr = c.execute(ctx, req)
		return execErr
	})
	return resp, err
}

func (c *Client) execute(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		terr := transportError(ctx, err)
		c.log.Debug("request failed", logger.Fields(
			logger.FieldMethod, httpReq.Method,
			logger.FieldTarget, httpReq.URL.Redacted(),
			logger.FieldError, terr.Error(),
		))
		return nil, terr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	c.log.Debug("request completed", logger.Fields(
		logger.FieldMethod, httpReq.Method,
		logger.FieldTarget, httpReq.URL.Redacted(),
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}
	if err := c.ErrorHandler().HandleResponse(result); err != nil {
		return result, err
	}
	return result, nil
}

func transportError(ctx context.Context, err error) *Error {
	if ctx.Err() != nil {
		return NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := c.resolveURL(req.Path)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("parse target: %v", err))
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", version.UserAgent())
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

func (c *Client) resolveURL(path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if c.config.BaseURL == "" || u.IsAbs() {
		return path, nil
	}
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"), nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case *MultipartBody:
		return v.encode()
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
