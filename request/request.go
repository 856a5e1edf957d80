package request

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/kbukum/middlewarekit/httpclient"
	"github.com/kbukum/middlewarekit/logger"
)

// Request is a single outbound call under construction. It carries the
// adapters registered on its factory at creation time. A Request is owned
// by one goroutine until it is sent.
type Request struct {
	method   string
	target   Target
	client   *httpclient.Client
	adapters []Adapter

	headers map[string]string
	query   map[string]string
	body    any
	auth    *httpclient.AuthConfig

	log     *logger.Logger
	metrics *metrics
}

func (r *Request) Method() string               { return r.method }
func (r *Request) Target() Target               { return r.target }
func (r *Request) Client() *httpclient.Client   { return r.client }
func (r *Request) Body() any                    { return r.body }
func (r *Request) Auth() *httpclient.AuthConfig { return r.auth }

// Adapters returns a copy of the adapters that Build will run, in order.
func (r *Request) Adapters() []Adapter { return slices.Clone(r.adapters) }

// Headers returns a copy of the headers set so far, keyed canonically.
func (r *Request) Headers() map[string]string { return maps.Clone(r.headers) }

// HeaderValue returns the named header, or "" when unset.
func (r *Request) HeaderValue(key string) string {
	return r.headers[http.CanonicalHeaderKey(key)]
}

// QueryParams returns a copy of the query parameters set so far.
func (r *Request) QueryParams() map[string]string { return maps.Clone(r.query) }

// SetHeader sets a header, replacing any previous value.
func (r *Request) SetHeader(key, value string) *Request {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[http.CanonicalHeaderKey(key)] = value
	return r
}

func (r *Request) DelHeader(key string) *Request {
	delete(r.headers, http.CanonicalHeaderKey(key))
	return r
}

func (r *Request) SetQuery(key, value string) *Request {
	if r.query == nil {
		r.query = make(map[string]string)
	}
	r.query[key] = value
	return r
}

// SetBody sets the payload; see httpclient.Request.Body for accepted types.
func (r *Request) SetBody(body any) *Request {
	r.body = body
	return r
}

// SetAuth overrides the client's default authentication.
func (r *Request) SetAuth(auth *httpclient.AuthConfig) *Request {
	r.auth = auth
	return r
}

// Use appends an adapter for this request only. It runs after the
// factory's adapters. Nil is ignored.
func (r *Request) Use(adapter Adapter) *Request {
	if adapter != nil {
		r.adapters = append(r.adapters, adapter)
	}
	return r
}

// Build runs the adapters in order and returns the client request. The
// first adapter error stops the chain and is returned as *AbortError.
// Adapters run again on every call.
func (r *Request) Build(ctx context.Context) (httpclient.Request, error) {
	if err := ctx.Err(); err != nil {
		return httpclient.Request{}, err
	}
	for i, adapter := range r.adapters {
		if err := adapter(ctx, r); err != nil {
			return httpclient.Request{}, &AbortError{
				Index:  i,
				Method: r.method,
				Target: TargetString(r.target),
				Cause:  err,
			}
		}
	}
	return httpclient.Request{
		Method:  r.method,
		Path:    TargetString(r.target),
		Headers: maps.Clone(r.headers),
		Query:   maps.Clone(r.query),
		Body:    r.body,
		Auth:    r.auth,
	}, nil
}

// Send builds the request and executes it on the client.
func (r *Request) Send(ctx context.Context) (*httpclient.Response, error) {
	req, err := r.build(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := r.client.Do(ctx, req)
	r.metrics.recordSent(ctx, r.method, responseStatus(resp), err, time.Since(start))
	return resp, err
}

// Stream builds the request and executes it without reading the body.
// The caller must close the returned stream, which is also returned when the
// error handler rejects the response.
func (r *Request) Stream(ctx context.Context) (*httpclient.StreamResponse, error) {
	req, err := r.build(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	stream, err := r.client.DoStream(ctx, req)
	status := 0
	if stream != nil {
		status = stream.StatusCode
	}
	r.metrics.recordSent(ctx, r.method, status, err, time.Since(start))
	return stream, err
}

func (r *Request) build(ctx context.Context) (httpclient.Request, error) {
	req, err := r.Build(ctx)
	var abort *AbortError
	if errors.As(err, &abort) {
		r.metrics.recordAbort(ctx, r.method, abort.Index)
		r.log.Debug("request aborted", logger.Fields(
			logger.FieldMethod, r.method,
			logger.FieldTarget, abort.Target,
			logger.FieldAdapter, abort.Index,
			logger.FieldError, abort.Cause.Error(),
		))
	}
	return req, err
}

// SendJSON sends r and decodes a JSON response body into T.
func SendJSON[T any](ctx context.Context, r *Request) (*httpclient.TypedResponse[T], error) {
	return httpclient.Decode[T](r.Send(ctx))
}
