package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TypedResponse is a response whose JSON body was decoded into T.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// RequestOption adjusts a Request built by the typed helpers.
type RequestOption func(*Request)

func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

func WithRequestAuth(auth *AuthConfig) RequestOption {
	return func(r *Request) { r.Auth = auth }
}

func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, http.MethodGet, path, nil, opts)
}

func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, http.MethodPost, path, body, opts)
}

func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, http.MethodPut, path, body, opts)
}

func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, http.MethodPatch, path, body, opts)
}

func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return doTyped[T](ctx, c, http.MethodDelete, path, nil, opts)
}

func doTyped[T any](ctx context.Context, c *Client, method, path string, body any, opts []RequestOption) (*TypedResponse[T], error) {
	req := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}
	return Decode[T](c.Do(ctx, req))
}

// Decode turns the result of Client.Do into a TypedResponse. When Do
// failed but a response arrived, the body is decoded on a best-effort
// basis and returned together with the original error.
func Decode[T any](resp *Response, err error) (*TypedResponse[T], error) {
	if err != nil {
		if resp == nil {
			return nil, err
		}
		var data T
		if json.Unmarshal(resp.Body, &data) != nil {
			return nil, err
		}
		return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("httpclient: decode response: %w", err)
		}
	}
	return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}
