package adapters

import (
	"context"
	"maps"

	"github.com/kbukum/middlewarekit/request"
)

// Header sets a static header on every request.
func Header(key, value string) request.Adapter {
	return func(_ context.Context, r *request.Request) error {
		r.SetHeader(key, value)
		return nil
	}
}

// Headers sets every entry of headers on each request.
func Headers(headers map[string]string) request.Adapter {
	headers = maps.Clone(headers)
	return func(_ context.Context, r *request.Request) error {
		for k, v := range headers {
			r.SetHeader(k, v)
		}
		return nil
	}
}

// UserAgent sets the User-Agent header unless the request already carries one.
func UserAgent(ua string) request.Adapter {
	return func(_ context.Context, r *request.Request) error {
		if r.HeaderValue("User-Agent") == "" {
			r.SetHeader("User-Agent", ua)
		}
		return nil
	}
}
