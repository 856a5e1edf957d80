package adapters

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/middlewarekit/request"
)

// RequestIDHeaderName is the header RequestID writes.
const RequestIDHeaderName = "X-Request-Id"

// RequestID sets X-Request-Id to a fresh UUID unless the caller already set one.
func RequestID() request.Adapter {
	return RequestIDHeader(RequestIDHeaderName)
}

// RequestIDHeader is RequestID with a custom header name.
func RequestIDHeader(name string) request.Adapter {
	return func(_ context.Context, r *request.Request) error {
		if r.HeaderValue(name) == "" {
			r.SetHeader(name, uuid.New().String())
		}
		return nil
	}
}
