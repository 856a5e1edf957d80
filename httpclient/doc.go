// Package httpclient is the outbound HTTP client shared by request factories.
//
// A Client resolves paths against a base URL, encodes bodies (JSON, text,
// form, multipart, raw), applies default headers and authentication, and
// classifies failures into *Error values. Which responses count as failures
// is decided by a pluggable ErrorHandler.
//
//	c, err := httpclient.New(httpclient.Config{
//	    BaseURL:        "https://api.example.com",
//	    Auth:           httpclient.BearerAuth(token),
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("example-api"),
//	})
//	resp, err := c.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/users/123"})
//
// Typed helpers decode JSON responses directly:
//
//	user, err := httpclient.Get[User](ctx, c, "/users/123")
//
// DoStream returns the body unread; text/event-stream responses are exposed
// through the sse subpackage.
package httpclient
