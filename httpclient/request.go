package httpclient

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/kbukum/middlewarekit/httpclient/sse"
)

// Request describes one outbound call.
type Request struct {
	Method string
	// Path is resolved against Config.BaseURL unless it is already absolute.
	Path    string
	Headers map[string]string
	Query   map[string]string
	// Body accepts nil, io.Reader, []byte, string, url.Values (form),
	// *MultipartBody, or any value encodable as JSON.
	Body any
	// Auth replaces Config.Auth for this request.
	Auth *AuthConfig
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	// Headers holds the first value of each response header, keyed canonically.
	Headers map[string]string
	Body    []byte
}

func (r *Response) IsSuccess() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }
func (r *Response) IsError() bool   { return r.StatusCode >= 400 }

// Header returns the named response header.
func (r *Response) Header(key string) string {
	return r.Headers[http.CanonicalHeaderKey(key)]
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// StreamResponse is a response whose body is consumed incrementally.
// Exactly one of SSE and Body is set. Close must be called.
type StreamResponse struct {
	StatusCode int
	Headers    map[string]string
	SSE        sse.Reader
	Body       io.ReadCloser
}

func (r *StreamResponse) Close() error {
	if r.SSE != nil {
		return r.SSE.Close()
	}
	if r.Body != nil {
		return r.Body.Close()
	}
	return nil
}
