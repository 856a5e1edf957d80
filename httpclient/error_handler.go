package httpclient

// ErrorHandler decides whether a received response is a failure.
// HandleResponse returns nil to accept the response and an error to
// reject it; the response is still returned to the caller either way.
//
// Implementations must be safe for concurrent use. Handlers are compared
// by identity, so use pointer types when the handler will be read back
// with Client.ErrorHandler and compared.
type ErrorHandler interface {
	HandleResponse(resp *Response) error
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(resp *Response) error

func (f ErrorHandlerFunc) HandleResponse(resp *Response) error { return f(resp) }

// DefaultErrorHandler rejects every non-2xx response with a classified *Error.
type DefaultErrorHandler struct{}

func (DefaultErrorHandler) HandleResponse(resp *Response) error {
	if err := ClassifyStatusCode(resp.StatusCode, resp.Body); err != nil {
		return err
	}
	return nil
}

// PassthroughErrorHandler accepts every response, leaving status checks
// to the caller.
type PassthroughErrorHandler struct{}

func (PassthroughErrorHandler) HandleResponse(*Response) error { return nil }
