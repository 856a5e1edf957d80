package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/middlewarekit/errors"
)

// Adapter inspects or mutates a request before it is sent. Returning a
// non-nil error vetoes the request; nothing is sent.
type Adapter func(ctx context.Context, req *Request) error

// ErrAborted matches every *AbortError with errors.Is.
var ErrAborted = errors.New("request aborted")

// AbortError reports which adapter vetoed a request and why.
type AbortError struct {
	// Index is the position of the adapter in the request's adapter list.
	Index  int
	Method string
	Target string
	Cause  error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("request: %s %s aborted by adapter %d: %v", e.Method, e.Target, e.Index, e.Cause)
}

func (e *AbortError) Unwrap() error { return e.Cause }

func (e *AbortError) Is(target error) bool { return target == ErrAborted }

// AppError returns the cause when it already is an *errors.AppError, and a
// REQUEST_ABORTED error wrapping e otherwise.
func (e *AbortError) AppError() *apperrors.AppError {
	if ae, ok := apperrors.AsAppError(e.Cause); ok {
		return ae
	}
	return apperrors.New(apperrors.ErrCodeRequestAborted, e.Error(), http.StatusBadRequest).
		WithCause(e).
		WithDetail("adapter_index", e.Index)
}

// IsAborted reports whether err came from an adapter veto.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}
