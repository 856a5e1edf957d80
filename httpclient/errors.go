package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/middlewarekit/errors"
)

// ErrorCode classifies client failures.
type ErrorCode int

const (
	ErrCodeTimeout ErrorCode = iota
	ErrCodeConnection
	ErrCodeAuth
	ErrCodeNotFound
	ErrCodeRateLimit
	ErrCodeValidation
	ErrCodeServer
	// ErrCodeUnexpected covers statuses outside 2xx that are neither client
	// nor server errors, such as unfollowed redirects.
	ErrCodeUnexpected
)

var errorCodeNames = map[ErrorCode]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
	ErrCodeUnexpected: "unexpected_status",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a classified client failure. StatusCode is zero for failures
// that happened before a response arrived.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AppError converts the failure into the shared application error type.
func (e *Error) AppError() *apperrors.AppError {
	code, status := apperrors.ErrCodeExternalService, http.StatusBadGateway
	switch e.Code {
	case ErrCodeTimeout:
		code, status = apperrors.ErrCodeTimeout, http.StatusGatewayTimeout
	case ErrCodeConnection:
		code, status = apperrors.ErrCodeConnectionFailed, http.StatusBadGateway
	case ErrCodeAuth:
		code, status = apperrors.ErrCodeUnauthorized, http.StatusUnauthorized
		if e.StatusCode == http.StatusForbidden {
			code, status = apperrors.ErrCodeForbidden, http.StatusForbidden
		}
	case ErrCodeRateLimit:
		code, status = apperrors.ErrCodeRateLimited, http.StatusTooManyRequests
	case ErrCodeValidation:
		code, status = apperrors.ErrCodeInvalidInput, http.StatusBadRequest
	}
	ae := apperrors.New(code, e.Message, status).WithCause(e)
	ae.Retryable = e.Retryable
	if e.StatusCode > 0 {
		ae = ae.WithDetail("upstream_status", e.StatusCode)
	}
	return ae
}

func newStatusError(status int, code ErrorCode, retryable bool, body []byte) *Error {
	return &Error{
		StatusCode: status,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d", status),
		Retryable:  retryable,
		Body:       body,
	}
}

func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

func NewAuthError(status int, body []byte) *Error {
	return newStatusError(status, ErrCodeAuth, false, body)
}

func NewNotFoundError(body []byte) *Error {
	return newStatusError(http.StatusNotFound, ErrCodeNotFound, false, body)
}

func NewRateLimitError(body []byte) *Error {
	return newStatusError(http.StatusTooManyRequests, ErrCodeRateLimit, true, body)
}

func NewServerError(status int, body []byte) *Error {
	return newStatusError(status, ErrCodeServer, true, body)
}

// ClassifyStatusCode maps a response status to a typed error, or nil for 2xx.
func ClassifyStatusCode(status int, body []byte) *Error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewAuthError(status, body)
	case status == http.StatusNotFound:
		return NewNotFoundError(body)
	case status == http.StatusTooManyRequests:
		return NewRateLimitError(body)
	case status >= 400 && status < 500:
		return newStatusError(status, ErrCodeValidation, false, body)
	case status >= 500:
		return NewServerError(status, body)
	default:
		return newStatusError(status, ErrCodeUnexpected, false, body)
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsTimeout(err error) bool     { return hasCode(err, ErrCodeTimeout) }
func IsConnection(err error) bool  { return hasCode(err, ErrCodeConnection) }
func IsAuth(err error) bool        { return hasCode(err, ErrCodeAuth) }
func IsNotFound(err error) bool    { return hasCode(err, ErrCodeNotFound) }
func IsRateLimit(err error) bool   { return hasCode(err, ErrCodeRateLimit) }
func IsValidation(err error) bool  { return hasCode(err, ErrCodeValidation) }
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsRetryable reports whether err is a client Error marked retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// countsAsFailure decides what trips the circuit breaker: transient client
// errors and anything that is not a classified client error at all.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return true
}
