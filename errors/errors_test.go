package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew_RetryableFromCode(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeConnectionFailed, true},
		{ErrCodeInvalidInput, false},
		{ErrCodeRequestAborted, false},
		{ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "msg", http.StatusTeapot)
			if err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.retryable)
			}
			if err.HTTPStatus != http.StatusTeapot {
				t.Errorf("HTTPStatus = %d, want %d", err.HTTPStatus, http.StatusTeapot)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	err := Validation("bad body")
	if got := err.Error(); got != "INVALID_INPUT: bad body" {
		t.Errorf("Error() = %q", got)
	}

	err = Internal(fmt.Errorf("boom"))
	if got := err.Error(); got != "INTERNAL_ERROR: An unexpected error occurred. (cause: boom)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	root := stderrors.New("dial tcp: refused")
	err := ExternalServiceError("booking", root)

	if !stderrors.Is(err, root) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Details["service"] != "booking" {
		t.Errorf("expected service detail, got %v", err.Details)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	err := MethodNotAllowed("DELETE")
	if err.Code != ErrCodeMethodNotAllowed {
		t.Errorf("Code = %s", err.Code)
	}
	if err.HTTPStatus != http.StatusMethodNotAllowed {
		t.Errorf("HTTPStatus = %d", err.HTTPStatus)
	}
	if err.Details["method"] != "DELETE" {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("adapter: %w", MissingField("name"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("Code = %s", appErr.Code)
	}
	if !HasCode(wrapped, ErrCodeMissingField) {
		t.Error("HasCode should match")
	}
	if HasCode(stderrors.New("plain"), ErrCodeMissingField) {
		t.Error("HasCode should not match a plain error")
	}
}

func TestUnauthorized_DefaultReason(t *testing.T) {
	if got := Unauthorized("").Message; got != "Authentication required." {
		t.Errorf("Message = %q", got)
	}
}
