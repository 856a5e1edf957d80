package adapters

import (
	"context"
	"slices"
	"strings"

	apperrors "github.com/kbukum/middlewarekit/errors"
	"github.com/kbukum/middlewarekit/request"
	"github.com/kbukum/middlewarekit/validation"
)

// ValidateBody aborts requests whose struct body fails its validate tags.
// Non-struct bodies pass through.
func ValidateBody() request.Adapter {
	return func(_ context.Context, r *request.Request) error {
		body := r.Body()
		if !validation.IsStruct(body) {
			return nil
		}
		return validation.Validate(body)
	}
}

// AllowMethods aborts requests whose method is not listed. Matching ignores case.
func AllowMethods(methods ...string) request.Adapter {
	allowed := make([]string, len(methods))
	for i, m := range methods {
		allowed[i] = strings.ToUpper(m)
	}
	return func(_ context.Context, r *request.Request) error {
		if !slices.Contains(allowed, strings.ToUpper(r.Method())) {
			return apperrors.MethodNotAllowed(r.Method())
		}
		return nil
	}
}
