package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/middlewarekit/errors"
)

type booking struct {
	LegID   string `json:"leg_id" validate:"required"`
	Seats   int    `json:"seats" validate:"min=1,max=9"`
	Contact string `validate:"omitempty,email"`
}

func TestValidate_Valid(t *testing.T) {
	if err := Validate(booking{LegID: "leg-1", Seats: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	err := Validate(&booking{Seats: 12, Contact: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("Code = %s", appErr.Code)
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	if got["leg_id"] != "is required" {
		t.Errorf("leg_id message = %q", got["leg_id"])
	}
	if got["seats"] != "must be at most 9" {
		t.Errorf("seats message = %q", got["seats"])
	}
	if got["contact"] != "must be a valid email address" {
		t.Errorf("contact message = %q", got["contact"])
	}
	if !strings.Contains(appErr.Message, "leg_id: is required") {
		t.Errorf("Message = %q", appErr.Message)
	}
}

func TestValidate_NotAStruct(t *testing.T) {
	if err := Validate("plain string"); err == nil {
		t.Fatal("expected error for non-struct")
	}
}

func TestIsStruct(t *testing.T) {
	var nilPtr *booking
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"struct", booking{}, true},
		{"pointer", &booking{}, true},
		{"nil pointer", nilPtr, false},
		{"map", map[string]string{}, false},
		{"nil", nil, false},
		{"bytes", []byte("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStruct(tt.in); got != tt.want {
				t.Errorf("IsStruct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Contact":   "contact",
		"BaseURL":   "base_u_r_l",
		"legID":     "leg_i_d",
		"already_x": "already_x",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
