// Package validation validates structs with go-playground/validator tags and
// reports failures as errors.AppError values.
//
//	type Booking struct {
//	    LegID string `json:"leg_id" validate:"required"`
//	    Seats int    `json:"seats" validate:"min=1,max=9"`
//	}
//	err := validation.Validate(booking)
package validation
