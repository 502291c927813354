// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps a validator instance for echo.
type RequestValidator struct {
	validate *validator.Validate
}

// New creates a RequestValidator with struct tag validation enabled.
func New() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
