// Package validator adapts go-playground validation to echo's Validator interface.
package validator

import (
	validate "github.com/go-playground/validator/v10"
)

// Validator wraps a shared validate instance for echo.
type Validator struct {
	validate *validate.Validate
}

// New creates the echo request validator.
func New() *Validator {
	return &Validator{validate: validate.New()}
}

// Validate checks a bound request struct against its validate tags. Handlers
// translate the returned error into the 400 response envelope.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
