package middleware

import (
	"github.com/go-playground/validator/v10"
	"github.com/tukue/CRM-app-saas/internal/apperr"
)

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface. Handlers call c.Validate(req) after binding; a failure surfaces
// as a 400 with per-field detail.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds the validator used by the Echo instance.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
			return apperr.Validation("request validation failed", details)
		}
		return apperr.Validation("request validation failed", nil)
	}
	return nil
}
