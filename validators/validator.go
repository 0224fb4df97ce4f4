package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type RequestValidator struct {
	validator *validator.Validate
}

// NewValidator creates a RequestValidator.
func NewValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

// Validate validates a struct using its `validate` tags.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
