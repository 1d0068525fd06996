package service

import (
	"errors"
	"fmt"
	"strings"

	"go-toko-api/pkg/validator"
)

// Sentinel errors shared across services. Handlers map these to HTTP statuses.
var (
	ErrForbidden           = errors.New("forbidden: insufficient role or toko access")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already exists")
	ErrTokoNotFound        = errors.New("toko not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAlreadyAssigned     = errors.New("user is already assigned to this toko")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
)

// ValidationError carries the field-level failures from request validation so
// the handler can surface a structured error list.
type ValidationError struct {
	Fields []*validator.ErrorResponse
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("field '%s' failed on rule '%s'", f.FailedField, f.Tag)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// validateStruct wraps pkg/validator and returns a *ValidationError or nil.
func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
