package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unknownTemplate *registry.UnknownTemplateError
		unknownSection  *registry.UnknownSectionError
		invalidConfig   *registry.ValidationError
		invalidFields   validator.ValidationErrors
		invalidDocument *schemas.ValidationError
		invalidRequest  *ErrValidation
		printFailed     *export.PrintError
	)
	switch {
	case errors.As(err, &unknownTemplate), errors.As(err, &unknownSection):
		return http.StatusNotFound
	case errors.As(err, &invalidConfig), errors.As(err, &invalidFields):
		return http.StatusUnprocessableEntity
	case errors.As(err, &invalidDocument), errors.As(err, &invalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &printFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorDetails lists field-level problems for validation errors.
func errorDetails(err error) []string {
	var (
		invalidConfig   *registry.ValidationError
		invalidFields   validator.ValidationErrors
		invalidDocument *schemas.ValidationError
	)
	switch {
	case errors.As(err, &invalidConfig):
		return invalidConfig.Issues
	case errors.As(err, &invalidFields):
		out := make([]string, 0, len(invalidFields))
		for _, fe := range invalidFields {
			out = append(out, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return out
	case errors.As(err, &invalidDocument):
		out := make([]string, 0, len(invalidDocument.Errors))
		for _, fe := range invalidDocument.Errors {
			out = append(out, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return out
	}
	return nil
}
