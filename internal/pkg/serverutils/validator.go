package serverutils

import (
	"fmt"
	"strings"

	"college-portal-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into a
// single Validation error the error middleware can render.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Wrap(apperror.CodeValidation, "invalid request", err)
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperror.Validation("invalid request: " + strings.Join(fields, ", "))
}
