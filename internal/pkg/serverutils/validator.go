package serverutils

import (
	"errors"

	"doc-chat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into the
// invalid-input error kind so the middleware answers with a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return apperror.InvalidInput(validationErrors[0].Field() + " is required")
		}
		return apperror.InvalidInput("invalid request body")
	}
	return nil
}
