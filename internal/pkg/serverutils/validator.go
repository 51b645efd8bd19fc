package serverutils

import (
	"fmt"
	"strings"

	"ai-chat-be/internal/dto"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks the struct's validate tags and returns a single
// readable error listing the failing fields. The error wraps
// dto.ErrInvalidInput so the error handler maps it to a client error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", dto.ErrInvalidInput, err)
		}
		var fields []string
		for _, fieldErr := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: validation failed: %s", dto.ErrInvalidInput, strings.Join(fields, ", "))
	}
	return nil
}
