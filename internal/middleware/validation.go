package middleware

import (
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/util"
	"pdf-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	// LocalSelectOption holds the validated *dto.SelectOptionRequest.
	LocalSelectOption = "validated_select_option"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateSessionID rejects malformed :id path parameters as unknown sessions.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !util.IsValidULID(id) {
			return domain.NewSessionNotFoundError(id)
		}
		return c.Next()
	}
}

// ValidateSelectOption parses and validates the option selection body
func (vm *ValidationMiddleware) ValidateSelectOption() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.SelectOptionRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewValidationError("Request body must be a JSON object with an option")
		}

		if errors := vm.validator.ValidateStruct(req); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals(LocalSelectOption, &req)
		return c.Next()
	}
}
