package serverutils

import (
	"errors"

	"ai-chat-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping the handlers into the
// standard response envelope. Quota errors carry the usage snapshot so the
// client can show remaining/reset without a second request.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var quotaErr *dto.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(Response{
				Success: false,
				Code:    fiber.StatusBadRequest,
				Message: quotaErr.Error(),
				Data:    quotaErr,
			})
		}

		switch {
		case errors.Is(err, dto.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		case errors.Is(err, dto.ErrForbidden):
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, err.Error()))
		case errors.Is(err, dto.ErrAlreadyExists), errors.Is(err, dto.ErrInvalidInput):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
