package serverutils

import (
	"errors"
	"strings"

	"ai-docdraft-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors escaping the controllers onto the JSON
// envelope. Turn-level upstream failures carry a retryable flag so clients
// know resubmitting the same message is safe.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var turnErr *dto.TurnError
		if errors.As(err, &turnErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success":   false,
				"message":   turnErr.Message,
				"retryable": turnErr.Retryable,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		if strings.Contains(err.Error(), "not found") {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(err.Error()))
	}
}
