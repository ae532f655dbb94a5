package serverutils

import (
	"errors"

	"college-portal-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

func statusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeNotFound:
		return fiber.StatusNotFound
	case apperror.CodeInvalidTransition, apperror.CodeRaceLost:
		return fiber.StatusConflict
	case apperror.CodeValidation:
		return fiber.StatusBadRequest
	case apperror.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.CodeForbidden:
		return fiber.StatusForbidden
	case apperror.CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware converts AppError values (and stray fiber errors)
// into the uniform JSON envelope. Internal errors are not echoed to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(statusFor(appErr.Code)).JSON(ErrorBody{
				Code:    string(appErr.Code),
				Message: appErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Code:    string(apperror.CodeInternal),
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Code:    string(apperror.CodeInternal),
			Message: "Something went wrong",
		})
	}
}
