package serverutils

import (
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates errors returned by controllers into the
// response envelope. Classified kinds keep their user-facing message and
// status; everything else becomes a generic 500 with the cause logged only.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		kind := apperror.KindOf(err)
		status := apperror.HTTPStatus(kind)

		if status >= fiber.StatusInternalServerError {
			log.Error("http", "request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		} else {
			log.Warn("http", "request rejected", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(status, apperror.UserMessage(err)))
	}
}
