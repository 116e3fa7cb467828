package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ErrorHandler renders errors that escape route handlers, including fiber's own
// (unknown method, body too large) and recovered panics.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := codeInvalidInput
		switch {
		case fiberErr.Code == fiber.StatusNotFound:
			code = codeNotFound
		case fiberErr.Code >= fiber.StatusInternalServerError:
			code = codeInternal
		}
		return apiError(c, fiberErr.Code, code, fiberErr.Message)
	}

	handler.log.Error("request panicked or failed", "request_id", requestID(c), "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, codeInternal, internalErrorMessage)
}
