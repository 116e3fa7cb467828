package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/terraincognita07/shim/internal/models"
)

const (
	requestIDHeader  = "X-Request-ID"
	contextUserKey   = "current_user"
	contextRequestID = "request_id"
	maxRequestIDSize = 128
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func requestID(c *fiber.Ctx) string {
	value, _ := c.Locals(contextRequestID).(string)
	return value
}

// RequestID reuses a sane inbound X-Request-ID or mints a new one, and echoes it back.
func (handler *Handler) RequestID(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Get(requestIDHeader))
	if id == "" || len(id) > maxRequestIDSize {
		id = uuid.NewString()
	}
	c.Locals(contextRequestID, id)
	c.Set(requestIDHeader, id)
	return c.Next()
}

func (handler *Handler) RequestLogger(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()
	if err != nil {
		// Let the app error handler write the response before the status is read.
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	fields := []any{
		"request_id", requestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"latency_ms", time.Since(started).Milliseconds(),
	}
	if user, ok := currentUser(c); ok {
		fields = append(fields, "user_id", user.ID)
	}

	switch {
	case status >= fiber.StatusInternalServerError:
		handler.log.Error("request failed", fields...)
	case status >= fiber.StatusBadRequest:
		handler.log.Warn("request rejected", fields...)
	default:
		handler.log.Info("request served", fields...)
	}
	return nil
}
