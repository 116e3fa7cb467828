package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}
