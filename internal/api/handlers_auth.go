package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/services"
)

type registerInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
	UserID    uint   `json:"user_id"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, "invalid request body")
	}

	user, err := handler.auth.Register(input.Email, input.Password, input.Name)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			return apiError(c, fiber.StatusBadRequest, codeInvalidInput, "valid email and password are required")
		}
		return handler.respondServiceError(c, err)
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.log.Info("user registered", "request_id", requestID(c), "user_id", user.ID)
	return respond(c, fiber.StatusCreated, handler.newTokenResponse(token, user.ID))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, "invalid request body")
	}

	limiterKey := loginLimiterKey(c, input.Email)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, codeTooManyRequests, "too many failed login attempts")
	}

	user, err := handler.auth.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "invalid email or password")
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.clear(limiterKey)

	token, err := handler.buildToken(&user)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, handler.newTokenResponse(token, user.ID))
}

func (handler *Handler) newTokenResponse(token string, userID uint) tokenResponse {
	return tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(handler.tokenTTL.Seconds()),
		UserID:    userID,
	}
}
