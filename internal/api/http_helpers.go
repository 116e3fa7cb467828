package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/services"
)

const (
	codeInvalidInput    = "INVALID_INPUT"
	codeUnauthorized    = "UNAUTHORIZED"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeTooManyRequests = "TOO_MANY_REQUESTS"
	codeInternal        = "INTERNAL_ERROR"

	internalErrorMessage = "internal server error"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

func apiError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(envelope{Error: &errorBody{Code: code, Message: message}})
}

type errorMapping struct {
	target error
	status int
	code   string
}

// serviceErrorMappings is checked in order; the first errors.Is match wins.
var serviceErrorMappings = []errorMapping{
	{target: services.ErrUserNotFound, status: fiber.StatusNotFound, code: codeNotFound},
	{target: services.ErrRecordNotFound, status: fiber.StatusNotFound, code: codeNotFound},
	{target: services.ErrRecordForbidden, status: fiber.StatusForbidden, code: codeForbidden},
	{target: services.ErrRecordAlreadyExists, status: fiber.StatusConflict, code: codeConflict},
	{target: services.ErrEmailTaken, status: fiber.StatusConflict, code: codeConflict},
	{target: services.ErrNameTaken, status: fiber.StatusConflict, code: codeConflict},
	{target: services.ErrInvalidRecordInput, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrInvalidUserName, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrInvalidPeriod, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrInvalidDate, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrWeakPassword, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrRangeFromDateInvalid, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrRangeToDateInvalid, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrRangeInvalid, status: fiber.StatusBadRequest, code: codeInvalidInput},
	{target: services.ErrAuthCredentialsInvalid, status: fiber.StatusUnauthorized, code: codeUnauthorized},
}

// respondServiceError maps a service error onto a status and envelope. Unknown
// errors are logged and answered with a generic 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return apiError(c, mapping.status, mapping.code, err.Error())
		}
	}

	handler.log.Error("unhandled service error", "request_id", requestID(c), "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, codeInternal, internalErrorMessage)
}
