package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/services"
)

var (
	errInvalidRecordID = errors.New("record id must be a positive integer")
	errInvalidBody     = errors.New("invalid request body")
)

func parseRecordID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errInvalidRecordID
	}
	return uint(id), nil
}

func parseRecordPayload(c *fiber.Ctx) (services.RecordInput, error) {
	var payload recordPayload
	if err := c.BodyParser(&payload); err != nil {
		return services.RecordInput{}, errInvalidBody
	}
	return payload.toInput()
}
