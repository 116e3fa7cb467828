package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/services"
)

func (handler *Handler) CreateRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	input, err := parseRecordPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, err.Error())
	}

	result, err := handler.records.CreateRecord(c.UserContext(), user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusCreated, newRecordResponse(result))
}

func (handler *Handler) UpdateRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	recordID, err := parseRecordID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, err.Error())
	}
	input, err := parseRecordPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, err.Error())
	}

	result, err := handler.records.UpdateRecord(c.UserContext(), user.ID, recordID, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, newRecordResponse(result))
}

func (handler *Handler) GetRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	recordID, err := parseRecordID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, err.Error())
	}

	result, err := handler.records.GetRecord(c.UserContext(), user.ID, recordID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, newRecordResponse(result))
}

func (handler *Handler) ListRecords(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	from, to, err := services.ParseRecordRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	results, err := handler.records.ListRecords(c.UserContext(), user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	response := make([]recordResponse, 0, len(results))
	for _, result := range results {
		response = append(response, newRecordResponse(result))
	}
	return respond(c, fiber.StatusOK, response)
}

func (handler *Handler) DeleteRecord(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	recordID, err := parseRecordID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, err.Error())
	}

	if err := handler.records.DeleteRecord(c.UserContext(), user.ID, recordID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) RegeneratePrescription(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	recordID, err := parseRecordID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, err.Error())
	}

	result, err := handler.records.RegeneratePrescription(c.UserContext(), user.ID, recordID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, newRecordResponse(result))
}
