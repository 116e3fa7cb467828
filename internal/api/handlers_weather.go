package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/services"
)

// GetWeather records and returns a fresh snapshot for ?location=, defaulting to the city.
func (handler *Handler) GetWeather(c *fiber.Ctx) error {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		location = services.DefaultCity
	}

	snapshot, err := handler.weather.Enrich(c.UserContext(), location)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, newWeatherResponse(snapshot))
}
