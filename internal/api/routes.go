package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.RequestID)
	app.Use(handler.RequestLogger)

	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	records := api.Group("/records", handler.AuthRequired)
	records.Post("", handler.CreateRecord)
	records.Get("", handler.ListRecords)
	records.Get("/:id", handler.GetRecord)
	records.Put("/:id", handler.UpdateRecord)
	records.Delete("/:id", handler.DeleteRecord)
	records.Post("/:id/prescription", handler.RegeneratePrescription)

	me := api.Group("/users/me", handler.AuthRequired)
	me.Get("", handler.GetMe)
	me.Put("", handler.UpdateMe)
	me.Delete("", handler.DeleteMe)
	me.Get("/status", handler.GetMyStats)

	api.Get("/weather", handler.AuthRequired, handler.GetWeather)

	app.Use(handler.NotFound)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
