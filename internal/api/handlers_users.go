package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/shim/internal/models"
	"github.com/terraincognita07/shim/internal/services"
)

type userResponse struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type updateUserInput struct {
	Name string `json:"name"`
}

type energyTrendResponse struct {
	RecordID    uint    `json:"record_id"`
	RecordDate  string  `json:"record_date"`
	EnergyScore float64 `json:"energy_score"`
}

type energyStatsResponse struct {
	UserID             uint                  `json:"user_id"`
	Period             string                `json:"period"`
	StartDate          string                `json:"start_date"`
	EndDate            string                `json:"end_date"`
	AverageEnergyScore float64               `json:"average_energy_score"`
	RecordCount        int                   `json:"record_count"`
	EnergyTrend        []energyTrendResponse `json:"energy_trend"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: formatTimestamp(user.CreatedAt),
		UpdatedAt: formatTimestamp(user.UpdatedAt),
	}
}

func (handler *Handler) GetMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}

	profile, err := handler.users.GetProfile(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, newUserResponse(profile))
}

func (handler *Handler) UpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}
	var input updateUserInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidInput, errInvalidBody.Error())
	}

	updated, err := handler.users.UpdateName(user.ID, input.Name)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return respond(c, fiber.StatusOK, newUserResponse(updated))
}

func (handler *Handler) DeleteMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}

	if err := handler.users.DeleteAccount(user.ID); err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.log.Info("account deleted", "request_id", requestID(c), "user_id", user.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyStats answers ?period=week|month with an optional ?date=YYYY-MM-DD, defaulting to today.
func (handler *Handler) GetMyStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, codeUnauthorized, "unauthorized")
	}

	period := strings.ToLower(strings.TrimSpace(c.Query("period")))
	day := services.CalendarDay(handler.now(), handler.location)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := services.ParseCalendarDay(raw)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		day = parsed
	}

	stats, err := handler.users.EnergyStats(user.ID, period, day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	response := energyStatsResponse{
		UserID:             stats.UserID,
		Period:             stats.Period,
		StartDate:          services.FormatCalendarDay(stats.StartDate),
		EndDate:            services.FormatCalendarDay(stats.EndDate),
		AverageEnergyScore: stats.AverageEnergyScore,
		RecordCount:        stats.RecordCount,
		EnergyTrend:        make([]energyTrendResponse, 0, len(stats.Trend)),
	}
	for _, point := range stats.Trend {
		response.EnergyTrend = append(response.EnergyTrend, energyTrendResponse{
			RecordID:    point.RecordID,
			RecordDate:  services.FormatCalendarDay(point.RecordDate),
			EnergyScore: point.EnergyScore,
		})
	}
	return respond(c, fiber.StatusOK, response)
}
