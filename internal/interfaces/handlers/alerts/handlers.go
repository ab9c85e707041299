package alerts

import (
	"errors"

	alertsvc "mywork-backend/internal/application/alerts"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *alertsvc.Service
}

// List GET /jobs/:jobId/alerts
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context(), c.Params("jobId"))
	if err != nil {
		if errors.Is(err, alertsvc.ErrJobNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("alerts: list failed")
		return response.Error(c, "Failed to fetch alerts", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Alerts fetched", out, map[string]interface{}{"count": len(out)})
}

// Create POST /jobs/:jobId/alerts
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in alertsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	alert, err := h.Service.Create(c.Context(), c.Params("jobId"), in)
	if err != nil {
		switch {
		case errors.Is(err, alertsvc.ErrJobNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, alertsvc.ErrTitleRequired), errors.Is(err, alertsvc.ErrSeverityInvalid):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("alerts: create failed")
		return response.Error(c, "Failed to create alert", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Alert created", alert, nil)
}
