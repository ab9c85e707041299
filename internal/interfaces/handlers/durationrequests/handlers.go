package durationrequests

import (
	"errors"

	drsvc "mywork-backend/internal/application/durationrequests"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *drsvc.Service
}

// List GET /jobs/:jobId/duration-requests
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context(), c.Params("jobId"))
	if err != nil {
		if errors.Is(err, drsvc.ErrJobNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("duration requests: list failed")
		return response.Error(c, "Failed to fetch duration requests", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Duration requests fetched", out, map[string]interface{}{"count": len(out)})
}

// Create POST /jobs/:jobId/duration-requests
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in drsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	r, err := h.Service.Create(c.Context(), c.Params("jobId"), in)
	if err != nil {
		switch {
		case errors.Is(err, drsvc.ErrJobNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, drsvc.ErrDurationInvalid), errors.Is(err, drsvc.ErrUserNotFound):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("duration requests: create failed")
		return response.Error(c, "Failed to create duration request", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Duration change request created", r, nil)
}

// Resolve PATCH /duration-requests/:id
func (h *Handlers) Resolve(c *fiber.Ctx) error {
	var in drsvc.ResolveInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	r, err := h.Service.Resolve(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, drsvc.ErrRequestNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, drsvc.ErrResolutionInvalid), errors.Is(err, drsvc.ErrAlreadyResolved):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Str("request_id", c.Params("id")).Msg("duration requests: resolve failed")
		return response.Error(c, "Failed to resolve duration request", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Duration request resolved", r, nil)
}
