package jobs

import (
	"errors"

	jobsvc "mywork-backend/internal/application/jobs"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers bundles job handlers with the service.
type Handlers struct {
	Service *jobsvc.Service
}

// List GET /jobs?userId=&status=
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context(), jobsvc.ListInput{
		UserID: c.Query("userId"),
		Status: c.Query("status"),
	})
	if err != nil {
		switch {
		case errors.Is(err, jobsvc.ErrStatusInvalid), errors.Is(err, jobsvc.ErrUsersUnresolved):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Msg("jobs: list failed")
		return response.Error(c, "Failed to fetch jobs", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Jobs fetched", out, map[string]interface{}{"count": len(out)})
}

// Get GET /jobs/:jobId
func (h *Handlers) Get(c *fiber.Ctx) error {
	job, err := h.Service.Get(c.Context(), c.Params("jobId"))
	if err != nil {
		if errors.Is(err, jobsvc.ErrJobNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("jobs: get failed")
		return response.Error(c, "Failed to fetch job", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Job fetched", job, nil)
}

// Create POST /jobs
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in jobsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	job, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, jobsvc.ErrTitleRequired),
			errors.Is(err, jobsvc.ErrDateRequired),
			errors.Is(err, jobsvc.ErrDateInvalid),
			errors.Is(err, jobsvc.ErrStatusInvalid),
			errors.Is(err, jobsvc.ErrUsersUnresolved):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Msg("jobs: create failed")
		return response.Error(c, "Failed to create job", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Job created", job, nil)
}

// Update PUT /jobs/:jobId
func (h *Handlers) Update(c *fiber.Ctx) error {
	var in jobsvc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	job, err := h.Service.Update(c.Context(), c.Params("jobId"), in)
	if err != nil {
		switch {
		case errors.Is(err, jobsvc.ErrJobNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, jobsvc.ErrDateInvalid), errors.Is(err, jobsvc.ErrStatusInvalid):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("jobs: update failed")
		return response.Error(c, "Failed to update job", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Job updated", job, nil)
}

// Delete DELETE /jobs/:jobId
func (h *Handlers) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("jobId")); err != nil {
		if errors.Is(err, jobsvc.ErrJobNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("jobs: delete failed")
		return response.Error(c, "Failed to delete job", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Job deleted", map[string]interface{}{"deleted": true}, nil)
}
