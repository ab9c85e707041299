package notes

import (
	"errors"

	notesvc "mywork-backend/internal/application/notes"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *notesvc.Service
}

// List GET /jobs/:jobId/notes
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context(), c.Params("jobId"))
	if err != nil {
		if errors.Is(err, notesvc.ErrJobNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("notes: list failed")
		return response.Error(c, "Failed to fetch notes", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Notes fetched", out, map[string]interface{}{"count": len(out)})
}

// Create POST /jobs/:jobId/notes
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in notesvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	note, err := h.Service.Create(c.Context(), c.Params("jobId"), in)
	if err != nil {
		switch {
		case errors.Is(err, notesvc.ErrJobNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, notesvc.ErrContentRequired), errors.Is(err, notesvc.ErrUserNotFound):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("notes: create failed")
		return response.Error(c, "Failed to create note", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Note created", note, nil)
}
