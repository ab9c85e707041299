package photos

import (
	"errors"

	photosvc "mywork-backend/internal/application/photos"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *photosvc.Service
}

// List GET /jobs/:jobId/photos
func (h *Handlers) List(c *fiber.Ctx) error {
	out, err := h.Service.List(c.Context(), c.Params("jobId"))
	if err != nil {
		if errors.Is(err, photosvc.ErrJobNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("photos: list failed")
		return response.Error(c, "Failed to fetch photos", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Photos fetched", out, map[string]interface{}{"count": len(out)})
}

// Create POST /jobs/:jobId/photos — multipart form with a "file" part
// plus userId/userEmail/caption fields.
func (h *Handlers) Create(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, photosvc.ErrMissingInput.Error(), fiber.StatusBadRequest, nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("photos: opening upload failed")
		return response.Error(c, "Failed to read uploaded file", fiber.StatusInternalServerError, nil)
	}
	defer file.Close()

	photo, err := h.Service.Create(c.Context(), c.Params("jobId"), photosvc.CreateInput{
		UserID:      c.FormValue("userId"),
		UserEmail:   c.FormValue("userEmail"),
		Caption:     c.FormValue("caption"),
		FileName:    fileHeader.Filename,
		File:        file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, photosvc.ErrJobNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, photosvc.ErrMissingInput):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Str("job_id", c.Params("jobId")).Msg("photos: create failed")
		return response.Error(c, "Failed to upload photo", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Photo uploaded", photo, nil)
}
