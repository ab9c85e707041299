package users

import (
	"errors"

	usersvc "mywork-backend/internal/application/users"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *usersvc.Service
}

// FindOrCreate POST /users — returns the existing user for the email or
// creates one. 200 when found, 201 when created.
func (h *Handlers) FindOrCreate(c *fiber.Ctx) error {
	var in usersvc.FindOrCreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	user, created, err := h.Service.FindOrCreate(c.Context(), in)
	if err != nil {
		if errors.Is(err, usersvc.ErrEmailInvalid) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Msg("users: find-or-create failed")
		return response.Error(c, "Failed to resolve user", fiber.StatusInternalServerError, nil)
	}
	if created {
		return response.SuccessCreated(c, "User created", user, nil)
	}
	return response.Success(c, "User found", user, nil)
}
