package invites

import (
	"errors"

	invitesvc "mywork-backend/internal/application/invites"
	"mywork-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *invitesvc.Service
}

// Create POST /invites
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in invitesvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	invite, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, invitesvc.ErrFieldsRequired),
			errors.Is(err, invitesvc.ErrEmailInvalid),
			errors.Is(err, invitesvc.ErrUserExists):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		log.Error().Err(err).Msg("invites: create failed")
		return response.Error(c, "Failed to create invite", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Invite created", fiber.Map{
		"invite":     invite,
		"inviteLink": h.Service.InviteLink(invite.Token),
	}, nil)
}

// ListPending GET /invites
func (h *Handlers) ListPending(c *fiber.Ctx) error {
	out, err := h.Service.ListPending(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("invites: list failed")
		return response.Error(c, "Failed to fetch invites", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Pending invites fetched", out, map[string]interface{}{"count": len(out)})
}

// Accept POST /invites/accept
func (h *Handlers) Accept(c *fiber.Ctx) error {
	var in invitesvc.AcceptInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.Accept(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, invitesvc.ErrNameRequired),
			errors.Is(err, invitesvc.ErrInviteUsed),
			errors.Is(err, invitesvc.ErrInviteExpired),
			errors.Is(err, invitesvc.ErrUserExists):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, invitesvc.ErrInviteNotFound):
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Msg("invites: accept failed")
		return response.Error(c, "Failed to accept invite", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Invite accepted", user, nil)
}
