package handlers

import (
	"otpauth/internal/models"
	"otpauth/internal/services/session"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	sessionService session.Service
}

func NewSessionHandler(sessionService session.Service) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.sessionService.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Success(c, "success", sessions)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.sessionService.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", found)
}

// ListByUser returns the user's sessions oldest first.
func (h *SessionHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	sessions, err := h.sessionService.FindAllByUserID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", sessions)
}

func (h *SessionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input models.UpdateSessionInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.sessionService.Update(c.UserContext(), id, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "session_updated", updated)
}

func (h *SessionHandler) UpdateByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	var input models.UpdateSessionInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	count, err := h.sessionService.UpdateByUserID(c.UserContext(), userID, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "session_updated", fiber.Map{"updated": count})
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.sessionService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.Success(c, "session_deleted", nil)
}

func (h *SessionHandler) DeleteByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	count, err := h.sessionService.DeleteByUserID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.Success(c, "session_deleted", fiber.Map{"deleted": count})
}
