package handlers

import (
	"otpauth/internal/models"
	"otpauth/internal/services/user"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	created, err := h.userService.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return utils.Created(c, "user_created", created)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Success(c, "success", users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	found, err := h.userService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", found)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input models.UpdateUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	updated, err := h.userService.Update(c.UserContext(), id, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "user_updated", updated)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.Success(c, "user_deleted", nil)
}
