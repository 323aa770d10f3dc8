package handlers

import (
	"otpauth/internal/models"
	"otpauth/internal/services/otpdata"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OtpDataHandler struct {
	otpDataService otpdata.Service
}

func NewOtpDataHandler(otpDataService otpdata.Service) *OtpDataHandler {
	return &OtpDataHandler{otpDataService: otpDataService}
}

func (h *OtpDataHandler) Create(c *fiber.Ctx) error {
	var input models.CreateOtpDataInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	row, err := h.otpDataService.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return utils.Created(c, "otp_data_created", row)
}

func (h *OtpDataHandler) List(c *fiber.Ctx) error {
	rows, err := h.otpDataService.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Success(c, "success", rows)
}

func (h *OtpDataHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	row, err := h.otpDataService.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", row)
}

func (h *OtpDataHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	row, err := h.otpDataService.FindByUserID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", row)
}

func (h *OtpDataHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var input models.UpdateOtpDataInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	row, err := h.otpDataService.Update(c.UserContext(), id, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "otp_data_updated", row)
}

func (h *OtpDataHandler) UpdateByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	var input models.UpdateOtpDataInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	row, err := h.otpDataService.UpdateByUserID(c.UserContext(), userID, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "otp_data_updated", row)
}

func (h *OtpDataHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.otpDataService.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return utils.Success(c, "otp_data_deleted", nil)
}

func (h *OtpDataHandler) DeleteByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.otpDataService.DeleteByUserID(c.UserContext(), userID); err != nil {
		return err
	}
	return utils.Success(c, "otp_data_deleted", nil)
}
