package handlers

import (
	"otpauth/internal/models"
	"otpauth/internal/services/tempphone"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TempPhoneHandler struct {
	tempPhoneService tempphone.Service
}

func NewTempPhoneHandler(tempPhoneService tempphone.Service) *TempPhoneHandler {
	return &TempPhoneHandler{tempPhoneService: tempPhoneService}
}

func (h *TempPhoneHandler) Create(c *fiber.Ctx) error {
	var input models.CreateTempPhoneInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	row, err := h.tempPhoneService.Create(c.UserContext(), &input)
	if err != nil {
		return err
	}
	return utils.Created(c, "temp_phone_created", row)
}

func (h *TempPhoneHandler) List(c *fiber.Ctx) error {
	rows, err := h.tempPhoneService.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return utils.Success(c, "success", rows)
}

func (h *TempPhoneHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	row, err := h.tempPhoneService.FindByUserID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", row)
}

func (h *TempPhoneHandler) GetByPhone(c *fiber.Ctx) error {
	row, err := h.tempPhoneService.FindByPhoneNumber(c.UserContext(), c.Params("phNo"))
	if err != nil {
		return err
	}
	return utils.Success(c, "success", row)
}

func (h *TempPhoneHandler) Update(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	var input models.UpdateTempPhoneInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	row, err := h.tempPhoneService.Update(c.UserContext(), userID, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "temp_phone_updated", row)
}

func (h *TempPhoneHandler) Delete(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.tempPhoneService.Delete(c.UserContext(), userID); err != nil {
		return err
	}
	return utils.Success(c, "temp_phone_deleted", nil)
}

// Verify checks an OTP against the staged number without applying it.
func (h *TempPhoneHandler) Verify(c *fiber.Ctx) error {
	var input models.VerifyTempPhoneInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	row, err := h.tempPhoneService.VerifyOTP(c.UserContext(), input.UserID, input.PhNo, input.Otp)
	if err != nil {
		return err
	}
	return utils.Success(c, "success", row)
}
