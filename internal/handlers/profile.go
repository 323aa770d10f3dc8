package handlers

import (
	"otpauth/internal/models"
	"otpauth/internal/services/profile"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService profile.Service
	exposeOTP      bool
}

func NewProfileHandler(profileService profile.Service, exposeOTP bool) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		exposeOTP:      exposeOTP,
	}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.GetProfile(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return utils.Success(c, "profile_fetched", user)
}

func (h *ProfileHandler) ChangePhone(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	var input models.ChangePhoneInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	code, err := h.profileService.ChangePhone(c.UserContext(), claims.UserID, &input)
	if err != nil {
		return err
	}

	var data interface{}
	if h.exposeOTP {
		data = fiber.Map{"otp": code}
	}
	return utils.Success(c, "otp_sent_for_phone_change", data)
}

func (h *ProfileHandler) VerifyPhone(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return err
	}

	var input models.VerifyPhoneInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.profileService.VerifyPhone(c.UserContext(), claims.UserID, &input)
	if err != nil {
		return err
	}
	return utils.Success(c, "phone_verified_and_updated", user)
}
