package handlers

import (
	"otpauth/internal/models"
	"otpauth/internal/services/auth"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
	exposeOTP   bool
}

// NewAuthHandler echoes issued OTPs in responses when exposeOTP is set.
func NewAuthHandler(authService auth.Service, exposeOTP bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		exposeOTP:   exposeOTP,
	}
}

type sendOTPResponse struct {
	UserID      int64  `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
	CountryCode string `json:"countryCode"`
	IsNewUser   bool   `json:"isNewUser"`
	OTP         string `json:"otp,omitempty"`
}

type verifyOTPResponse struct {
	UserID      int64   `json:"userId"`
	PhoneNumber string  `json:"phoneNumber"`
	CountryCode string  `json:"countryCode"`
	IsVerified  bool    `json:"isVerified"`
	ReferalCode *string `json:"referalCode"`
	Token       string  `json:"token"`
	SessionID   int64   `json:"sessionId"`
}

type fcmResponse struct {
	SessionID int64  `json:"sessionId"`
	UserID    int64  `json:"userId"`
	FcmToken  string `json:"fcm_token"`
}

// SendOTP registers the phone if needed and issues a login OTP.
func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	var input models.SendOTPInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.RequestOTP(c.UserContext(), &input)
	if err != nil {
		return err
	}

	resp := sendOTPResponse{
		UserID:      result.User.ID,
		PhoneNumber: result.User.PhoneNumber,
		CountryCode: result.User.CountryCode,
		IsNewUser:   result.IsNewUser,
	}
	if h.exposeOTP {
		resp.OTP = result.OTP
	}
	message := "otp_sent"
	if result.IsNewUser {
		message = "user_created_otp_sent"
	}
	return utils.Success(c, message, resp)
}

// VerifyOTP checks the OTP and opens a session.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input models.VerifyOTPInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	result, err := h.authService.VerifyOTP(c.UserContext(), &input)
	if err != nil {
		return err
	}

	return utils.Success(c, "otp_verified", verifyOTPResponse{
		UserID:      result.User.ID,
		PhoneNumber: result.User.PhoneNumber,
		CountryCode: result.User.CountryCode,
		IsVerified:  result.User.IsVerified,
		ReferalCode: result.User.ReferalCode,
		Token:       result.Token,
		SessionID:   result.Session.ID,
	})
}

func (h *AuthHandler) UpdateFcm(c *fiber.Ctx) error {
	userID, token, err := caller(c)
	if err != nil {
		return err
	}

	var input models.UpdateFcmInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	session, err := h.authService.UpdateFcmToken(c.UserContext(), token, userID, input.FcmToken)
	if err != nil {
		return err
	}
	return utils.Success(c, "fcm_token_updated", fcmResponse{
		SessionID: session.ID,
		UserID:    session.UserID,
		FcmToken:  session.FcmToken,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, token, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.UserContext(), token, userID); err != nil {
		return err
	}
	return utils.Success(c, "logout_successful", nil)
}
