package utils

import (
	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Keys under which the auth middleware stores the caller.
const (
	LocalClaims = "claims"
	LocalUserID = "userID"
	LocalToken  = "token"
)

// GetUserClaims extracts the user claims from the Fiber context.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(LocalClaims).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	return claims, nil
}

// GetBearerToken returns the raw token the caller authenticated with.
func GetBearerToken(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(LocalToken).(string)
	if !ok || token == "" {
		return "", apperrors.ErrMissingAuthHeader
	}
	return token, nil
}
