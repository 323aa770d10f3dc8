// Package middleware provides HTTP middleware components for the application.
// It includes bearer authentication, language selection and request metrics.
package middleware

import (
	"strings"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the caller to the request context.
type AuthMiddleware struct {
	signer utils.TokenSigner
	logger *zap.Logger
}

func NewAuthMiddleware(signer utils.TokenSigner, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		signer: signer,
		logger: logger,
	}
}

// Handler stores the claims, user ID and raw token in Locals.
// The session table is not consulted, so a token stays usable after
// its session is evicted until it expires.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.logger.Debug("invalid authorization format", zap.String("path", c.Path()))
		return apperrors.ErrInvalidToken
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return apperrors.ErrMissingAuthHeader
	}

	claims, err := m.signer.Verify(tokenString)
	if err != nil {
		m.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return err
	}

	c.Locals(utils.LocalClaims, claims)
	c.Locals(utils.LocalUserID, claims.UserID)
	c.Locals(utils.LocalToken, tokenString)

	return c.Next()
}
