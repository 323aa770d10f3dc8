package utils

import (
	"errors"
	"strconv"
	"time"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "otpauth-api"

// TokenSigner issues and checks session tokens.
type TokenSigner interface {
	Sign(userID int64, email string) (string, error)
	Verify(token string) (*models.UserClaims, error)
}

// JWTSigner signs HS256 tokens with a shared secret.
type JWTSigner struct {
	secret    []byte
	expiresIn time.Duration
}

func NewJWTSigner(secret string, expiresIn time.Duration) *JWTSigner {
	return &JWTSigner{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

var errSecretMissing = errors.New("JWT_SECRET not configured")

// Sign embeds {id, email} in a token valid for the configured duration.
// Each token carries a random jti so two logins in the same second differ.
func (s *JWTSigner) Sign(userID int64, email string) (string, error) {
	if len(s.secret) == 0 {
		return "", apperrors.Internal("JWT secret is not configured", errSecretMissing)
	}

	now := time.Now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
		},
		UserID: userID,
		Email:  email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return token, nil
}

// Verify parses tokenStr and returns its claims.
func (s *JWTSigner) Verify(tokenStr string) (*models.UserClaims, error) {
	if len(s.secret) == 0 {
		return nil, apperrors.Internal("JWT secret is not configured", errSecretMissing)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
