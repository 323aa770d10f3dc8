// Package services holds helpers shared by the service packages.
package services

import (
	"context"
	"errors"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/repositories"
	"otpauth/internal/services/otp"
)

// MapStoreError turns repository failures into caller-facing errors.
// A missing row becomes notFound; classified errors pass through;
// anything else is Internal with op as its message.
func MapStoreError(err error, notFound *apperrors.DomainError, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotFound) && notFound != nil {
		return notFound
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(op, err)
}

// referralAttempts bounds the retries on a colliding referral code.
const referralAttempts = 5

var errReferralExhausted = errors.New("could not generate an unused referral code")

// NewReferralCode draws referral codes until one is not held by any user,
// tombstoned users included.
func NewReferralCode(ctx context.Context, users repositories.UserRepository, gen otp.Generator) (string, error) {
	for i := 0; i < referralAttempts; i++ {
		code, err := gen.ReferralCode()
		if err != nil {
			return "", err
		}
		taken, err := users.ReferalCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errReferralExhausted
}
