// Package profile serves the caller's own profile and the phone number
// change flow, which stages the new number until its OTP is confirmed.
package profile

import (
	"context"
	"errors"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/metrics"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/repositories/cache"
	"otpauth/internal/services"
	"otpauth/internal/services/notification"
	"otpauth/internal/services/otp"

	"go.uber.org/zap"
)

type Service interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)

	// ChangePhone stages the new number and returns the OTP sent to it.
	ChangePhone(ctx context.Context, userID int64, input *models.ChangePhoneInput) (string, error)

	// VerifyPhone moves the user to the staged number and ends every session.
	VerifyPhone(ctx context.Context, userID int64, input *models.VerifyPhoneInput) (*models.User, error)
}

type service struct {
	store     *repositories.Store
	generator otp.Generator
	cache     cache.UserCache
	sender    notification.Sender
	metrics   metrics.Recorder
	logger    *zap.Logger
}

func NewService(
	store *repositories.Store,
	generator otp.Generator,
	userCache cache.UserCache,
	sender notification.Sender,
	recorder metrics.Recorder,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if generator == nil {
		generator = otp.NewGenerator()
	}
	if userCache == nil {
		userCache = cache.NopUserCache{}
	}
	if sender == nil {
		sender = notification.NewService(logger)
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &service{
		store:     store,
		generator: generator,
		cache:     userCache,
		sender:    sender,
		metrics:   recorder,
		logger:    logger,
	}
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	cached, err := s.cache.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("profile cache read failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	if cached != nil {
		s.metrics.CacheLookup(true)
		return cached, nil
	}
	s.metrics.CacheLookup(false)

	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrUserNotFound, "failed to get profile")
	}

	if err := s.cache.CacheUser(ctx, user); err != nil {
		s.logger.Warn("failed to cache profile", zap.Int64("user_id", userID), zap.Error(err))
	}
	return user, nil
}

func (s *service) ChangePhone(ctx context.Context, userID int64, input *models.ChangePhoneInput) (string, error) {
	code, err := s.generator.NumericCode(models.LoginOTPLength)
	if err != nil {
		return "", apperrors.Internal("failed to generate OTP", err)
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		existing, err := tx.TempPhones.GetByUserIDAndPhone(ctx, userID, input.PhoneNumber)
		if err == nil {
			if err := tx.TempPhones.Update(ctx, existing, map[string]interface{}{"otp": code}); err != nil {
				return err
			}
			existing.Otp = code
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		// A failed insert poisons a Postgres transaction, so it gets its own savepoint.
		staged := &models.TempPhone{UserID: userID, PhNo: input.PhoneNumber, Otp: code}
		err = tx.ExecuteInTransaction(ctx, func(sp *repositories.Store) error {
			return sp.TempPhones.Create(ctx, staged)
		})
		if errors.Is(err, repositories.ErrDuplicate) {
			// The user already has a row, for another number or tombstoned.
			_, err = tx.TempPhones.Reclaim(ctx, userID, input.PhoneNumber, code)
		}
		return err
	})
	if err != nil {
		return "", services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to stage phone change")
	}

	s.metrics.OTPIssued(metrics.PurposePhoneChange)
	if err := s.sender.SendOTP(ctx, notification.OTPMessage{
		CountryCode: input.CountryCode,
		PhoneNumber: input.PhoneNumber,
		Code:        code,
	}); err != nil {
		s.logger.Error("failed to deliver phone change OTP", zap.Int64("user_id", userID), zap.Error(err))
	}

	s.logger.Info("phone change requested", zap.Int64("user_id", userID))
	return code, nil
}

func (s *service) VerifyPhone(ctx context.Context, userID int64, input *models.VerifyPhoneInput) (*models.User, error) {
	var (
		user    *models.User
		revoked int64
	)
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		staged, err := tx.TempPhones.GetByUserIDAndPhone(ctx, userID, input.PhoneNumber)
		if err != nil {
			return services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to get staged phone")
		}
		if staged.Otp != input.Otp {
			return apperrors.ErrInvalidOTP
		}

		user, err = tx.Users.GetByID(ctx, userID)
		if err != nil {
			return services.MapStoreError(err, apperrors.ErrUserNotFound, "failed to get user")
		}

		err = tx.Users.Update(ctx, user, map[string]interface{}{
			"phone_number": input.PhoneNumber,
			"country_code": input.CountryCode,
		})
		if errors.Is(err, repositories.ErrDuplicate) {
			return apperrors.ErrPhoneInUse
		}
		if err != nil {
			return err
		}
		user.PhoneNumber = input.PhoneNumber
		user.CountryCode = input.CountryCode

		if revoked, err = tx.Sessions.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return tx.TempPhones.Delete(ctx, staged)
	})

	switch {
	case errors.Is(err, apperrors.ErrInvalidOTP):
		s.metrics.OTPVerified(metrics.PurposePhoneChange, metrics.ResultMismatch)
	case errors.Is(err, apperrors.ErrTempPhoneNotFound):
		s.metrics.OTPVerified(metrics.PurposePhoneChange, metrics.ResultMissing)
	case err == nil:
		s.metrics.OTPVerified(metrics.PurposePhoneChange, metrics.ResultSuccess)
	}
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to verify phone change")
	}

	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate cached profile", zap.Int64("user_id", userID), zap.Error(err))
	}
	s.logger.Info("phone number changed",
		zap.Int64("user_id", userID),
		zap.Int64("sessions_revoked", revoked),
	)
	return user, nil
}
