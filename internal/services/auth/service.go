// Package auth implements phone login: OTP issuance, OTP verification
// with session creation, FCM token updates and logout.
package auth

import (
	"context"
	"errors"
	"fmt"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/metrics"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/repositories/cache"
	"otpauth/internal/services"
	"otpauth/internal/services/notification"
	"otpauth/internal/services/otp"
	"otpauth/internal/services/session"
	"otpauth/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	RequestOTP(ctx context.Context, input *models.SendOTPInput) (*RequestOTPResult, error)
	VerifyOTP(ctx context.Context, input *models.VerifyOTPInput) (*VerifyOTPResult, error)
	UpdateFcmToken(ctx context.Context, token string, userID int64, fcmToken string) (*models.UserSession, error)
	Logout(ctx context.Context, token string, userID int64) error
}

// RequestOTPResult carries the plaintext OTP so the caller can deliver it.
type RequestOTPResult struct {
	User      *models.User
	IsNewUser bool
	OTP       string
}

type VerifyOTPResult struct {
	User    *models.User
	Token   string
	Session *models.UserSession
}

// Deps are the collaborators of the auth service. Locker, Cache, Sender
// and Metrics fall back to no-op implementations when nil.
type Deps struct {
	Store     *repositories.Store
	Sessions  session.Service
	Generator otp.Generator
	Signer    utils.TokenSigner
	Locker    cache.Locker
	Cache     cache.UserCache
	Sender    notification.Sender
	Metrics   metrics.Recorder
	Logger    *zap.Logger
}

type service struct {
	store     *repositories.Store
	sessions  session.Service
	generator otp.Generator
	signer    utils.TokenSigner
	locker    cache.Locker
	cache     cache.UserCache
	sender    notification.Sender
	metrics   metrics.Recorder
	logger    *zap.Logger
}

func NewService(deps Deps) Service {
	s := &service{
		store:     deps.Store,
		sessions:  deps.Sessions,
		generator: deps.Generator,
		signer:    deps.Signer,
		locker:    deps.Locker,
		cache:     deps.Cache,
		sender:    deps.Sender,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.locker == nil {
		s.locker = cache.NopLocker{}
	}
	if s.cache == nil {
		s.cache = cache.NopUserCache{}
	}
	if s.sender == nil {
		s.sender = notification.NewService(s.logger)
	}
	if s.metrics == nil {
		s.metrics = metrics.NoopRecorder{}
	}
	if s.generator == nil {
		s.generator = otp.NewGenerator()
	}
	return s
}

func phoneLockKey(countryCode, phoneNumber string) string {
	return fmt.Sprintf("phone:%s:%s", countryCode, phoneNumber)
}

func (s *service) RequestOTP(ctx context.Context, input *models.SendOTPInput) (*RequestOTPResult, error) {
	result, err := s.issueLocked(ctx, input)
	if err != nil {
		return nil, err
	}

	s.metrics.OTPIssued(metrics.PurposeLogin)
	s.invalidate(ctx, result.User.ID)
	s.deliver(ctx, notification.OTPMessage{
		CountryCode: input.CountryCode,
		PhoneNumber: input.PhoneNumber,
		Code:        result.OTP,
		HashKey:     input.HashKey,
	})

	s.logger.Info("login OTP issued",
		zap.Int64("user_id", result.User.ID),
		zap.Bool("new_user", result.IsNewUser),
	)
	return result, nil
}

// issueLocked holds the phone lock only until the OTP is committed.
func (s *service) issueLocked(ctx context.Context, input *models.SendOTPInput) (*RequestOTPResult, error) {
	unlock, err := s.locker.Lock(ctx, phoneLockKey(input.CountryCode, input.PhoneNumber))
	if err != nil {
		return nil, apperrors.Internal("failed to acquire phone lock", err)
	}
	defer unlock()

	result, err := s.issueLoginOTP(ctx, input)
	if errors.Is(err, repositories.ErrDuplicate) {
		// Another instance registered the same phone between our read and insert.
		s.logger.Warn("duplicate key while issuing OTP, retrying",
			zap.String("country_code", input.CountryCode),
			zap.Error(err),
		)
		result, err = s.issueLoginOTP(ctx, input)
	}
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to issue OTP")
	}
	return result, nil
}

// issueLoginOTP finds or registers the user and stores a fresh OTP, all in
// one transaction.
func (s *service) issueLoginOTP(ctx context.Context, input *models.SendOTPInput) (*RequestOTPResult, error) {
	result := &RequestOTPResult{}
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.GetByPhone(ctx, input.PhoneNumber, input.CountryCode)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			result.IsNewUser = true
		case err != nil:
			return err
		}

		referrerID, err := s.lookupReferrer(ctx, tx, input.ReferalID)
		if err != nil {
			return err
		}

		rideOTP, err := s.generator.NumericCode(models.RideOTPLength)
		if err != nil {
			return err
		}
		loginOTP, err := s.generator.NumericCode(models.LoginOTPLength)
		if err != nil {
			return err
		}

		if result.IsNewUser {
			code, err := services.NewReferralCode(ctx, tx.Users, s.generator)
			if err != nil {
				return err
			}
			user = &models.User{
				CountryCode: input.CountryCode,
				PhoneNumber: input.PhoneNumber,
				IsActive:    true,
				RideOTP:     rideOTP,
				ReferalCode: &code,
				ReferedBy:   referrerID,
			}
			if err := tx.Users.Create(ctx, user); err != nil {
				return err
			}
		} else {
			fields := map[string]interface{}{"ride_otp": rideOTP}
			if user.ReferedBy == nil && referrerID != nil {
				fields["refered_by"] = *referrerID
				user.ReferedBy = referrerID
			}
			if err := tx.Users.Update(ctx, user, fields); err != nil {
				return err
			}
			user.RideOTP = rideOTP
		}

		if err := upsertOtpData(ctx, tx, user.ID, loginOTP); err != nil {
			return err
		}

		result.User = user
		result.OTP = loginOTP
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lookupReferrer returns nil when code is empty or matches no user.
func (s *service) lookupReferrer(ctx context.Context, tx *repositories.Store, code string) (*int64, error) {
	if code == "" {
		return nil, nil
	}
	referrer, err := tx.Users.GetByReferalCode(ctx, code)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := referrer.ID
	return &id, nil
}

func upsertOtpData(ctx context.Context, tx *repositories.Store, userID int64, value string) error {
	existing, err := tx.OtpData.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return tx.OtpData.Create(ctx, &models.OtpData{UserID: userID, OtpValue: value})
	}
	if err != nil {
		return err
	}
	if err := tx.OtpData.Update(ctx, existing, map[string]interface{}{"otp_value": value}); err != nil {
		return err
	}
	existing.OtpValue = value
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, input *models.VerifyOTPInput) (*VerifyOTPResult, error) {
	result := &VerifyOTPResult{}
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.GetByPhone(ctx, input.PhoneNumber, input.CountryCode)
		if err != nil {
			return services.MapStoreError(err, apperrors.ErrUserNotFound, "failed to get user")
		}

		stored, err := tx.OtpData.GetByUserID(ctx, user.ID)
		if err != nil {
			return services.MapStoreError(err, apperrors.ErrOTPNotRequested, "failed to get OTP")
		}
		if stored.OtpValue != input.OtpValue {
			return apperrors.ErrInvalidOTP
		}

		fields := map[string]interface{}{"is_verified": true}
		if !user.HasReferalCode() {
			code, err := services.NewReferralCode(ctx, tx.Users, s.generator)
			if err != nil {
				return err
			}
			fields["referal_code"] = code
			user.ReferalCode = &code
		}
		if err := tx.Users.Update(ctx, user, fields); err != nil {
			return err
		}
		user.IsVerified = true

		token, err := s.signer.Sign(user.ID, user.EmailID)
		if err != nil {
			return err
		}

		sess, err := s.sessions.Open(ctx, tx, user.ID, token, input.FcmToken)
		if err != nil {
			return err
		}

		result.User = user
		result.Token = token
		result.Session = sess
		return nil
	})

	switch {
	case errors.Is(err, apperrors.ErrInvalidOTP):
		s.metrics.OTPVerified(metrics.PurposeLogin, metrics.ResultMismatch)
	case errors.Is(err, apperrors.ErrOTPNotRequested):
		s.metrics.OTPVerified(metrics.PurposeLogin, metrics.ResultMissing)
	case err == nil:
		s.metrics.OTPVerified(metrics.PurposeLogin, metrics.ResultSuccess)
	}
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to verify OTP")
	}

	s.invalidate(ctx, result.User.ID)
	s.logger.Info("login OTP verified",
		zap.Int64("user_id", result.User.ID),
		zap.Int64("session_id", result.Session.ID),
	)
	return result, nil
}

func (s *service) UpdateFcmToken(ctx context.Context, token string, userID int64, fcmToken string) (*models.UserSession, error) {
	return s.sessions.UpdateFcm(ctx, token, userID, fcmToken)
}

func (s *service) Logout(ctx context.Context, token string, userID int64) error {
	if err := s.sessions.DeleteByTokenAndUserID(ctx, token, userID); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.Int64("user_id", userID))
	return nil
}

func (s *service) deliver(ctx context.Context, msg notification.OTPMessage) {
	if err := s.sender.SendOTP(ctx, msg); err != nil {
		s.logger.Error("failed to deliver OTP", zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context, userID int64) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate cached profile", zap.Int64("user_id", userID), zap.Error(err))
	}
}
