package user

import (
	"context"
	"errors"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/repositories/cache"
	"otpauth/internal/services"
	"otpauth/internal/services/otp"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id int64, input *models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store     *repositories.Store
	generator otp.Generator
	cache     cache.UserCache
	logger    *zap.Logger
}

func NewService(store *repositories.Store, generator otp.Generator, userCache cache.UserCache, logger *zap.Logger) Service {
	if generator == nil {
		generator = otp.NewGenerator()
	}
	if userCache == nil {
		userCache = cache.NopUserCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		store:     store,
		generator: generator,
		cache:     userCache,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	var user *models.User
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		rideOTP, err := s.generator.NumericCode(models.RideOTPLength)
		if err != nil {
			return err
		}
		code, err := services.NewReferralCode(ctx, tx.Users, s.generator)
		if err != nil {
			return err
		}

		user = &models.User{
			CountryCode:    input.CountryCode,
			PhoneNumber:    input.PhoneNumber,
			FullName:       input.FullName,
			Gender:         input.Gender,
			IsBusinessUser: input.IsBusinessUser,
			IsActive:       true,
			EmailID:        input.EmailID,
			RideOTP:        rideOTP,
			ReferalCode:    &code,
		}
		return tx.Users.Create(ctx, user)
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, apperrors.ErrPhoneInUse
	}
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to create user")
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, id)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrUserNotFound, "failed to get user")
	}
	return user, nil
}

func (s *service) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users.List(ctx)
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to list users")
	}
	return users, nil
}

func (s *service) Update(ctx context.Context, id int64, input *models.UpdateUserInput) (*models.User, error) {
	var user *models.User
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		user, err = tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		fields := make(map[string]interface{})
		if input.FullName != nil {
			fields["full_name"] = *input.FullName
			user.FullName = *input.FullName
		}
		if input.Gender != nil {
			fields["gender"] = *input.Gender
			user.Gender = *input.Gender
		}
		if input.IsBusinessUser != nil {
			fields["is_business_user"] = *input.IsBusinessUser
			user.IsBusinessUser = *input.IsBusinessUser
		}
		if input.IsActive != nil {
			fields["is_active"] = *input.IsActive
			user.IsActive = *input.IsActive
		}
		if input.EmailID != nil {
			fields["email_id"] = *input.EmailID
			user.EmailID = *input.EmailID
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Users.Update(ctx, user, fields)
	})
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrUserNotFound, "failed to update user")
	}

	s.invalidate(ctx, id)
	return user, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		user, err := tx.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return tx.Users.Delete(ctx, user)
	})
	if err != nil {
		return services.MapStoreError(err, apperrors.ErrUserNotFound, "failed to delete user")
	}

	s.invalidate(ctx, id)
	return nil
}

func (s *service) invalidate(ctx context.Context, id int64) {
	if err := s.cache.InvalidateUser(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate cached profile", zap.Int64("user_id", id), zap.Error(err))
	}
}
