// Package otpdata exposes administrative access to pending login OTPs.
package otpdata

import (
	"context"
	"errors"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/services"
)

type Service interface {
	Create(ctx context.Context, input *models.CreateOtpDataInput) (*models.OtpData, error)
	FindByID(ctx context.Context, id int64) (*models.OtpData, error)
	FindByUserID(ctx context.Context, userID int64) (*models.OtpData, error)
	FindAll(ctx context.Context) ([]models.OtpData, error)
	Update(ctx context.Context, id int64, input *models.UpdateOtpDataInput) (*models.OtpData, error)
	UpdateByUserID(ctx context.Context, userID int64, input *models.UpdateOtpDataInput) (*models.OtpData, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type service struct {
	store *repositories.Store
}

func NewService(store *repositories.Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input *models.CreateOtpDataInput) (*models.OtpData, error) {
	row := &models.OtpData{UserID: input.UserID, OtpValue: input.OtpValue}
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		return tx.OtpData.Create(ctx, row)
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, apperrors.ErrOtpDataExists
	}
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to create OTP data")
	}
	return row, nil
}

func (s *service) FindByID(ctx context.Context, id int64) (*models.OtpData, error) {
	row, err := s.store.OtpData.GetByID(ctx, id)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrOtpDataNotFound, "failed to get OTP data")
	}
	return row, nil
}

func (s *service) FindByUserID(ctx context.Context, userID int64) (*models.OtpData, error) {
	row, err := s.store.OtpData.GetByUserID(ctx, userID)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrOtpDataNotFound, "failed to get OTP data")
	}
	return row, nil
}

func (s *service) FindAll(ctx context.Context) ([]models.OtpData, error) {
	rows, err := s.store.OtpData.List(ctx)
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to list OTP data")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id int64, input *models.UpdateOtpDataInput) (*models.OtpData, error) {
	return s.update(ctx, input, func(tx *repositories.Store) (*models.OtpData, error) {
		return tx.OtpData.GetByID(ctx, id)
	})
}

func (s *service) UpdateByUserID(ctx context.Context, userID int64, input *models.UpdateOtpDataInput) (*models.OtpData, error) {
	return s.update(ctx, input, func(tx *repositories.Store) (*models.OtpData, error) {
		return tx.OtpData.GetByUserID(ctx, userID)
	})
}

func (s *service) update(ctx context.Context, input *models.UpdateOtpDataInput, find func(*repositories.Store) (*models.OtpData, error)) (*models.OtpData, error) {
	var row *models.OtpData
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if row, err = find(tx); err != nil {
			return err
		}
		if err := tx.OtpData.Update(ctx, row, map[string]interface{}{"otp_value": input.OtpValue}); err != nil {
			return err
		}
		row.OtpValue = input.OtpValue
		return nil
	})
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrOtpDataNotFound, "failed to update OTP data")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, func(tx *repositories.Store) (*models.OtpData, error) {
		return tx.OtpData.GetByID(ctx, id)
	})
}

func (s *service) DeleteByUserID(ctx context.Context, userID int64) error {
	return s.delete(ctx, func(tx *repositories.Store) (*models.OtpData, error) {
		return tx.OtpData.GetByUserID(ctx, userID)
	})
}

func (s *service) delete(ctx context.Context, find func(*repositories.Store) (*models.OtpData, error)) error {
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		row, err := find(tx)
		if err != nil {
			return err
		}
		return tx.OtpData.Delete(ctx, row)
	})
	return services.MapStoreError(err, apperrors.ErrOtpDataNotFound, "failed to delete OTP data")
}
