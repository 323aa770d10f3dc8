// Package tempphone exposes administrative access to staged phone changes.
package tempphone

import (
	"context"
	"errors"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/services"
)

type Service interface {
	Create(ctx context.Context, input *models.CreateTempPhoneInput) (*models.TempPhone, error)
	FindByUserID(ctx context.Context, userID int64) (*models.TempPhone, error)
	FindByPhoneNumber(ctx context.Context, phNo string) (*models.TempPhone, error)
	FindByUserIDAndPhone(ctx context.Context, userID int64, phNo string) (*models.TempPhone, error)
	FindAll(ctx context.Context) ([]models.TempPhone, error)
	Update(ctx context.Context, userID int64, input *models.UpdateTempPhoneInput) (*models.TempPhone, error)
	Delete(ctx context.Context, userID int64) error

	// VerifyOTP checks otp against the staged row without consuming it.
	VerifyOTP(ctx context.Context, userID int64, phNo, otp string) (*models.TempPhone, error)
}

type service struct {
	store *repositories.Store
}

func NewService(store *repositories.Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input *models.CreateTempPhoneInput) (*models.TempPhone, error) {
	row := &models.TempPhone{UserID: input.UserID, PhNo: input.PhNo, Otp: input.Otp}
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		err := tx.ExecuteInTransaction(ctx, func(sp *repositories.Store) error {
			return sp.TempPhones.Create(ctx, row)
		})
		if !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}

		// Only a tombstoned row may be taken over.
		if _, err := tx.TempPhones.GetByUserID(ctx, input.UserID); err == nil {
			return apperrors.ErrTempPhoneExists
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		row, err = tx.TempPhones.Reclaim(ctx, input.UserID, input.PhNo, input.Otp)
		return err
	})
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to create temporary phone")
	}
	return row, nil
}

func (s *service) FindByUserID(ctx context.Context, userID int64) (*models.TempPhone, error) {
	row, err := s.store.TempPhones.GetByUserID(ctx, userID)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to get temporary phone")
	}
	return row, nil
}

func (s *service) FindByPhoneNumber(ctx context.Context, phNo string) (*models.TempPhone, error) {
	row, err := s.store.TempPhones.GetByPhoneNumber(ctx, phNo)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to get temporary phone")
	}
	return row, nil
}

func (s *service) FindByUserIDAndPhone(ctx context.Context, userID int64, phNo string) (*models.TempPhone, error) {
	row, err := s.store.TempPhones.GetByUserIDAndPhone(ctx, userID, phNo)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to get temporary phone")
	}
	return row, nil
}

func (s *service) FindAll(ctx context.Context) ([]models.TempPhone, error) {
	rows, err := s.store.TempPhones.List(ctx)
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to list temporary phones")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, userID int64, input *models.UpdateTempPhoneInput) (*models.TempPhone, error) {
	var row *models.TempPhone
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		if row, err = tx.TempPhones.GetByUserID(ctx, userID); err != nil {
			return err
		}

		fields := make(map[string]interface{})
		if input.PhNo != nil {
			fields["ph_no"] = *input.PhNo
			row.PhNo = *input.PhNo
		}
		if input.Otp != nil {
			fields["otp"] = *input.Otp
			row.Otp = *input.Otp
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.TempPhones.Update(ctx, row, fields)
	})
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to update temporary phone")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, userID int64) error {
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		row, err := tx.TempPhones.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		return tx.TempPhones.Delete(ctx, row)
	})
	return services.MapStoreError(err, apperrors.ErrTempPhoneNotFound, "failed to delete temporary phone")
}

func (s *service) VerifyOTP(ctx context.Context, userID int64, phNo, otp string) (*models.TempPhone, error) {
	row, err := s.FindByUserIDAndPhone(ctx, userID, phNo)
	if err != nil {
		return nil, err
	}
	if row.Otp != otp {
		return nil, apperrors.ErrInvalidOTP
	}
	return row, nil
}
