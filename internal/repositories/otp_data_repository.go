package repositories

import (
	"context"

	"otpauth/internal/models"

	"gorm.io/gorm"
)

// OtpDataRepository stores the pending login OTP of each user.
type OtpDataRepository interface {
	Create(ctx context.Context, otp *models.OtpData) error
	GetByID(ctx context.Context, id int64) (*models.OtpData, error)
	GetByUserID(ctx context.Context, userID int64) (*models.OtpData, error)
	List(ctx context.Context) ([]models.OtpData, error)
	Update(ctx context.Context, otp *models.OtpData, fields map[string]interface{}) error
	Delete(ctx context.Context, otp *models.OtpData) error
}

type otpDataRepository struct {
	db *gorm.DB
}

func NewOtpDataRepository(db *gorm.DB) OtpDataRepository {
	return &otpDataRepository{db: db}
}

func (r *otpDataRepository) Create(ctx context.Context, otp *models.OtpData) error {
	return translateError("create otp data", r.db.WithContext(ctx).Create(otp).Error)
}

func (r *otpDataRepository) GetByID(ctx context.Context, id int64) (*models.OtpData, error) {
	var otp models.OtpData
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&otp).Error; err != nil {
		return nil, translateError("get otp data", err)
	}
	return &otp, nil
}

func (r *otpDataRepository) GetByUserID(ctx context.Context, userID int64) (*models.OtpData, error) {
	var otp models.OtpData
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&otp).Error; err != nil {
		return nil, translateError("get otp data by user", err)
	}
	return &otp, nil
}

func (r *otpDataRepository) List(ctx context.Context) ([]models.OtpData, error) {
	var rows []models.OtpData
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list otp data", err)
	}
	return rows, nil
}

func (r *otpDataRepository) Update(ctx context.Context, otp *models.OtpData, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(otp).Updates(fields)
	if result.Error != nil {
		return translateError("update otp data", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *otpDataRepository) Delete(ctx context.Context, otp *models.OtpData) error {
	result := r.db.WithContext(ctx).Delete(otp)
	if result.Error != nil {
		return translateError("delete otp data", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
