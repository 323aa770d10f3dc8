package repositories

import (
	"context"

	"otpauth/internal/models"

	"gorm.io/gorm"
)

// TempPhoneRepository stores pending phone number changes.
type TempPhoneRepository interface {
	Create(ctx context.Context, tp *models.TempPhone) error
	GetByUserID(ctx context.Context, userID int64) (*models.TempPhone, error)
	GetByUserIDAndPhone(ctx context.Context, userID int64, phNo string) (*models.TempPhone, error)
	GetByPhoneNumber(ctx context.Context, phNo string) (*models.TempPhone, error)
	List(ctx context.Context) ([]models.TempPhone, error)
	Update(ctx context.Context, tp *models.TempPhone, fields map[string]interface{}) error
	Delete(ctx context.Context, tp *models.TempPhone) error

	// Reclaim overwrites the user's row whether or not it is tombstoned,
	// bringing it back to life.
	Reclaim(ctx context.Context, userID int64, phNo, otp string) (*models.TempPhone, error)
}

type tempPhoneRepository struct {
	db *gorm.DB
}

func NewTempPhoneRepository(db *gorm.DB) TempPhoneRepository {
	return &tempPhoneRepository{db: db}
}

func (r *tempPhoneRepository) Create(ctx context.Context, tp *models.TempPhone) error {
	return translateError("create temp phone", r.db.WithContext(ctx).Create(tp).Error)
}

func (r *tempPhoneRepository) GetByUserID(ctx context.Context, userID int64) (*models.TempPhone, error) {
	var tp models.TempPhone
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&tp).Error; err != nil {
		return nil, translateError("get temp phone", err)
	}
	return &tp, nil
}

func (r *tempPhoneRepository) GetByUserIDAndPhone(ctx context.Context, userID int64, phNo string) (*models.TempPhone, error) {
	var tp models.TempPhone
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ph_no = ?", userID, phNo).
		First(&tp).Error
	if err != nil {
		return nil, translateError("get temp phone by phone", err)
	}
	return &tp, nil
}

func (r *tempPhoneRepository) GetByPhoneNumber(ctx context.Context, phNo string) (*models.TempPhone, error) {
	var tp models.TempPhone
	if err := r.db.WithContext(ctx).Where("ph_no = ?", phNo).First(&tp).Error; err != nil {
		return nil, translateError("get temp phone by number", err)
	}
	return &tp, nil
}

func (r *tempPhoneRepository) List(ctx context.Context) ([]models.TempPhone, error) {
	var rows []models.TempPhone
	if err := r.db.WithContext(ctx).Order("user_id ASC").Find(&rows).Error; err != nil {
		return nil, translateError("list temp phones", err)
	}
	return rows, nil
}

func (r *tempPhoneRepository) Update(ctx context.Context, tp *models.TempPhone, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(tp).Updates(fields)
	if result.Error != nil {
		return translateError("update temp phone", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tempPhoneRepository) Delete(ctx context.Context, tp *models.TempPhone) error {
	result := r.db.WithContext(ctx).Delete(tp)
	if result.Error != nil {
		return translateError("delete temp phone", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tempPhoneRepository) Reclaim(ctx context.Context, userID int64, phNo, otp string) (*models.TempPhone, error) {
	var tp models.TempPhone
	if err := r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).First(&tp).Error; err != nil {
		return nil, translateError("reclaim temp phone", err)
	}

	fields := map[string]interface{}{
		"ph_no":      phNo,
		"otp":        otp,
		"deleted_at": nil,
	}
	// Start a new statement; the lookup's clauses must not carry over.
	err := r.db.WithContext(ctx).Unscoped().
		Model(&models.TempPhone{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
	if err != nil {
		return nil, translateError("reclaim temp phone", err)
	}

	tp.PhNo = phNo
	tp.Otp = otp
	tp.DeletedAt = gorm.DeletedAt{}
	return &tp, nil
}
