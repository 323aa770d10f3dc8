package repositories

import (
	"context"

	"otpauth/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateError("create user", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError("get user", err)
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phoneNumber, countryCode string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND country_code = ?", phoneNumber, countryCode).
		First(&user).Error
	if err != nil {
		return nil, translateError("get user by phone", err)
	}
	return &user, nil
}

func (r *userRepository) GetByReferalCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("referal_code = ?", code).First(&user).Error; err != nil {
		return nil, translateError("get user by referal code", err)
	}
	return &user, nil
}

func (r *userRepository) ReferalCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&models.User{}).
		Where("referal_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, translateError("count referal code", err)
	}
	return count > 0, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, translateError("list users", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(user).Updates(fields)
	if result.Error != nil {
		return translateError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Delete(user)
	if result.Error != nil {
		return translateError("delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
