package repositories

import (
	"context"

	"otpauth/internal/models"

	"gorm.io/gorm"
)

// SessionRepository stores active logins.
type SessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	GetByID(ctx context.Context, id int64) (*models.UserSession, error)
	GetByUserID(ctx context.Context, userID int64) (*models.UserSession, error)
	GetByTokenAndUserID(ctx context.Context, token string, userID int64) (*models.UserSession, error)
	List(ctx context.Context) ([]models.UserSession, error)

	// ListByUserID orders sessions oldest-created first.
	ListByUserID(ctx context.Context, userID int64) ([]models.UserSession, error)

	Update(ctx context.Context, session *models.UserSession, fields map[string]interface{}) error
	UpdateByUserID(ctx context.Context, userID int64, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, session *models.UserSession) error

	// DeleteByUserID soft-deletes every session of the user and returns how many.
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.UserSession) error {
	return translateError("create session", r.db.WithContext(ctx).Create(session).Error)
}

func (r *sessionRepository) GetByID(ctx context.Context, id int64) (*models.UserSession, error) {
	var session models.UserSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, translateError("get session", err)
	}
	return &session, nil
}

func (r *sessionRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserSession, error) {
	var session models.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		First(&session).Error
	if err != nil {
		return nil, translateError("get session by user", err)
	}
	return &session, nil
}

func (r *sessionRepository) GetByTokenAndUserID(ctx context.Context, token string, userID int64) (*models.UserSession, error) {
	var session models.UserSession
	err := r.db.WithContext(ctx).
		Where("token = ? AND user_id = ?", token, userID).
		First(&session).Error
	if err != nil {
		return nil, translateError("get session by token", err)
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]models.UserSession, error) {
	var sessions []models.UserSession
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&sessions).Error; err != nil {
		return nil, translateError("list sessions", err)
	}
	return sessions, nil
}

func (r *sessionRepository) ListByUserID(ctx context.Context, userID int64) ([]models.UserSession, error) {
	var sessions []models.UserSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, translateError("list sessions by user", err)
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.UserSession, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(session).Updates(fields)
	if result.Error != nil {
		return translateError("update session", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepository) UpdateByUserID(ctx context.Context, userID int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.UserSession{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		return 0, translateError("update sessions by user", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *sessionRepository) Delete(ctx context.Context, session *models.UserSession) error {
	result := r.db.WithContext(ctx).Delete(session)
	if result.Error != nil {
		return translateError("delete session", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserSession{})
	if result.Error != nil {
		return 0, translateError("delete sessions by user", result.Error)
	}
	return result.RowsAffected, nil
}
