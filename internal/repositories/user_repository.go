package repositories

import (
	"context"

	"otpauth/internal/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a live user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByPhone retrieves the live user owning a phone number
	GetByPhone(ctx context.Context, phoneNumber, countryCode string) (*models.User, error)

	// GetByReferalCode retrieves the live user owning a referral code
	GetByReferalCode(ctx context.Context, code string) (*models.User, error)

	// ReferalCodeExists checks every row, tombstoned ones included
	ReferalCodeExists(ctx context.Context, code string) (bool, error)

	// List returns all live users
	List(ctx context.Context) ([]models.User, error)

	// Update writes the given columns for user; callers keep the struct in sync
	Update(ctx context.Context, user *models.User, fields map[string]interface{}) error

	// Delete soft-deletes the user
	Delete(ctx context.Context, user *models.User) error
}
