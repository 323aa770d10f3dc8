package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Users      UserRepository
	OtpData    OtpDataRepository
	Sessions   SessionRepository
	TempPhones TempPhoneRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		OtpData:    NewOtpDataRepository(db),
		Sessions:   NewSessionRepository(db),
		TempPhones: NewTempPhoneRepository(db),
	}
}

// ExecuteInTransaction runs fn against a Store bound to one transaction.
// Any error from fn rolls the whole transaction back before it is returned.
// Called on a Store that is already inside a transaction, it opens a savepoint.
func (s *Store) ExecuteInTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
