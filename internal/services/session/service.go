// Package session owns the lifecycle of user sessions and the cap on how
// many a user may hold at once.
package session

import (
	"context"
	"errors"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/metrics"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/services"

	"go.uber.org/zap"
)

// DefaultMaxActive is the number of sessions a user keeps after a login.
const DefaultMaxActive = 3

type Service interface {
	Create(ctx context.Context, userID int64, token, fcmToken string) (*models.UserSession, error)
	FindByID(ctx context.Context, id int64) (*models.UserSession, error)
	FindByUserID(ctx context.Context, userID int64) (*models.UserSession, error)
	FindAll(ctx context.Context) ([]models.UserSession, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]models.UserSession, error)

	// FindByTokenAndUserID returns nil, nil when no session matches.
	FindByTokenAndUserID(ctx context.Context, token string, userID int64) (*models.UserSession, error)

	Update(ctx context.Context, id int64, input *models.UpdateSessionInput) (*models.UserSession, error)
	UpdateByUserID(ctx context.Context, userID int64, input *models.UpdateSessionInput) (int64, error)
	UpdateFcm(ctx context.Context, token string, userID int64, fcmToken string) (*models.UserSession, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	DeleteByTokenAndUserID(ctx context.Context, token string, userID int64) error

	// Open evicts the user's oldest sessions so that, together with the new
	// one, no more than the cap remain, then stores the new session. It runs
	// inside the caller's transaction.
	Open(ctx context.Context, tx *repositories.Store, userID int64, token, fcmToken string) (*models.UserSession, error)
}

type service struct {
	store     *repositories.Store
	maxActive int
	metrics   metrics.Recorder
	logger    *zap.Logger
}

func NewService(store *repositories.Store, maxActive int, recorder metrics.Recorder, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &service{
		store:     store,
		maxActive: maxActive,
		metrics:   recorder,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, userID int64, token, fcmToken string) (*models.UserSession, error) {
	session := &models.UserSession{UserID: userID, Token: token, FcmToken: fcmToken}
	if err := s.store.Sessions.Create(ctx, session); err != nil {
		return nil, services.MapStoreError(err, nil, "failed to create session")
	}
	return session, nil
}

func (s *service) FindByID(ctx context.Context, id int64) (*models.UserSession, error) {
	session, err := s.store.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrSessionNotFound, "failed to get session")
	}
	return session, nil
}

func (s *service) FindByUserID(ctx context.Context, userID int64) (*models.UserSession, error) {
	session, err := s.store.Sessions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrSessionNotFound, "failed to get session")
	}
	return session, nil
}

func (s *service) FindAll(ctx context.Context) ([]models.UserSession, error) {
	sessions, err := s.store.Sessions.List(ctx)
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to list sessions")
	}
	return sessions, nil
}

func (s *service) FindAllByUserID(ctx context.Context, userID int64) ([]models.UserSession, error) {
	sessions, err := s.store.Sessions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to list sessions")
	}
	return sessions, nil
}

func (s *service) FindByTokenAndUserID(ctx context.Context, token string, userID int64) (*models.UserSession, error) {
	return findByToken(ctx, s.store, token, userID)
}

func findByToken(ctx context.Context, store *repositories.Store, token string, userID int64) (*models.UserSession, error) {
	session, err := store.Sessions.GetByTokenAndUserID(ctx, token, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, services.MapStoreError(err, nil, "failed to get session")
	}
	return session, nil
}

func (s *service) Update(ctx context.Context, id int64, input *models.UpdateSessionInput) (*models.UserSession, error) {
	var session *models.UserSession
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		session, err = tx.Sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}

		fields := updateFields(input)
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Sessions.Update(ctx, session, fields); err != nil {
			return err
		}
		applyUpdate(session, input)
		return nil
	})
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrSessionNotFound, "failed to update session")
	}
	return session, nil
}

func (s *service) UpdateByUserID(ctx context.Context, userID int64, input *models.UpdateSessionInput) (int64, error) {
	fields := updateFields(input)
	if len(fields) == 0 {
		return 0, nil
	}

	var updated int64
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		updated, err = tx.Sessions.UpdateByUserID(ctx, userID, fields)
		return err
	})
	if err != nil {
		return 0, services.MapStoreError(err, nil, "failed to update sessions")
	}
	return updated, nil
}

func (s *service) UpdateFcm(ctx context.Context, token string, userID int64, fcmToken string) (*models.UserSession, error) {
	var session *models.UserSession
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		session, err = findByToken(ctx, tx, token, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return apperrors.ErrSessionNotFound
		}

		if err := tx.Sessions.Update(ctx, session, map[string]interface{}{"fcm_token": fcmToken}); err != nil {
			return err
		}
		session.FcmToken = fcmToken
		return nil
	})
	if err != nil {
		return nil, services.MapStoreError(err, apperrors.ErrSessionNotFound, "failed to update FCM token")
	}
	return session, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		session, err := tx.Sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return tx.Sessions.Delete(ctx, session)
	})
	return services.MapStoreError(err, apperrors.ErrSessionNotFound, "failed to delete session")
}

func (s *service) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	var deleted int64
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		var err error
		deleted, err = tx.Sessions.DeleteByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return 0, services.MapStoreError(err, nil, "failed to delete sessions")
	}
	return deleted, nil
}

func (s *service) DeleteByTokenAndUserID(ctx context.Context, token string, userID int64) error {
	err := s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		session, err := findByToken(ctx, tx, token, userID)
		if err != nil {
			return err
		}
		if session == nil {
			return apperrors.ErrSessionNotFound
		}
		return tx.Sessions.Delete(ctx, session)
	})
	return services.MapStoreError(err, apperrors.ErrSessionNotFound, "failed to delete session")
}

func (s *service) Open(ctx context.Context, tx *repositories.Store, userID int64, token, fcmToken string) (*models.UserSession, error) {
	existing, err := tx.Sessions.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	evicted := 0
	for len(existing)-evicted >= s.maxActive {
		if err := tx.Sessions.Delete(ctx, &existing[evicted]); err != nil {
			return nil, err
		}
		evicted++
	}
	if evicted > 0 {
		s.logger.Info("evicted oldest sessions",
			zap.Int64("user_id", userID),
			zap.Int("evicted", evicted),
		)
	}
	s.metrics.SessionsEvicted(evicted)

	session := &models.UserSession{UserID: userID, Token: token, FcmToken: fcmToken}
	if err := tx.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func updateFields(input *models.UpdateSessionInput) map[string]interface{} {
	fields := make(map[string]interface{})
	if input == nil {
		return fields
	}
	if input.FcmToken != nil {
		fields["fcm_token"] = *input.FcmToken
	}
	if input.Token != nil {
		fields["token"] = *input.Token
	}
	return fields
}

func applyUpdate(session *models.UserSession, input *models.UpdateSessionInput) {
	if input.FcmToken != nil {
		session.FcmToken = *input.FcmToken
	}
	if input.Token != nil {
		session.Token = *input.Token
	}
}
