package session

import (
	"context"
	"fmt"
	"testing"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/metrics"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (Service, *repositories.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	return NewService(store, DefaultMaxActive, metrics.NoopRecorder{}, zap.NewNop()), store
}

func openSession(t *testing.T, svc Service, store *repositories.Store, userID int64, token string) *models.UserSession {
	t.Helper()
	var created *models.UserSession
	err := store.ExecuteInTransaction(context.Background(), func(tx *repositories.Store) error {
		var err error
		created, err = svc.Open(context.Background(), tx, userID, token, "")
		return err
	})
	require.NoError(t, err)
	return created
}

func TestOpen_KeepsAtMostMaxActive(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	var opened []*models.UserSession
	for i := 0; i < 4; i++ {
		opened = append(opened, openSession(t, svc, store, 1, fmt.Sprintf("token-%d", i)))
	}

	remaining, err := svc.FindAllByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 3)

	ids := []int64{remaining[0].ID, remaining[1].ID, remaining[2].ID}
	assert.NotContains(t, ids, opened[0].ID)
	assert.Equal(t, []int64{opened[1].ID, opened[2].ID, opened[3].ID}, ids)
}

func TestOpen_TrimsBacklogAboveCap(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	// Sessions created directly bypass the cap.
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, 1, fmt.Sprintf("legacy-%d", i), "")
		require.NoError(t, err)
	}

	latest := openSession(t, svc, store, 1, "fresh")

	remaining, err := svc.FindAllByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, remaining, 3)
	assert.Equal(t, "legacy-3", remaining[0].Token)
	assert.Equal(t, latest.ID, remaining[2].ID)
}

func TestOpen_DoesNotTouchOtherUsers(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	for i := 0; i < 3; i++ {
		openSession(t, svc, store, 1, fmt.Sprintf("u1-%d", i))
	}
	openSession(t, svc, store, 2, "u2")

	sessions, err := svc.FindAllByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestFindByTokenAndUserID_AbsentIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t)

	found, err := svc.FindByTokenAndUserID(context.Background(), "missing", 1)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestFinders_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.FindByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	_, err = svc.FindByUserID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateFcm(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, 1, "tok", "")
	require.NoError(t, err)

	t.Run("updates the matching session", func(t *testing.T) {
		updated, err := svc.UpdateFcm(ctx, "tok", 1, "fcm-1")
		require.NoError(t, err)
		assert.Equal(t, "fcm-1", updated.FcmToken)

		stored, err := svc.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "fcm-1", stored.FcmToken)
	})

	t.Run("wrong user is not found and changes nothing", func(t *testing.T) {
		_, err := svc.UpdateFcm(ctx, "tok", 2, "fcm-2")
		assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

		stored, err := svc.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "fcm-1", stored.FcmToken)
	})
}

func TestDeleteByTokenAndUserID_SecondCallFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, 1, "tok", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByTokenAndUserID(ctx, "tok", 1))
	assert.ErrorIs(t, svc.DeleteByTokenAndUserID(ctx, "tok", 1), apperrors.ErrSessionNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, err := svc.Create(ctx, 1, "a", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "b", "")
	require.NoError(t, err)

	fcm := "shared"
	count, err := svc.UpdateByUserID(ctx, 1, &models.UpdateSessionInput{FcmToken: &fcm})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	token := "a2"
	updated, err := svc.Update(ctx, a.ID, &models.UpdateSessionInput{Token: &token})
	require.NoError(t, err)
	assert.Equal(t, "a2", updated.Token)
	assert.Equal(t, "shared", updated.FcmToken)

	_, err = svc.Update(ctx, 999, &models.UpdateSessionInput{Token: &token})
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), apperrors.ErrSessionNotFound)

	deleted, err := svc.DeleteByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
