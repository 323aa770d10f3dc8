package otpdata

import (
	"context"
	"testing"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"
	"otpauth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOtpDataLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(t))

	row, err := svc.Create(ctx, &models.CreateOtpDataInput{UserID: 7, OtpValue: "123456"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateOtpDataInput{UserID: 7, OtpValue: "654321"})
	assert.ErrorIs(t, err, apperrors.ErrOtpDataExists)

	byUser, err := svc.FindByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, row.ID, byUser.ID)

	updated, err := svc.UpdateByUserID(ctx, 7, &models.UpdateOtpDataInput{OtpValue: "111111"})
	require.NoError(t, err)
	assert.Equal(t, "111111", updated.OtpValue)

	updated, err = svc.Update(ctx, row.ID, &models.UpdateOtpDataInput{OtpValue: "222222"})
	require.NoError(t, err)

	byID, err := svc.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "222222", byID.OtpValue)

	require.NoError(t, svc.DeleteByUserID(ctx, 7))
	_, err = svc.FindByID(ctx, row.ID)
	assert.ErrorIs(t, err, apperrors.ErrOtpDataNotFound)

	// The slot frees up once the old row is gone.
	_, err = svc.Create(ctx, &models.CreateOtpDataInput{UserID: 7, OtpValue: "333333"})
	require.NoError(t, err)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOtpDataMissing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(t))

	_, err := svc.FindByUserID(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrOtpDataNotFound)

	_, err = svc.Update(ctx, 1, &models.UpdateOtpDataInput{OtpValue: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrOtpDataNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 1), apperrors.ErrOtpDataNotFound)
}
