package tempphone

import (
	"context"
	"testing"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"
	"otpauth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempPhoneLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(t))

	_, err := svc.Create(ctx, &models.CreateTempPhoneInput{UserID: 3, PhNo: "8888888888", Otp: "123456"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.CreateTempPhoneInput{UserID: 3, PhNo: "7777777777", Otp: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrTempPhoneExists)

	byPhone, err := svc.FindByPhoneNumber(ctx, "8888888888")
	require.NoError(t, err)
	assert.Equal(t, int64(3), byPhone.UserID)

	otp := "654321"
	updated, err := svc.Update(ctx, 3, &models.UpdateTempPhoneInput{Otp: &otp})
	require.NoError(t, err)
	assert.Equal(t, "654321", updated.Otp)

	_, err = svc.VerifyOTP(ctx, 3, "8888888888", "123456")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	row, err := svc.VerifyOTP(ctx, 3, "8888888888", "654321")
	require.NoError(t, err)
	assert.Equal(t, "8888888888", row.PhNo)

	// Verification does not consume the row.
	_, err = svc.FindByUserIDAndPhone(ctx, 3, "8888888888")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 3))
	_, err = svc.FindByUserID(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrTempPhoneNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 3), apperrors.ErrTempPhoneNotFound)

	// A tombstoned row is taken over by the next create.
	row, err = svc.Create(ctx, &models.CreateTempPhoneInput{UserID: 3, PhNo: "7777777777", Otp: "111111"})
	require.NoError(t, err)
	assert.Equal(t, "7777777777", row.PhNo)

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "111111", all[0].Otp)
}

func TestVerifyOTP_WrongNumber(t *testing.T) {
	ctx := context.Background()
	svc := NewService(testutil.NewStore(t))

	_, err := svc.Create(ctx, &models.CreateTempPhoneInput{UserID: 3, PhNo: "8888888888", Otp: "123456"})
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, 3, "7777777777", "123456")
	assert.ErrorIs(t, err, apperrors.ErrTempPhoneNotFound)
}
