package repositories_test

import (
	"context"
	"testing"
	"time"

	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(phone string) *models.User {
	return &models.User{CountryCode: "+1", PhoneNumber: phone, IsActive: true}
}

func TestUserRepository_PhoneUniqueAmongLiveRows(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	first := newUser("9999999999")
	require.NoError(t, store.Users.Create(ctx, first))

	err := store.Users.Create(ctx, newUser("9999999999"))
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.True(t, repositories.IsUniqueViolation(err))

	require.NoError(t, store.Users.Delete(ctx, first))
	_, err = store.Users.GetByPhone(ctx, "9999999999", "+1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// A tombstoned user frees the number.
	second := newUser("9999999999")
	require.NoError(t, store.Users.Create(ctx, second))
	found, err := store.Users.GetByPhone(ctx, "9999999999", "+1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

func TestUserRepository_ReferalCodeExistsSeesTombstones(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	code := "ABCD1234"
	u := newUser("9999999999")
	u.ReferalCode = &code
	require.NoError(t, store.Users.Create(ctx, u))
	require.NoError(t, store.Users.Delete(ctx, u))

	_, err := store.Users.GetByReferalCode(ctx, code)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	exists, err := store.Users.ReferalCodeExists(ctx, code)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_UpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	err := store.Users.Update(ctx, &models.User{ID: 42}, map[string]interface{}{"full_name": "Nobody"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestSessionRepository_ListByUserIDOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	for _, token := range []string{"a", "b", "c"} {
		require.NoError(t, store.Sessions.Create(ctx, &models.UserSession{UserID: 7, Token: token}))
		time.Sleep(2 * time.Millisecond)
	}
	require.NoError(t, store.Sessions.Create(ctx, &models.UserSession{UserID: 8, Token: "other"}))

	sessions, err := store.Sessions.ListByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "a", sessions[0].Token)
	assert.Equal(t, "c", sessions[2].Token)

	oldest, err := store.Sessions.GetByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "a", oldest.Token)

	deleted, err := store.Sessions.DeleteByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	_, err = store.Sessions.GetByTokenAndUserID(ctx, "a", 7)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOtpDataRepository_OneLiveRowPerUser(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	row := &models.OtpData{UserID: 1, OtpValue: "123456"}
	require.NoError(t, store.OtpData.Create(ctx, row))

	err := store.OtpData.Create(ctx, &models.OtpData{UserID: 1, OtpValue: "654321"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	require.NoError(t, store.OtpData.Delete(ctx, row))
	require.NoError(t, store.OtpData.Create(ctx, &models.OtpData{UserID: 1, OtpValue: "654321"}))
}

func TestTempPhoneRepository_Reclaim(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	row := &models.TempPhone{UserID: 5, PhNo: "8888888888", Otp: "111111"}
	require.NoError(t, store.TempPhones.Create(ctx, row))
	require.NoError(t, store.TempPhones.Delete(ctx, row))

	// The primary key still holds the tombstoned row.
	err := store.TempPhones.Create(ctx, &models.TempPhone{UserID: 5, PhNo: "7777777777", Otp: "222222"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	reclaimed, err := store.TempPhones.Reclaim(ctx, 5, "7777777777", "222222")
	require.NoError(t, err)
	assert.Equal(t, "7777777777", reclaimed.PhNo)

	found, err := store.TempPhones.GetByUserIDAndPhone(ctx, 5, "7777777777")
	require.NoError(t, err)
	assert.Equal(t, "222222", found.Otp)

	_, err = store.TempPhones.Reclaim(ctx, 6, "7777777777", "222222")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTempPhoneRepository_ReclaimLiveRow(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	require.NoError(t, store.TempPhones.Create(ctx, &models.TempPhone{UserID: 5, PhNo: "8888888888", Otp: "111111"}))

	err := store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		_, err := tx.TempPhones.Reclaim(ctx, 5, "7777777777", "222222")
		return err
	})
	require.NoError(t, err)

	rows, err := store.TempPhones.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7777777777", rows[0].PhNo)
	assert.Equal(t, "222222", rows[0].Otp)

	_, err = store.TempPhones.GetByUserIDAndPhone(ctx, 5, "8888888888")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestStore_ExecuteInTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)

	err := store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		require.NoError(t, tx.Users.Create(ctx, newUser("9999999999")))
		return tx.Users.Create(ctx, newUser("9999999999"))
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
