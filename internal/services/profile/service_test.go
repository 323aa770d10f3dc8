package profile

import (
	"context"
	"testing"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/metrics"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/services/notification"
	"otpauth/internal/services/otp"
	"otpauth/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockCache) CacheUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockCache) InvalidateUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendOTP(ctx context.Context, msg notification.OTPMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func setup(t *testing.T, userCache *MockCache) (Service, *repositories.Store, *models.User) {
	t.Helper()
	store := testutil.NewStore(t)

	user := &models.User{CountryCode: "+1", PhoneNumber: "9999999999", IsActive: true, IsVerified: true}
	require.NoError(t, store.Users.Create(context.Background(), user))

	sender := new(MockSender)
	sender.On("SendOTP", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store, otp.NewGenerator(), userCache, sender, metrics.NoopRecorder{}, zap.NewNop())
	return svc, store, user
}

func permissiveCache() *MockCache {
	c := new(MockCache)
	c.On("GetUser", mock.Anything, mock.Anything).Return(nil, nil)
	c.On("CacheUser", mock.Anything, mock.Anything).Return(nil)
	c.On("InvalidateUser", mock.Anything, mock.Anything).Return(nil)
	return c
}

func TestGetProfile_ReadThrough(t *testing.T) {
	ctx := context.Background()
	userCache := new(MockCache)
	svc, _, user := setup(t, userCache)

	userCache.On("GetUser", mock.Anything, user.ID).Return(nil, nil).Once()
	userCache.On("CacheUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool { return u.ID == user.ID })).Return(nil).Once()

	got, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "9999999999", got.PhoneNumber)

	cached := &models.User{ID: user.ID, PhoneNumber: "cached"}
	userCache.On("GetUser", mock.Anything, user.ID).Return(cached, nil).Once()

	got, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", got.PhoneNumber)

	userCache.AssertExpectations(t)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _, _ := setup(t, permissiveCache())

	_, err := svc.GetProfile(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestChangePhone_RoundTrip(t *testing.T) {
	ctx := context.Background()
	userCache := permissiveCache()
	svc, store, user := setup(t, userCache)

	for _, token := range []string{"a", "b", "c"} {
		require.NoError(t, store.Sessions.Create(ctx, &models.UserSession{UserID: user.ID, Token: token}))
	}

	code, err := svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "8888888888", CountryCode: "+44"})
	require.NoError(t, err)
	assert.Len(t, code, 6)

	verify := &models.VerifyPhoneInput{PhoneNumber: "8888888888", CountryCode: "+44", Otp: code}
	updated, err := svc.VerifyPhone(ctx, user.ID, verify)
	require.NoError(t, err)
	assert.Equal(t, "8888888888", updated.PhoneNumber)
	assert.Equal(t, "+44", updated.CountryCode)

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "8888888888", stored.PhoneNumber)
	assert.Equal(t, "+44", stored.CountryCode)

	sessions, err := store.Sessions.ListByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = store.TempPhones.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Replaying the same OTP finds nothing.
	_, err = svc.VerifyPhone(ctx, user.ID, verify)
	assert.ErrorIs(t, err, apperrors.ErrTempPhoneNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	userCache.AssertCalled(t, "InvalidateUser", mock.Anything, user.ID)
}

func TestChangePhone_RerequestSameNumberOverwritesOTP(t *testing.T) {
	ctx := context.Background()
	svc, store, user := setup(t, permissiveCache())

	in := &models.ChangePhoneInput{PhoneNumber: "8888888888", CountryCode: "+1"}
	_, err := svc.ChangePhone(ctx, user.ID, in)
	require.NoError(t, err)
	second, err := svc.ChangePhone(ctx, user.ID, in)
	require.NoError(t, err)

	rows, err := store.TempPhones.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second, rows[0].Otp)
}

func TestChangePhone_DifferentNumberReplacesStagedRow(t *testing.T) {
	ctx := context.Background()
	svc, store, user := setup(t, permissiveCache())

	_, err := svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "8888888888", CountryCode: "+1"})
	require.NoError(t, err)
	code, err := svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "7777777777", CountryCode: "+1"})
	require.NoError(t, err)

	staged, err := store.TempPhones.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "7777777777", staged.PhNo)
	assert.Equal(t, code, staged.Otp)

	_, err = svc.VerifyPhone(ctx, user.ID, &models.VerifyPhoneInput{PhoneNumber: "8888888888", CountryCode: "+1", Otp: code})
	assert.ErrorIs(t, err, apperrors.ErrTempPhoneNotFound)
}

func TestChangePhone_AfterCompletedChange(t *testing.T) {
	ctx := context.Background()
	svc, store, user := setup(t, permissiveCache())

	code, err := svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "8888888888", CountryCode: "+1"})
	require.NoError(t, err)
	_, err = svc.VerifyPhone(ctx, user.ID, &models.VerifyPhoneInput{PhoneNumber: "8888888888", CountryCode: "+1", Otp: code})
	require.NoError(t, err)

	// The tombstoned row still owns the primary key and is brought back.
	code, err = svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "7777777777", CountryCode: "+1"})
	require.NoError(t, err)

	staged, err := store.TempPhones.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "7777777777", staged.PhNo)

	_, err = svc.VerifyPhone(ctx, user.ID, &models.VerifyPhoneInput{PhoneNumber: "7777777777", CountryCode: "+1", Otp: code})
	require.NoError(t, err)
}

func TestVerifyPhone_Mismatch(t *testing.T) {
	ctx := context.Background()
	svc, store, user := setup(t, permissiveCache())
	require.NoError(t, store.Sessions.Create(ctx, &models.UserSession{UserID: user.ID, Token: "keep"}))

	code, err := svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "8888888888", CountryCode: "+1"})
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err = svc.VerifyPhone(ctx, user.ID, &models.VerifyPhoneInput{PhoneNumber: "8888888888", CountryCode: "+1", Otp: wrong})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	stored, err := store.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "9999999999", stored.PhoneNumber)

	sessions, err := store.Sessions.ListByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	_, err = store.TempPhones.GetByUserID(ctx, user.ID)
	assert.NoError(t, err)
}

func TestVerifyPhone_NumberTaken(t *testing.T) {
	ctx := context.Background()
	svc, store, user := setup(t, permissiveCache())

	other := &models.User{CountryCode: "+1", PhoneNumber: "8888888888", IsActive: true}
	require.NoError(t, store.Users.Create(ctx, other))

	code, err := svc.ChangePhone(ctx, user.ID, &models.ChangePhoneInput{PhoneNumber: "8888888888", CountryCode: "+1"})
	require.NoError(t, err)

	_, err = svc.VerifyPhone(ctx, user.ID, &models.VerifyPhoneInput{PhoneNumber: "8888888888", CountryCode: "+1", Otp: code})
	assert.ErrorIs(t, err, apperrors.ErrPhoneInUse)

	_, err = store.TempPhones.GetByUserID(ctx, user.ID)
	assert.NoError(t, err)
}
