package user

import (
	"context"
	"testing"

	apperrors "otpauth/internal/errors"
	"otpauth/internal/models"
	"otpauth/internal/repositories"
	"otpauth/internal/repositories/cache"
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

func newService(t *testing.T, userCache cache.UserCache) (Service, *repositories.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	return NewService(store, nil, userCache, zap.NewNop()), store
}

func TestCreate_AssignsCodes(t *testing.T) {
	svc, _ := newService(t, nil)

	user, err := svc.Create(context.Background(), &models.CreateUserInput{
		CountryCode: "+1",
		PhoneNumber: "5551234567",
		FullName:    "Ada",
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.Len(t, user.RideOTP, models.RideOTPLength)
	require.True(t, user.HasReferalCode())
	assert.Len(t, *user.ReferalCode, 8)
}

func TestCreate_DuplicatePhone(t *testing.T) {
	svc, _ := newService(t, nil)
	in := &models.CreateUserInput{CountryCode: "+1", PhoneNumber: "5551234567"}

	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, apperrors.ErrPhoneInUse)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	userCache := new(MockCache)
	svc, _ := newService(t, userCache)

	created, err := svc.Create(ctx, &models.CreateUserInput{CountryCode: "+1", PhoneNumber: "5551234567"})
	require.NoError(t, err)

	userCache.On("InvalidateUser", mock.Anything, created.ID).Return(nil).Once()

	name := "Grace"
	inactive := false
	updated, err := svc.Update(ctx, created.ID, &models.UpdateUserInput{FullName: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FullName)
	assert.False(t, updated.IsActive)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", fetched.FullName)

	userCache.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	userCache := new(MockCache)
	userCache.On("InvalidateUser", mock.Anything, mock.Anything).Return(nil)
	svc, _ := newService(t, userCache)

	created, err := svc.Create(ctx, &models.CreateUserInput{CountryCode: "+1", PhoneNumber: "5551234567"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdate_Missing(t *testing.T) {
	svc, _ := newService(t, nil)
	name := "x"

	_, err := svc.Update(context.Background(), 42, &models.UpdateUserInput{FullName: &name})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
