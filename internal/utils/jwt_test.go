package utils

import (
	"testing"
	"time"

	apperrors "otpauth/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSigner_SignVerify(t *testing.T) {
	signer := NewJWTSigner("test-secret", time.Hour)

	token, err := signer.Sign(42, "ada@example.com")
	require.NoError(t, err)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTSigner_TokensAreUnique(t *testing.T) {
	signer := NewJWTSigner("test-secret", time.Hour)

	a, err := signer.Sign(1, "")
	require.NoError(t, err)
	b, err := signer.Sign(1, "")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTSigner_Expired(t *testing.T) {
	signer := NewJWTSigner("test-secret", -time.Minute)

	token, err := signer.Sign(1, "")
	require.NoError(t, err)

	_, err = signer.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTSigner_WrongSecret(t *testing.T) {
	token, err := NewJWTSigner("one", time.Hour).Sign(1, "")
	require.NoError(t, err)

	_, err = NewJWTSigner("two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = NewJWTSigner("one", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTSigner_MissingSecret(t *testing.T) {
	signer := NewJWTSigner("", time.Hour)

	_, err := signer.Sign(1, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))

	_, err = signer.Verify("anything")
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
