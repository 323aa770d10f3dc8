package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatusCode(t *testing.T) {
	cases := map[Kind]int{
		KindInternal:     http.StatusInternalServerError,
		KindNotFound:     http.StatusNotFound,
		KindBadRequest:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.StatusCode(), kind.String())
	}
}

func TestDomainErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", ErrInvalidOTP)

	assert.ErrorIs(t, wrapped, ErrInvalidOTP)
	assert.NotErrorIs(t, wrapped, ErrUserNotFound)
	assert.Equal(t, KindBadRequest, KindOf(wrapped))

	de, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_OTP", de.Code)
}

func TestInternal(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Internal("failed to get user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error", err.Status())
	assert.Equal(t, "failed to get user: connection reset", err.Error())
	assert.Equal(t, KindInternal, KindOf(stderrors.New("plain")))
	assert.Equal(t, "fail", ErrUserNotFound.Status())
}
