package otp

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericCode(t *testing.T) {
	g := NewGenerator()
	digits := regexp.MustCompile(`^[0-9]+$`)

	for _, length := range []int{4, 6} {
		for i := 0; i < 50; i++ {
			code, err := g.NumericCode(length)
			require.NoError(t, err)
			assert.Len(t, code, length)
			assert.Regexp(t, digits, code)
		}
	}
}

func TestNumericCodeRejectsBadLength(t *testing.T) {
	_, err := NewGenerator().NumericCode(0)
	assert.Error(t, err)
}

func TestNumericCodeCoversAllDigits(t *testing.T) {
	g := NewGenerator()
	seen := make(map[rune]bool)
	for i := 0; i < 200 && len(seen) < 10; i++ {
		code, err := g.NumericCode(6)
		require.NoError(t, err)
		for _, r := range code {
			seen[r] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestReferralCode(t *testing.T) {
	g := NewGenerator()
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	codes := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := g.ReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		codes[code] = struct{}{}
	}
	assert.Greater(t, len(codes), 95)
}
