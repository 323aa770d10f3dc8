// Package otp produces one-time passcodes and referral codes.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ReferralLength   = 8
)

// Generator is swapped for a fixed one in tests.
type Generator interface {
	// NumericCode returns length decimal digits, each uniform over 0-9.
	NumericCode(length int) (string, error)
	// ReferralCode returns ReferralLength characters from A-Z and 0-9.
	ReferralCode() (string, error)
}

type generator struct{}

func NewGenerator() Generator {
	return generator{}
}

func (generator) NumericCode(length int) (string, error) {
	return randomString("0123456789", length)
}

func (generator) ReferralCode() (string, error) {
	return randomString(referralAlphabet, ReferralLength)
}

func randomString(alphabet string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length %d", length)
	}

	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
