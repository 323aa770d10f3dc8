// Package notification delivers OTPs to phones.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// OTPMessage is one passcode to deliver.
type OTPMessage struct {
	CountryCode string
	PhoneNumber string
	Code        string
	// HashKey lets Android SMS Retriever match the message to the app.
	HashKey string
}

// To returns the number in E.164 form.
func (m OTPMessage) To() string {
	return m.CountryCode + m.PhoneNumber
}

// Body renders the SMS text.
func (m OTPMessage) Body() string {
	body := fmt.Sprintf("Your verification code is %s.", m.Code)
	if m.HashKey != "" {
		body += "\n" + m.HashKey
	}
	return body
}

// Sender delivers OTPs. Failures are reported but never undo the issuance.
type Sender interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

// Service is the log-only sender used when no SMS provider is configured.
type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) SendOTP(_ context.Context, msg OTPMessage) error {
	s.logger.Info("OTP delivery skipped, no SMS provider configured",
		zap.String("to", msg.To()),
	)
	return nil
}
