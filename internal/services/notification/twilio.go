package notification

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// messageCreator is the slice of the Twilio client used here.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioSender struct {
	api    messageCreator
	from   string
	logger *zap.Logger
}

// NewTwilioSender sends SMS from the given number.
func NewTwilioSender(accountSID, authToken, from string, logger *zap.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{
		api:    client.Api,
		from:   from,
		logger: logger,
	}
}

func (t *TwilioSender) SendOTP(ctx context.Context, msg OTPMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(msg.To())
	params.SetBody(msg.Body())

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		t.logger.Error("failed to send OTP SMS", zap.String("to", msg.To()), zap.Error(err))
		return fmt.Errorf("send otp sms: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	t.logger.Info("OTP SMS sent", zap.String("to", msg.To()), zap.String("sid", sid))
	return nil
}
