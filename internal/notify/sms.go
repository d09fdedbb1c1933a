package notify

import (
	"context"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"intern-watch/internal/config"
	"intern-watch/internal/observability"
)

// smsBodyLimit keeps the message inside Twilio's segment budget.
const smsBodyLimit = 1500

// SMSSender delivers the digest over Twilio, one message per recipient.
// Missing credentials or an empty recipient list turn Send into a logged
// no-op.
type SMSSender struct {
	cfg    config.SMSConfig
	client *twilio.RestClient
	logger *observability.Logger
}

func NewSMSSender(cfg config.SMSConfig, logger *observability.Logger) *SMSSender {
	s := &SMSSender{cfg: cfg, logger: logger}
	if cfg.AccountSID != "" && cfg.AuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
	}
	return s
}

func (s *SMSSender) Send(ctx context.Context, subject, body string) {
	if s.client == nil || s.cfg.From == "" || len(s.cfg.To) == 0 {
		s.logger.Info("sms not configured or no recipients, skipping")
		return
	}

	if len(body) > smsBodyLimit {
		body = body[:smsBodyLimit]
	}

	for _, to := range s.cfg.To {
		params := &twilioapi.CreateMessageParams{}
		params.SetFrom(s.cfg.From)
		params.SetTo(to)
		params.SetBody(body)

		if _, err := s.client.Api.CreateMessage(params); err != nil {
			s.logger.Error("sms send failed", "to", to, "error", err.Error())
			continue
		}
		s.logger.Info("sms sent", "to", to)
	}
}
