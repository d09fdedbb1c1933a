package notify

import (
	"context"

	"gopkg.in/gomail.v2"

	"intern-watch/internal/config"
	"intern-watch/internal/observability"
)

// EmailSender delivers the digest over SMTP, one message per recipient.
// An unset host or empty recipient list turns Send into a logged no-op.
type EmailSender struct {
	cfg    config.EmailConfig
	logger *observability.Logger
}

func NewEmailSender(cfg config.EmailConfig, logger *observability.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, logger: logger}
}

func (s *EmailSender) Send(ctx context.Context, subject, body string) {
	if s.cfg.Host == "" || len(s.cfg.To) == 0 {
		s.logger.Info("email not configured or no recipients, skipping")
		return
	}

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	for _, to := range s.cfg.To {
		m := gomail.NewMessage()
		m.SetHeader("From", s.cfg.From)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)

		if err := dialer.DialAndSend(m); err != nil {
			s.logger.Error("email send failed", "to", to, "error", err.Error())
			continue
		}
		s.logger.Info("email sent", "to", to)
	}
}
