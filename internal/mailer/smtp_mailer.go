package mailer

import (
	"context"
	"fmt"

	"github.com/livetracker/account-service/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPMailer implements the Mailer interface over SMTP using gomail.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger.Named("smtp_mailer"),
	}
}

// SendVerificationEmail sends the verification message in a single attempt.
// gomail has no context support, so cancellation is only observed before the
// dial starts.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, toEmail, toName, verificationURL string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("verification email not sent: %w", err)
	}

	m.logger.Info("Sending verification email",
		zap.String("to", toEmail),
		zap.String("smtp_host", m.cfg.Host),
		zap.Int("smtp_port", m.cfg.Port),
	)

	htmlBody, err := renderVerificationHTML(toName, verificationURL)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	if m.cfg.SenderName != "" {
		msg.SetHeader("From", msg.FormatAddress(m.cfg.From, m.cfg.SenderName))
	} else {
		msg.SetHeader("From", m.cfg.From)
	}
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/plain", renderVerificationText(toName, verificationURL))
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send verification email",
			zap.Error(err),
			zap.String("to", toEmail),
		)
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	m.logger.Info("Verification email sent", zap.String("to", toEmail))
	return nil
}
