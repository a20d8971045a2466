package mailer

import "context"

// Mailer defines the interface for sending verification emails.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, toName, verificationURL string) error
}
