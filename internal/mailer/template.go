package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const verificationSubject = "Verify Your Email - Live Location Tracker"

var verificationHTML = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Verify Your Email - Live Location Tracker</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; text-align: center; }
        .content { padding: 30px 20px; background: #f9fafb; }
        .button { display: inline-block; padding: 12px 30px; background: #2563eb; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Live Location Tracker</h1>
        </div>
        <div class="content">
            <h2>Welcome, {{.Name}}!</h2>
            <p>Thank you for registering with Live Location Tracker. To complete your registration and start using our family safety features, please verify your email address.</p>
            <p style="text-align: center;">
                <a href="{{.VerificationURL}}" class="button">Verify Email Address</a>
            </p>
            <p>Or copy and paste this link into your browser:</p>
            <p style="word-break: break-all; background: #e5e7eb; padding: 10px; border-radius: 5px;">{{.VerificationURL}}</p>
            <p><strong>This link will expire in 24 hours.</strong></p>
            <p>If you didn't create an account with us, please ignore this email.</p>
        </div>
        <div class="footer">
            <p>&copy; 2025 Live Location Tracker. All rights reserved.</p>
            <p>Keep your family safe with real-time location tracking.</p>
        </div>
    </div>
</body>
</html>
`))

type verificationData struct {
	Name            string
	VerificationURL string
}

// renderVerificationHTML renders the HTML part of the verification message
func renderVerificationHTML(name, verificationURL string) (string, error) {
	var buf bytes.Buffer
	err := verificationHTML.Execute(&buf, verificationData{
		Name:            name,
		VerificationURL: verificationURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render verification email: %w", err)
	}
	return buf.String(), nil
}

// renderVerificationText renders the plain text part of the verification message
func renderVerificationText(name, verificationURL string) string {
	return fmt.Sprintf(`Hi %s,

Thank you for registering with Live Location Tracker!

Please verify your email by clicking this link:
%s

This link will expire in 24 hours.

If you didn't create an account, please ignore this email.

Best regards,
Live Location Tracker Team
`, name, verificationURL)
}
