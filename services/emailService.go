package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendPasswordResetEmail sends a password reset email with a 6-digit code
func (s *EmailService) SendPasswordResetEmail(toEmail string, code string, firstName string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #2563eb;
        }
        .header h1 {
            color: #2563eb;
            margin: 0;
        }
        .code-container {
            background-color: #f5f5f5;
            border: 2px solid #2563eb;
            border-radius: 8px;
            padding: 20px;
            text-align: center;
            margin: 20px 0;
        }
        .code {
            font-size: 32px;
            font-weight: bold;
            letter-spacing: 8px;
            color: #2563eb;
            font-family: monospace;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Prayer Army</h1>
    </div>

    <div class="content">
        <h2>Password Reset Request</h2>

        <p>Hi %s,</p>

        <p>We received a request to reset your Prayer Army admin password. Use the verification code below to complete the reset:</p>

        <div class="code-container">
            <div class="code">%s</div>
        </div>

        <p><strong>This code will expire in 15 minutes.</strong></p>

        <p>If you did not request a password reset, you can safely ignore this email.</p>
    </div>

    <div class="footer">
        <p>Jesus Redeemer Prayer Army</p>
    </div>
</body>
</html>
`, firstName, code)

	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset your Prayer Army admin password.

Your verification code: %s

This code will expire in 15 minutes. If you did not request a password reset, you can safely ignore this email.

Blessings,
The Prayer Army Team
`, firstName, code)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{toEmail},
		Subject: "Reset Your Prayer Army Admin Password",
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send password reset email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent password reset email to %s. Email ID: %s", toEmail, sent.Id)
	return nil
}

// SendNewRequestAlert notifies admins that a new prayer request was
// submitted through the public form.
func (s *EmailService) SendNewRequestAlert(toEmails []string, requestNumber string, requesterName string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	if len(toEmails) == 0 {
		return fmt.Errorf("no recipient addresses")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #2563eb;
        }
        .header h1 {
            color: #2563eb;
            margin: 0;
        }
        .request-number {
            display: inline-block;
            background-color: #dbeafe;
            color: #1e40af;
            border-radius: 16px;
            padding: 4px 12px;
            font-weight: bold;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Prayer Army</h1>
    </div>

    <div class="content">
        <h2>New Prayer Request</h2>

        <p><span class="request-number">%s</span></p>

        <p>%s has submitted a new prayer request. Sign in to the admin dashboard to review it and assign the prayer team.</p>
    </div>
</body>
</html>
`, requestNumber, requesterName)

	textBody := fmt.Sprintf(`New prayer request %s

%s has submitted a new prayer request. Sign in to the admin dashboard to review it and assign the prayer team.
`, requestNumber, requesterName)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      toEmails,
		Subject: fmt.Sprintf("New prayer request %s", requestNumber),
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send new request alert for %s: %v", requestNumber, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent new request alert for %s. Email ID: %s", requestNumber, sent.Id)
	return nil
}
