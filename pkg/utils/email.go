package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "Dramoir"
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #e50914; margin: 0;">Dramoir</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2025 Dramoir. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

// SendEmail delivers one message over SMTP. Configuration comes from the
// EMAIL_FROM, EMAIL_PASSWORD, SMTP_HOST and SMTP_PORT environment
// variables.
func SendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"
	headers["X-Mailer"] = "Dramoir-Mailer"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	// Authentication
	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	// Send email
	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

// VerificationCodeEmail builds the subject and body for an email
// verification code message.
func VerificationCodeEmail(code string) (string, string) {
	subject := "Email Verification Code - Dramoir"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Verify Your Email</h1>
					<p>Hello,</p>
					<p>Your verification code is:</p>
					<p style="text-align: center; font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</p>
					<p>This code will expire in 15 minutes.</p>
					<p>Best regards,<br>The Dramoir Team</p>
				</div>`+emailFooter, code)
	return subject, body
}

// PasswordResetCodeEmail builds the subject and body for a password reset
// code message.
func PasswordResetCodeEmail(code string) (string, string) {
	subject := "Password Reset Code - Dramoir"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Password Reset</h1>
					<p>Hello,</p>
					<p>Your password reset code is:</p>
					<p style="text-align: center; font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</p>
					<p>This code will expire in 15 minutes. If you did not request a reset, you can ignore this email.</p>
					<p>Best regards,<br>The Dramoir Team</p>
				</div>`+emailFooter, code)
	return subject, body
}
