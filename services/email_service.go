package services

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EmailService delivers transactional mail over SMTP. When no host is
// configured the service logs the message instead of sending, which keeps
// local development working without a mail provider.
type EmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) *EmailService {
	return &EmailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// SendOTP emails a verification code to the given address.
func (es *EmailService) SendOTP(to, name, code string, ttl time.Duration) error {
	subject := "FileHive Email Verification Code"
	body := otpEmailBody(name, code, ttl)
	return es.send(to, subject, body)
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	if es.host == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, skipping email delivery")
		return nil
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", es.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", es.host, es.port)
	var auth smtp.Auth
	if es.username != "" {
		auth = smtp.PlainAuth("", es.username, es.password, es.host)
	}

	if err := smtp.SendMail(addr, auth, es.from, []string{to}, []byte(msg.String())); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func otpEmailBody(name, code string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	return fmt.Sprintf(`<div style="font-family: 'Segoe UI', Arial, sans-serif; background-color: #f9fafb; padding: 40px 0;">
  <div style="max-width: 480px; margin: auto; background: white; border-radius: 10px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #4f46e5, #7c3aed); padding: 24px; text-align: center;">
      <h1 style="color: #ffffff; margin: 0; font-size: 24px;">FileHive</h1>
      <p style="color: #e0e7ff; margin: 4px 0 0;">Cloud Storage Authentication</p>
    </div>
    <div style="padding: 30px; text-align: left;">
      <h2 style="color: #111827; font-size: 18px; margin-bottom: 10px;">Hi %s</h2>
      <p style="color: #374151; font-size: 15px; line-height: 1.6;">
        Use the following one-time password to verify your email address for <b>FileHive</b>.
      </p>
      <div style="text-align: center; margin: 30px 0;">
        <div style="display: inline-block; background: #4f46e5; color: white; padding: 12px 30px; border-radius: 8px; font-size: 24px; font-weight: 600; letter-spacing: 4px;">%s</div>
      </div>
      <p style="color: #6b7280; font-size: 14px;">
        This code is valid for <b>%d minutes</b>.<br>
        If you did not request this, you can safely ignore this email.
      </p>
    </div>
    <div style="background: #f3f4f6; padding: 16px; text-align: center; font-size: 13px; color: #6b7280;">
      <p style="margin: 0;">© %d FileHive – Cloud Storage</p>
    </div>
  </div>
</div>`, name, code, minutes, time.Now().Year())
}
