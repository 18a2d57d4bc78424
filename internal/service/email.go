package service

import (
	"fmt"
	"net/smtp"
	"net/url"

	"go.uber.org/zap"

	"github.com/recipemagic/backend/config"
)

// EmailService sends sign-in emails over SMTP. When SMTP is not
// configured the email is logged instead of sent, which keeps local
// development working without a mail account.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	frontendURL  string
	logger       *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
		fromName:     cfg.EmailFromName,
		frontendURL:  cfg.FrontendURL,
		logger:       logger,
	}
}

// SendMagicLinkEmail emails a one-time sign-in link to the address.
func (s *EmailService) SendMagicLinkEmail(to, token string) error {
	link := fmt.Sprintf("%s/auth/verify?token=%s", s.frontendURL, url.QueryEscape(token))
	subject := "Your sign-in link - Recipe Magic"
	body := s.buildMagicLinkEmailBody(link)
	return s.SendEmail(to, subject, body)
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		s.logger.Info("SMTP not configured, logging email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body),
		)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *EmailService) buildMagicLinkEmailBody(link string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Sign in to Recipe Magic</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #ec4899; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">🍓 Recipe Magic</h1>
		<p style="margin: 10px 0 0 0; font-size: 16px;">Turn your ingredients into recipes</p>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #ec4899; margin-top: 0;">Your sign-in link</h2>
		<p>Click the button below to sign in. No password needed.</p>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #ec4899; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px; display: inline-block;">
				Sign In
			</a>
		</div>

		<p style="color: #666; font-size: 14px;">If the button above doesn't work, copy and paste this link into your browser:</p>
		<p style="background-color: #eee; padding: 10px; border-radius: 5px; word-break: break-all; font-size: 12px;">%s</p>

		<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
			<p style="color: #666; font-size: 12px; margin: 0;">
				This link expires in 15 minutes and works once. If you didn't request it, you can safely ignore this email.
			</p>
		</div>
	</div>
</body>
</html>
	`, link, link)
}
