package email

import (
	"bytes"
	"html/template"
	"path/filepath"
	"time"

	"github.com/quantumcloud/quantumcloud-backend/internal/config"
	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	frontendURL  string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:       resend.NewClient(cfg.Email.ResendAPIKey),
		from:         cfg.Email.FromAddress,
		fromName:     cfg.Email.FromName,
		frontendURL:  cfg.FrontendURL,
		templatesDir: "pkg/email/templates",
		logger:       logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	html, err := s.parseTemplate("welcome.html", map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(email, "Welcome to QuantumCloud!", html)
}

func (s *EmailService) SendVerificationEmail(email, fullName, token string) error {
	html, err := s.parseTemplate("verify-email.html", map[string]interface{}{
		"FullName":         fullName,
		"VerificationLink": s.frontendURL + "/verify-email?token=" + token,
		"Email":            email,
		"Year":             time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(email, "Verify Your Email - QuantumCloud", html)
}

func (s *EmailService) SendPasswordResetEmail(email, token string) error {
	html, err := s.parseTemplate("reset-password.html", map[string]interface{}{
		"ResetLink": s.frontendURL + "/reset-password?token=" + token,
		"Email":     email,
		"Year":      time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(email, "Reset Your Password - QuantumCloud", html)
}

func (s *EmailService) SendEmailChangeVerification(email, token string) error {
	html, err := s.parseTemplate("change-email.html", map[string]interface{}{
		"VerificationLink": s.frontendURL + "/verify-email?token=" + token + "&type=email_change",
		"Email":            email,
		"Year":             time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(email, "Confirm Your New Email - QuantumCloud", html)
}

func (s *EmailService) SendDataExportEmail(email, fullName, downloadURL string) error {
	html, err := s.parseTemplate("data-export.html", map[string]interface{}{
		"FullName":    fullName,
		"DownloadURL": downloadURL,
		"Email":       email,
		"Year":        time.Now().Year(),
	})
	if err != nil {
		return err
	}

	return s.send(email, "Your Data Export - QuantumCloud", html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return err
	}

	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFiles(filepath.Join(s.templatesDir, templateName))
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
