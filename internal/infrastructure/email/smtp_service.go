package email

import (
	"context"
	"fmt"
	"net/smtp"

	"blogpress-backend/pkg/logger"
)

// EmailService gửi email OTP tới user
type EmailService interface {
	SendVerificationEmail(ctx context.Context, data VerificationEmailData) error
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendVerificationEmail(ctx context.Context, data VerificationEmailData) error {
	subject := "Email Verification"
	body := fmt.Sprintf(`Hi %s,

Your verification code is: %s

This code will expire in %s.

If you didn't create this account, please ignore this email.`, data.FullName, data.OTP, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	subject := "Reset Password Request"
	body := fmt.Sprintf(`Hi %s,

Your password reset code is: %s

This code will expire in %s.

If you didn't request a password reset, please ignore this email.`, data.FullName, data.OTP, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
