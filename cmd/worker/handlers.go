package main

import (
	"github.com/hibiken/asynq"

	otpJob "blogpress-backend/internal/domains/otp/job"
	"blogpress-backend/internal/infrastructure/email"
	emailjob "blogpress-backend/internal/infrastructure/email/job"
	"blogpress-backend/internal/shared"
	"blogpress-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Email handlers
	emailVerification *emailjob.EmailVerificationHandler
	resetPassword     *emailjob.ResetPasswordEmailHandler

	// Maintenance handlers
	cleanupOTPs *otpJob.CleanupExpiredOTPsHandler
}

// initializeHandlers creates all job handlers with their dependencies
// Worker là process duy nhất thật sự nói chuyện với SMTP server -
// API process chỉ enqueue tasks
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)

	return &HandlerRegistry{
		emailVerification: emailjob.NewEmailVerificationHandler(emailSvc),
		resetPassword:     emailjob.NewResetPasswordEmailHandler(emailSvc),
		cleanupOTPs:       otpJob.NewCleanupExpiredOTPsHandler(c.OTPRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Email tasks
	mux.HandleFunc(shared.TypeSendVerificationEmail, h.emailVerification.ProcessTask)
	mux.HandleFunc(shared.TypeSendResetEmail, h.resetPassword.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeCleanupExpiredOTPs, h.cleanupOTPs.ProcessTask)
}
