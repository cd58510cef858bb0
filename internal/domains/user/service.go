package user

import (
	"context"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/otp"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error

	// Email verification & password reset (OTP flows)
	VerifyEmail(ctx context.Context, otpCode string) error
	ResendOTP(ctx context.Context, email string, otpType otp.Type) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// Token renewal
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
}
