package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already in use")
)

// Service-level (Business logic) errors
var (
	// Authentication
	// Cùng một message cho email không tồn tại và sai password
	// để không leak email nào đã đăng ký
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified, please verify your email")
	ErrAlreadyVerified    = errors.New("email already verified")

	// Tokens
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
)
