package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"blogpress-backend/internal/config"
	"blogpress-backend/internal/domains/otp"
	"blogpress-backend/pkg/cache"
	"blogpress-backend/pkg/logger"
)

// otpService implement otp.Service interface
type otpService struct {
	repo  otp.Repository
	cache cache.Cache // rate limit counters
	cfg   config.OTPConfig
}

// NewOTPService tạo service instance
func NewOTPService(repo otp.Repository, c cache.Cache, cfg config.OTPConfig) otp.Service {
	return &otpService{
		repo:  repo,
		cache: c,
		cfg:   cfg,
	}
}

// Issue supersede các code cũ và tạo code mới với expiry theo type
func (s *otpService) Issue(ctx context.Context, email string, t otp.Type) (*otp.OTP, error) {
	if !t.IsValid() {
		return nil, otp.ErrInvalidType
	}

	// 1. RATE LIMIT: đếm số lần gửi trong window per email+type
	if err := s.checkRateLimit(ctx, email, t); err != nil {
		return nil, err
	}

	// 2. SUPERSEDE: xóa code chưa dùng của email+type này
	// Chỉ code mới nhất được chấp nhận, không tích lũy codes
	if err := s.repo.DeleteUnverified(ctx, email, t); err != nil {
		return nil, fmt.Errorf("supersede old otps: %w", err)
	}

	// 3. GENERATE 6-DIGIT CODE
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp code: %w", err)
	}

	// 4. PERSIST với type-specific expiry
	now := time.Now()
	o := &otp.OTP{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		Type:      t,
		ExpiresAt: now.Add(s.expiryFor(t)),
		Verified:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create otp: %w", err)
	}

	return o, nil
}

func (s *otpService) RedeemByCode(ctx context.Context, code string, t otp.Type) (*otp.OTP, error) {
	o, err := s.repo.FindActiveByCode(ctx, code, t)
	if err != nil {
		// Không phân biệt not-found với expired - cùng một message cho client
		return nil, otp.ErrInvalidOrExpired
	}

	return s.redeem(ctx, o)
}

func (s *otpService) Redeem(ctx context.Context, email, code string, t otp.Type) (*otp.OTP, error) {
	o, err := s.repo.FindActiveByEmailAndCode(ctx, email, code, t)
	if err != nil {
		return nil, otp.ErrInvalidOrExpired
	}

	return s.redeem(ctx, o)
}

// redeem đánh dấu code đã dùng và purge các code stale cùng loại
func (s *otpService) redeem(ctx context.Context, o *otp.OTP) (*otp.OTP, error) {
	if err := s.repo.MarkVerified(ctx, o.ID); err != nil {
		return nil, fmt.Errorf("mark otp verified: %w", err)
	}
	o.Verified = true

	// Purge best-effort: code đã redeem rồi, dọn dẹp fail không chặn flow
	if err := s.repo.DeleteUnverified(ctx, o.Email, o.Type); err != nil {
		logger.Error("failed to purge stale otps", err)
	}

	return o, nil
}

func (s *otpService) expiryFor(t otp.Type) time.Duration {
	if t == otp.TypeResetPassword {
		return time.Duration(s.cfg.ResetExpiry) * time.Minute
	}
	return time.Duration(s.cfg.VerificationExpiry) * time.Minute
}

func (s *otpService) checkRateLimit(ctx context.Context, email string, t otp.Type) error {
	key := fmt.Sprintf("otp:sends:%s:%s", t, email)

	count, err := s.cache.Increment(ctx, key)
	if err != nil {
		// Redis down không được chặn việc gửi OTP
		logger.Error("otp rate limit counter unavailable", err)
		return nil
	}

	if count == 1 {
		window := time.Duration(s.cfg.ResendWindow) * time.Minute
		if err := s.cache.Expire(ctx, key, window); err != nil {
			logger.Error("failed to set otp rate limit window", err)
		}
	}

	if count > int64(s.cfg.ResendLimit) {
		return otp.ErrTooManyRequests
	}

	return nil
}

// generateCode sinh code 6 chữ số phân bố đều trong [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
