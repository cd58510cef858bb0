package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogpress-backend/internal/domains/otp"
	"blogpress-backend/internal/domains/user"
	"blogpress-backend/internal/infrastructure/email"
	"blogpress-backend/pkg/jwt"
	"blogpress-backend/pkg/logger"
)

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	otpService otp.Service
	mailer     email.EmailService // async dispatcher - enqueue, không gửi inline
	jwtManager *jwt.Manager
}

// NewUserService tạo service instance
// Inject dependencies qua constructor (Dependency Injection)
func NewUserService(
	repo user.Repository,
	otpService otp.Service,
	mailer email.EmailService,
	jwtManager *jwt.Manager,
) user.Service {
	return &userService{
		repo:       repo,
		otpService: otpService,
		mailer:     mailer,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới (unverified) và gửi OTP xác thực qua email
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	// DTO validation đã được gọi ở handler layer, double-check an toàn hơn
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: Check email already exists
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD
	// bcrypt cost = 12: balance giữa security và performance
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. CREATE USER ENTITY
	now := time.Now()
	newUser := &user.User{
		ID:              uuid.New(),
		Email:           req.Email,
		PasswordHash:    string(passwordHash),
		FullName:        req.FullName,
		Role:            user.RoleUser, // Default role
		IsEmailVerified: false,         // Require email verification
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// 5. PERSIST TO DATABASE
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// 6. ISSUE VERIFICATION OTP + SEND EMAIL (Async)
	// Email failures không roll back user creation - user có thể resend
	s.issueAndSendOTP(ctx, newUser, otp.TypeEmailVerification)

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login xác thực user và trả về JWT tokens
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. FIND USER BY EMAIL
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Không expose "email not found" - cùng message với sai password
		return nil, user.ErrInvalidCredentials
	}

	// 3. VERIFY PASSWORD
	// bcrypt.CompareHashAndPassword is constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 4. CHECK EMAIL VERIFIED
	if !u.IsEmailVerified {
		return nil, user.ErrEmailNotVerified
	}

	// 5. GENERATE JWT TOKENS bound to {userId, role}
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String(), u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// 6. PERSIST REFRESH TOKEN
	// Single session per user: login mới overwrite (implicitly revoke) token cũ
	if err := s.repo.UpdateRefreshToken(ctx, u.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	dto := u.ToDTO()
	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto,
	}, nil
}

// Logout clear refresh token của user (idempotent)
func (s *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return err // ErrUserNotFound nếu user không tồn tại
	}
	return nil
}

// ========================================
// EMAIL VERIFICATION & PASSWORD RESET
// ========================================

// VerifyEmail redeem OTP EMAIL_VERIFICATION và đánh dấu user verified
func (s *userService) VerifyEmail(ctx context.Context, otpCode string) error {
	// 1. REDEEM OTP - fails với ErrInvalidOrExpired nếu không có code active
	redeemed, err := s.otpService.RedeemByCode(ctx, otpCode, otp.TypeEmailVerification)
	if err != nil {
		return err
	}

	// 2. FIND USER LINKED VỚI OTP
	u, err := s.repo.FindByEmail(ctx, redeemed.Email)
	if err != nil {
		return err
	}

	// 3. MARK VERIFIED
	if err := s.repo.MarkEmailVerified(ctx, u.ID); err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}

	return nil
}

// ResendOTP supersede code cũ và gửi code mới theo type
func (s *userService) ResendOTP(ctx context.Context, emailAddr string, otpType otp.Type) error {
	if !otpType.IsValid() {
		return otp.ErrInvalidType
	}

	// 1. CHECK USER EXISTS
	u, err := s.repo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err // ErrUserNotFound
	}

	// 2. BUSINESS RULE: không resend verification cho user đã verified
	if otpType == otp.TypeEmailVerification && u.IsEmailVerified {
		return user.ErrAlreadyVerified
	}

	// 3. ISSUE + SEND
	return s.issueAndSendOTPStrict(ctx, u, otpType)
}

// ForgotPassword gửi OTP RESET_PASSWORD
func (s *userService) ForgotPassword(ctx context.Context, emailAddr string) error {
	u, err := s.repo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err // ErrUserNotFound
	}

	return s.issueAndSendOTPStrict(ctx, u, otp.TypeResetPassword)
}

// ResetPassword validate OTP RESET_PASSWORD và đổi password mới
func (s *userService) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return err
	}

	// 2. REDEEM OTP ràng buộc email+code
	if _, err := s.otpService.Redeem(ctx, req.Email, req.OTP, otp.TypeResetPassword); err != nil {
		return err // ErrInvalidOrExpired
	}

	// 3. FIND USER
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	// 4. RE-HASH AND STORE NEW PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// ========================================
// TOKEN RENEWAL
// ========================================

// RefreshAccessToken verify refresh token và mint access token mới
// Token phải khớp với token đang lưu trên user record - logout revoke nó
func (s *userService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	// 1. VERIFY SIGNATURE + EXPIRY + TYPE
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", user.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", user.ErrInvalidRefreshToken
	}

	// 2. LOOKUP USER
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err // ErrUserNotFound
	}

	// 3. MATCH AGAINST STORED TOKEN
	// Nil (đã logout) hoặc mismatch (login mới đã overwrite) → revoked
	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return "", user.ErrRefreshTokenRevoked
	}

	// 4. MINT NEW ACCESS TOKEN bound to {userId, role}
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Role.String())
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// ========================================
// HELPERS
// ========================================

// issueAndSendOTP - best-effort variant dùng trong Register:
// lỗi OTP/email chỉ được log, không fail request
func (s *userService) issueAndSendOTP(ctx context.Context, u *user.User, t otp.Type) {
	if err := s.issueAndSendOTPStrict(ctx, u, t); err != nil {
		logger.Error("failed to dispatch otp email", err)
	}
}

func (s *userService) issueAndSendOTPStrict(ctx context.Context, u *user.User, t otp.Type) error {
	issued, err := s.otpService.Issue(ctx, u.Email, t)
	if err != nil {
		return err
	}

	expiresIn := fmt.Sprintf("%d minutes", int(time.Until(issued.ExpiresAt).Round(time.Minute).Minutes()))

	if t == otp.TypeEmailVerification {
		return s.mailer.SendVerificationEmail(ctx, email.VerificationEmailData{
			Email:     u.Email,
			FullName:  u.FullName,
			OTP:       issued.Code,
			ExpiresIn: expiresIn,
		})
	}

	return s.mailer.SendResetPasswordEmail(ctx, email.ResetPasswordData{
		Email:     u.Email,
		FullName:  u.FullName,
		OTP:       issued.Code,
		ExpiresIn: expiresIn,
	})
}
