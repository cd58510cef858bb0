package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogpress-backend/internal/domains/otp"
	"blogpress-backend/internal/domains/user"
	"blogpress-backend/internal/infrastructure/email"
	"blogpress-backend/pkg/jwt"
)

// ========================================
// FAKES
// ========================================

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, err := f.FindByEmail(ctx, u.Email); err == nil {
		return user.ErrEmailAlreadyExists
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) FindByFullNameLike(ctx context.Context, name string) (*user.User, error) {
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.FullName), strings.ToLower(name)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsEmailVerified = true
	return nil
}

func (f *fakeUserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// fakeOTPService phát codes tuần tự và track redeem
type fakeOTPService struct {
	nextCode int
	issued   map[string]*otp.OTP // key: email+type
	issueErr error
}

func newFakeOTPService() *fakeOTPService {
	return &fakeOTPService{nextCode: 100000, issued: make(map[string]*otp.OTP)}
}

func (f *fakeOTPService) key(email string, t otp.Type) string {
	return email + "|" + string(t)
}

func (f *fakeOTPService) Issue(ctx context.Context, email string, t otp.Type) (*otp.OTP, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.nextCode++
	o := &otp.OTP{
		ID:        uuid.New(),
		Email:     email,
		Code:      fmt.Sprintf("%06d", f.nextCode),
		Type:      t,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	f.issued[f.key(email, t)] = o
	return o, nil
}

func (f *fakeOTPService) RedeemByCode(ctx context.Context, code string, t otp.Type) (*otp.OTP, error) {
	for k, o := range f.issued {
		if o.Code == code && o.Type == t {
			delete(f.issued, k)
			o.Verified = true
			return o, nil
		}
	}
	return nil, otp.ErrInvalidOrExpired
}

func (f *fakeOTPService) Redeem(ctx context.Context, email, code string, t otp.Type) (*otp.OTP, error) {
	o, ok := f.issued[f.key(email, t)]
	if !ok || o.Code != code {
		return nil, otp.ErrInvalidOrExpired
	}
	delete(f.issued, f.key(email, t))
	o.Verified = true
	return o, nil
}

// fakeMailer ghi lại emails thay vì gửi
type fakeMailer struct {
	verifications []email.VerificationEmailData
	resets        []email.ResetPasswordData
}

func (f *fakeMailer) SendVerificationEmail(ctx context.Context, data email.VerificationEmailData) error {
	f.verifications = append(f.verifications, data)
	return nil
}

func (f *fakeMailer) SendResetPasswordEmail(ctx context.Context, data email.ResetPasswordData) error {
	f.resets = append(f.resets, data)
	return nil
}

// ========================================
// TEST SETUP
// ========================================

type testDeps struct {
	repo   *fakeUserRepo
	otps   *fakeOTPService
	mailer *fakeMailer
	jwt    *jwt.Manager
	svc    user.Service
}

func newTestService(t *testing.T) *testDeps {
	t.Helper()

	deps := &testDeps{
		repo:   newFakeUserRepo(),
		otps:   newFakeOTPService(),
		mailer: &fakeMailer{},
		jwt:    jwt.NewManager("test-secret-key", 15, 168),
	}
	deps.svc = NewUserService(deps.repo, deps.otps, deps.mailer, deps.jwt)
	return deps
}

func registerVerified(t *testing.T, deps *testDeps, emailAddr, password string) *user.User {
	t.Helper()
	ctx := context.Background()

	dto, err := deps.svc.Register(ctx, user.RegisterRequest{
		FullName: "Alice Nguyen",
		Email:    emailAddr,
		Password: password,
	})
	require.NoError(t, err)
	require.NoError(t, deps.repo.MarkEmailVerified(ctx, dto.ID))

	u, err := deps.repo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	return u
}

// ========================================
// REGISTER
// ========================================

func TestRegister_CreatesUnverifiedUserAndSendsOTP(t *testing.T) {
	deps := newTestService(t)

	dto, err := deps.svc.Register(context.Background(), user.RegisterRequest{
		FullName: "Alice Nguyen",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", dto.Email)
	assert.Equal(t, user.RoleUser, dto.Role)
	assert.False(t, dto.IsEmailVerified)

	// Password không được lưu plaintext
	stored := deps.repo.users[dto.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	// Verification email đã dispatch với OTP vừa issue
	require.Len(t, deps.mailer.verifications, 1)
	assert.Equal(t, "alice@example.com", deps.mailer.verifications[0].Email)
	assert.Len(t, deps.mailer.verifications[0].OTP, 6)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	_, err := deps.svc.Register(ctx, user.RegisterRequest{
		FullName: "Alice Nguyen", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = deps.svc.Register(ctx, user.RegisterRequest{
		FullName: "Another Alice", Email: "alice@example.com", Password: "other456",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegister_EmailDispatchFailureDoesNotFailRegistration(t *testing.T) {
	deps := newTestService(t)
	deps.otps.issueErr = otp.ErrTooManyRequests

	dto, err := deps.svc.Register(context.Background(), user.RegisterRequest{
		FullName: "Alice Nguyen", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	// User vẫn được tạo - có thể resend OTP sau
	_, found := deps.repo.users[dto.ID]
	assert.True(t, found)
}

// ========================================
// LOGIN
// ========================================

func TestLogin_Success(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")

	resp, err := deps.svc.Login(context.Background(), user.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, u.ID, resp.User.ID)

	// Tokens bound to {userId, role}
	claims, err := deps.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, "USER", claims.Role)

	// Refresh token được persist cho session tracking
	stored := deps.repo.users[u.ID]
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, resp.RefreshToken, *stored.RefreshToken)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	deps := newTestService(t)
	registerVerified(t, deps, "alice@example.com", "secret123")
	ctx := context.Background()

	// Không được phân biệt "email không tồn tại" với "sai password"
	_, errUnknown := deps.svc.Login(ctx, user.LoginRequest{
		Email: "nobody@example.com", Password: "secret123",
	})
	_, errWrongPass := deps.svc.Login(ctx, user.LoginRequest{
		Email: "alice@example.com", Password: "wrong-password",
	})

	assert.ErrorIs(t, errUnknown, user.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, user.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLogin_UnverifiedEmailBlocked(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	_, err := deps.svc.Register(ctx, user.RegisterRequest{
		FullName: "Alice Nguyen", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = deps.svc.Login(ctx, user.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, user.ErrEmailNotVerified)
}

func TestLogin_NewLoginOverwritesOldSession(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")
	ctx := context.Background()

	first, err := deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "secret123"})
	require.NoError(t, err)

	// JWT iat có độ phân giải giây - chờ để token thứ hai khác token đầu
	time.Sleep(1100 * time.Millisecond)

	second, err := deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "secret123"})
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Session cũ bị revoke - refresh với token đầu fail
	_, err = deps.svc.RefreshAccessToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, user.ErrRefreshTokenRevoked)

	// Session mới vẫn dùng được
	_, err = deps.svc.RefreshAccessToken(ctx, second.RefreshToken)
	assert.NoError(t, err)
}

// ========================================
// LOGOUT & REFRESH
// ========================================

func TestLogout_RevokesRefreshToken(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")
	ctx := context.Background()

	resp, err := deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, deps.svc.Logout(ctx, u.ID))

	// Token vẫn valid về mặt chữ ký nhưng đã bị revoke server-side
	_, err = deps.svc.RefreshAccessToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, user.ErrRefreshTokenRevoked)
}

func TestRefreshAccessToken_MintsNewAccessToken(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")
	ctx := context.Background()

	resp, err := deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "secret123"})
	require.NoError(t, err)

	accessToken, err := deps.svc.RefreshAccessToken(ctx, resp.RefreshToken)
	require.NoError(t, err)

	claims, err := deps.jwt.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.UserID)
}

func TestRefreshAccessToken_RejectsGarbageToken(t *testing.T) {
	deps := newTestService(t)

	_, err := deps.svc.RefreshAccessToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, user.ErrInvalidRefreshToken)
}

func TestRefreshAccessToken_RejectsAccessTokenAsRefresh(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")
	ctx := context.Background()

	resp, err := deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "secret123"})
	require.NoError(t, err)

	// Access token không được dùng làm refresh token
	_, err = deps.svc.RefreshAccessToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidRefreshToken)
}

// ========================================
// EMAIL VERIFICATION
// ========================================

func TestVerifyEmail_MarksUserVerified(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	dto, err := deps.svc.Register(ctx, user.RegisterRequest{
		FullName: "Alice Nguyen", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	code := deps.mailer.verifications[0].OTP
	require.NoError(t, deps.svc.VerifyEmail(ctx, code))

	assert.True(t, deps.repo.users[dto.ID].IsEmailVerified)

	// Sau verify, login thành công
	_, err = deps.svc.Login(ctx, user.LoginRequest{
		Email: "alice@example.com", Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestVerifyEmail_InvalidCode(t *testing.T) {
	deps := newTestService(t)

	err := deps.svc.VerifyEmail(context.Background(), "000000")
	assert.ErrorIs(t, err, otp.ErrInvalidOrExpired)
}

func TestResendOTP_AlreadyVerified(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")

	err := deps.svc.ResendOTP(context.Background(), u.Email, otp.TypeEmailVerification)
	assert.ErrorIs(t, err, user.ErrAlreadyVerified)
}

func TestResendOTP_UnknownUser(t *testing.T) {
	deps := newTestService(t)

	err := deps.svc.ResendOTP(context.Background(), "nobody@example.com", otp.TypeEmailVerification)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestResendOTP_SendsNewCode(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	_, err := deps.svc.Register(ctx, user.RegisterRequest{
		FullName: "Alice Nguyen", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	firstCode := deps.mailer.verifications[0].OTP

	require.NoError(t, deps.svc.ResendOTP(ctx, "alice@example.com", otp.TypeEmailVerification))

	require.Len(t, deps.mailer.verifications, 2)
	assert.NotEqual(t, firstCode, deps.mailer.verifications[1].OTP)
}

// ========================================
// PASSWORD RESET
// ========================================

func TestResetPassword_FullFlow(t *testing.T) {
	deps := newTestService(t)
	u := registerVerified(t, deps, "alice@example.com", "secret123")
	ctx := context.Background()

	require.NoError(t, deps.svc.ForgotPassword(ctx, u.Email))
	require.Len(t, deps.mailer.resets, 1)
	code := deps.mailer.resets[0].OTP

	require.NoError(t, deps.svc.ResetPassword(ctx, user.ResetPasswordRequest{
		Email: u.Email, OTP: code, NewPassword: "brand-new-pass",
	}))

	// Password cũ không dùng được nữa, password mới hoạt động
	_, err := deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = deps.svc.Login(ctx, user.LoginRequest{Email: u.Email, Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestResetPassword_WrongEmailForCode(t *testing.T) {
	deps := newTestService(t)
	registerVerified(t, deps, "alice@example.com", "secret123")
	registerVerified(t, deps, "bob@example.com", "secret456")
	ctx := context.Background()

	require.NoError(t, deps.svc.ForgotPassword(ctx, "alice@example.com"))
	aliceCode := deps.mailer.resets[0].OTP

	// Code của alice không reset được password của bob
	err := deps.svc.ResetPassword(ctx, user.ResetPasswordRequest{
		Email: "bob@example.com", OTP: aliceCode, NewPassword: "hijacked-pass",
	})
	assert.ErrorIs(t, err, otp.ErrInvalidOrExpired)
}

func TestForgotPassword_UnknownUser(t *testing.T) {
	deps := newTestService(t)

	err := deps.svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
