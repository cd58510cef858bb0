package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogpress-backend/internal/domains/otp"
	"blogpress-backend/internal/domains/user"
	"blogpress-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho auth/user domain
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	service user.Service
}

// NewUserHandler tạo handler instance
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// 201 Created: resource mới được tạo thành công
	response.Success(c, http.StatusCreated, "User registered successfully. Please check your email to verify.", userDTO)
}

// Login xử lý POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged in successfully", loginResp)
}

// Logout xử lý POST /auth/logout (bearer)
func (h *UserHandler) Logout(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// VerifyEmail xử lý POST /auth/verify-email
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var req user.VerifyEmailRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.VerifyEmail(c.Request.Context(), req.OTP); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Email verified successfully", nil)
}

// ResendOTP xử lý POST /auth/resend-otp
func (h *UserHandler) ResendOTP(c *gin.Context) {
	var req user.ResendOTPRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ResendOTP(c.Request.Context(), req.Email, otp.Type(req.Type)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "OTP sent successfully", nil)
}

// ForgotPassword xử lý POST /auth/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset OTP sent to your email", nil)
}

// ResetPassword xử lý POST /auth/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successfully", nil)
}

// RefreshToken xử lý POST /auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	accessToken, err := h.service.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Access token refreshed", user.RefreshTokenResponse{
		AccessToken: accessToken,
	})
}

// ========================================
// HELPERS
// ========================================

// validatable là contract chung của các request DTOs
type validatable interface {
	Validate() error
}

// bindAndValidate parse JSON body và chạy ozzo validation
// Trả về false (và đã ghi response) nếu request không hợp lệ
func (h *UserHandler) bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, validationMessages(err))
		return false
	}

	return true
}

// validationMessages convert ozzo validation.Errors thành array of strings
func validationMessages(err error) interface{} {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		messages := make([]string, 0, len(vErrs))
		for field, fieldErr := range vErrs {
			messages = append(messages, field+": "+fieldErr.Error())
		}
		return messages
	}
	return err.Error()
}

// handleError map domain errors thành HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrEmailNotVerified),
		errors.Is(err, user.ErrAlreadyVerified),
		errors.Is(err, otp.ErrInvalidOrExpired),
		errors.Is(err, otp.ErrInvalidType),
		errors.Is(err, otp.ErrTooManyRequests):
		response.BadRequest(c, err.Error())
	case errors.Is(err, user.ErrInvalidRefreshToken),
		errors.Is(err, user.ErrRefreshTokenRevoked):
		response.Unauthorized(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.BadRequest(c, validationMessages(err))
			return
		}
		response.InternalServerError(c)
	}
}
