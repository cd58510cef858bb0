package email

// VerificationEmailData là payload cho email xác thực tài khoản
type VerificationEmailData struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	OTP       string `json:"otp"`
	ExpiresIn string `json:"expiresIn"`
}

// ResetPasswordData là payload cho email reset mật khẩu
type ResetPasswordData struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	OTP       string `json:"otp"`
	ExpiresIn string `json:"expiresIn"`
}
