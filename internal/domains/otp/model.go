package otp

import (
	"time"

	"github.com/google/uuid"
)

// Type phân loại mục đích của one-time code
type Type string

const (
	TypeEmailVerification Type = "EMAIL_VERIFICATION"
	TypeResetPassword     Type = "RESET_PASSWORD"
)

// IsValid kiểm tra type hợp lệ
func (t Type) IsValid() bool {
	switch t {
	case TypeEmailVerification, TypeResetPassword:
		return true
	}
	return false
}

// OTP là domain entity - ánh xạ 1:1 với bảng otps trong DB
// Một code chỉ "active" khi chưa verified và chưa quá expires_at
type OTP struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Code      string    `db:"code" json:"-"` // Never expose in JSON
	Type      Type      `db:"type" json:"type"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Verified  bool      `db:"verified" json:"verified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsExpired kiểm tra code đã quá hạn
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsActive: chưa dùng và chưa hết hạn
func (o *OTP) IsActive() bool {
	return !o.Verified && !o.IsExpired()
}
