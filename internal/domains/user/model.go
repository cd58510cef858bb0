package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	// Identity
	ID    uuid.UUID `db:"id" json:"id"`
	Email string    `db:"email" json:"email"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Profile
	FullName string `db:"full_name" json:"full_name"`

	// Authorization
	Role Role `db:"role" json:"role"`

	// Email Verification
	IsEmailVerified bool `db:"is_email_verified" json:"is_email_verified"`

	// Session - single session per user: login mới overwrite token cũ
	RefreshToken *string `db:"refresh_token" json:"-"`

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role enum
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid kiểm tra role hợp lệ
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// String implements Stringer interface
func (r Role) String() string {
	return string(r)
}

// IsAdmin kiểm tra quyền admin (auto-approve tags, moderation)
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ToDTO converts entity sang DTO, bỏ các field nhạy cảm
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
