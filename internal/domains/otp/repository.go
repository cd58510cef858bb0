package otp

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access contract cho OTP lifecycle
type Repository interface {
	Create(ctx context.Context, o *OTP) error

	// FindActiveByCode tìm OTP chưa verified, chưa hết hạn theo code+type
	// Dùng cho verify-email (code là đủ để xác định OTP)
	FindActiveByCode(ctx context.Context, code string, t Type) (*OTP, error)

	// FindActiveByEmailAndCode tìm OTP active theo email+code+type
	// Dùng cho reset-password (code phải thuộc về đúng email)
	FindActiveByEmailAndCode(ctx context.Context, email, code string, t Type) (*OTP, error)

	// MarkVerified đánh dấu OTP đã được dùng
	MarkVerified(ctx context.Context, id uuid.UUID) error

	// DeleteUnverified xóa mọi OTP chưa dùng của email+type (supersede)
	DeleteUnverified(ctx context.Context, email string, t Type) error

	// DeleteExpired xóa toàn bộ OTP đã quá hạn, trả về số rows
	// Thay thế cho TTL index - chạy định kỳ từ worker
	DeleteExpired(ctx context.Context) (int64, error)
}
