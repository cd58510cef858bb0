package otp

import "context"

// Service quản lý lifecycle của one-time codes:
// issue (supersede code cũ), redeem, purge sau khi dùng
type Service interface {
	// Issue xóa các code chưa dùng của email+type rồi tạo code mới
	// với expiry theo type. Fails với ErrTooManyRequests khi vượt
	// rate limit trong window.
	Issue(ctx context.Context, email string, t Type) (*OTP, error)

	// RedeemByCode validate code active theo code+type, đánh dấu verified
	// và purge các code stale cùng type của email đó.
	// Fails với ErrInvalidOrExpired nếu không có code active khớp.
	RedeemByCode(ctx context.Context, code string, t Type) (*OTP, error)

	// Redeem như RedeemByCode nhưng ràng buộc thêm email
	Redeem(ctx context.Context, email, code string, t Type) (*OTP, error)
}
