package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access layer contract
type Repository interface {
	Create(ctx context.Context, u *User) error

	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail tìm theo email, case-insensitive
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByFullNameLike tìm user đầu tiên có full name chứa substring
	// (case-insensitive) - dùng cho author filter của blog listing
	FindByFullNameLike(ctx context.Context, name string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	MarkEmailVerified(ctx context.Context, id uuid.UUID) error

	// UpdateRefreshToken set (hoặc clear với nil) refresh token của user
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
