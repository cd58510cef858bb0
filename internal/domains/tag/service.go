package tag

import (
	"context"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/user"
)

// Service định nghĩa business logic contract cho tag moderation
type Service interface {
	// FindOrCreate normalize name rồi reuse tag cũ (isNewlyCreated=false)
	// hoặc tạo tag mới - APPROVED cho admin, PENDING cho user thường
	FindOrCreate(ctx context.Context, name string, userID uuid.UUID, role user.Role) (*Tag, bool, error)

	// Approve chuyển status sang APPROVED
	// Fails với ErrAlreadyApproved nếu đã approved rồi
	Approve(ctx context.Context, id uuid.UUID) (*Tag, error)

	// Delete xóa tag và cascade khỏi mọi blog đang reference nó
	Delete(ctx context.Context, id uuid.UUID) error
}
