package blog

import (
	"context"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/user"
)

// Service định nghĩa business logic contract cho blog content
type Service interface {
	// GetAll - filtered/paginated listing
	// Author/tag filters resolve name → id; không match → empty page
	GetAll(ctx context.Context, query GetBlogsQuery) (*PaginatedBlogs, error)

	GetByID(ctx context.Context, id uuid.UUID) (*BlogDTO, error)

	// GetByUser validate user tồn tại rồi list blogs của họ, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]BlogDTO, error)

	// GetMine list blogs của authenticated user, newest first
	GetMine(ctx context.Context, userID uuid.UUID) ([]BlogDTO, error)

	// Create fails với ErrDuplicateTitle nếu author đã có blog cùng title;
	// mỗi tag name được resolve qua tag moderation (find-or-create)
	Create(ctx context.Context, req CreateBlogRequest, authorID uuid.UUID, role user.Role) (*BlogDTO, error)

	// Update - partial update, chỉ owner được phép
	Update(ctx context.Context, req UpdateBlogRequest, blogID, authorID uuid.UUID) (*BlogDTO, error)

	// Delete - chỉ owner được phép; non-owner nhận ErrNotBlogOwner
	Delete(ctx context.Context, blogID, authorID uuid.UUID) error
}
