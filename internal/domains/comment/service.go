package comment

import (
	"context"

	"github.com/google/uuid"
)

// Service định nghĩa business logic contract cho comments
type Service interface {
	// Add validate blog tồn tại rồi tạo comment mới
	Add(ctx context.Context, req AddCommentRequest, blogID, userID uuid.UUID) (*CommentDTO, error)

	// GetByBlog trả về comments của đúng blog đó, author populated
	GetByBlog(ctx context.Context, blogID uuid.UUID) ([]CommentDTO, error)

	// Edit - chỉ owner được phép; non-owner nhận ErrNotCommentOwner
	Edit(ctx context.Context, req EditCommentRequest, commentID, userID uuid.UUID) (*CommentDTO, error)

	// Delete - chỉ owner được phép
	Delete(ctx context.Context, commentID, userID uuid.UUID) error
}
