package comment

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access contract cho comments
type Repository interface {
	Create(ctx context.Context, c *Comment) error

	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// FindByIDWithAuthor join sẵn author và blog title cho response
	FindByIDWithAuthor(ctx context.Context, id uuid.UUID) (*CommentWithAuthor, error)

	// ListByBlog trả về comments của đúng một blog, newest first
	ListByBlog(ctx context.Context, blogID uuid.UUID) ([]CommentWithAuthor, error)

	UpdateContent(ctx context.Context, id uuid.UUID, content string) error

	Delete(ctx context.Context, id uuid.UUID) error
}
