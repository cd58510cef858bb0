package blog

import (
	"context"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/tag"
)

// ListFilter là filter đã được service resolve sẵn (name → id)
type ListFilter struct {
	AuthorID    *uuid.UUID
	TagID       *uuid.UUID
	TitleSearch string
	SortBy      string // "title" | "created_at"
	SortOrder   string // "ASC" | "DESC"
	Offset      int
	Limit       int
}

// Repository định nghĩa data access contract cho blog content
type Repository interface {
	// Create insert blog và blog_tags references trong một transaction
	Create(ctx context.Context, b *Blog, tagIDs []uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*BlogWithAuthor, error)

	// ExistsByAuthorAndTitle check (author, title) uniqueness tại write time
	ExistsByAuthorAndTitle(ctx context.Context, authorID uuid.UUID, title string) (bool, error)

	// List trả về một page of blogs khớp filter + total count
	List(ctx context.Context, filter ListFilter) ([]BlogWithAuthor, int64, error)

	// ListByAuthor trả về blogs của một author, newest first
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]BlogWithAuthor, error)

	// Update apply title/description lên blog row
	Update(ctx context.Context, b *Blog) error

	// Delete xóa blog cùng blog_tags và comments của nó trong một transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// TagsForBlogs load tags cho một batch blogs (tránh N+1 queries)
	TagsForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID][]tag.Tag, error)

	// CommentCounts đếm comments per blog cho một batch
	CommentCounts(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
