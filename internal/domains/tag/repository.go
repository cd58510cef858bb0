package tag

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access contract cho tag taxonomy
type Repository interface {
	// Create insert tag mới; fails với ErrTagAlreadyExists nếu
	// normalized name đã tồn tại (unique index)
	Create(ctx context.Context, t *Tag) error

	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// FindByName tìm theo normalized name (exact match)
	FindByName(ctx context.Context, name string) (*Tag, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// DeleteWithCascade xóa tag và mọi blog_tags reference trong một transaction
	DeleteWithCascade(ctx context.Context, id uuid.UUID) error
}
