package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/internal/domains/user"
)

// tagService implement tag.Service interface
type tagService struct {
	repo tag.Repository
}

// NewTagService tạo service instance
func NewTagService(repo tag.Repository) tag.Service {
	return &tagService{repo: repo}
}

// FindOrCreate normalize name và reuse hoặc tạo tag mới
// Idempotent: mọi user đều reuse tag đã tồn tại, không check ownership
func (s *tagService) FindOrCreate(ctx context.Context, name string, userID uuid.UUID, role user.Role) (*tag.Tag, bool, error) {
	// 1. NORMALIZE - deduplication key là trim + lowercase
	normalized := tag.NormalizeName(name)
	if normalized == "" {
		return nil, false, tag.ErrEmptyName
	}

	// 2. REUSE nếu đã tồn tại
	existing, err := s.repo.FindByName(ctx, normalized)
	if err == nil {
		return existing, false, nil
	}
	if err != tag.ErrTagNotFound {
		return nil, false, fmt.Errorf("find tag by name: %w", err)
	}

	// 3. CREATE - admin tags được auto-approve, user tags chờ moderation
	status := tag.StatusPending
	if role.IsAdmin() {
		status = tag.StatusApproved
	}

	now := time.Now()
	newTag := &tag.Tag{
		ID:        uuid.New(),
		Name:      normalized,
		Status:    status,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, newTag); err != nil {
		// Race với một request khác vừa tạo cùng tag: reuse tag của nó
		if err == tag.ErrTagAlreadyExists {
			existing, findErr := s.repo.FindByName(ctx, normalized)
			if findErr != nil {
				return nil, false, fmt.Errorf("refetch tag after conflict: %w", findErr)
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return newTag, true, nil
}

// Approve chuyển tag sang APPROVED
func (s *tagService) Approve(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err // ErrTagNotFound
	}

	if t.Status == tag.StatusApproved {
		return nil, tag.ErrAlreadyApproved
	}

	if err := s.repo.UpdateStatus(ctx, id, tag.StatusApproved); err != nil {
		return nil, fmt.Errorf("approve tag: %w", err)
	}

	t.Status = tag.StatusApproved
	return t, nil
}

// Delete xóa tag và cascade khỏi mọi blog reference
func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	// Check tồn tại trước để trả NotFound rõ ràng
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.repo.DeleteWithCascade(ctx, id)
}
