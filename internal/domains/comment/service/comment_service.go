package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogpress-backend/internal/domains/blog"
	"blogpress-backend/internal/domains/comment"
)

type commentService struct {
	repo     comment.Repository
	blogRepo blog.Repository
}

// NewCommentService tạo service instance với dependencies
func NewCommentService(repo comment.Repository, blogRepo blog.Repository) comment.Service {
	return &commentService{repo: repo, blogRepo: blogRepo}
}

func (s *commentService) Add(ctx context.Context, req comment.AddCommentRequest, blogID, userID uuid.UUID) (*comment.CommentDTO, error) {
	// 1. Comment phải gắn vào blog tồn tại
	if _, err := s.blogRepo.FindByID(ctx, blogID); err != nil {
		return nil, err
	}

	// 2. Persist
	now := time.Now()
	c := &comment.Comment{
		ID:        uuid.New(),
		BlogID:    blogID,
		UserID:    userID,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return s.toDTO(ctx, c.ID)
}

func (s *commentService) GetByBlog(ctx context.Context, blogID uuid.UUID) ([]comment.CommentDTO, error) {
	if _, err := s.blogRepo.FindByID(ctx, blogID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	dtos := make([]comment.CommentDTO, len(rows))
	for i := range rows {
		dtos[i] = rows[i].ToDTO()
	}

	return dtos, nil
}

func (s *commentService) Edit(ctx context.Context, req comment.EditCommentRequest, commentID, userID uuid.UUID) (*comment.CommentDTO, error) {
	// Check tồn tại trước, rồi mới authorize
	// Comment không tồn tại → 404, tồn tại nhưng không phải owner → 403
	existing, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, comment.ErrNotCommentOwner
	}

	if err := s.repo.UpdateContent(ctx, commentID, req.Content); err != nil {
		return nil, err
	}

	return s.toDTO(ctx, commentID)
}

func (s *commentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return comment.ErrNotCommentOwner
	}

	return s.repo.Delete(ctx, commentID)
}

func (s *commentService) toDTO(ctx context.Context, id uuid.UUID) (*comment.CommentDTO, error) {
	c, err := s.repo.FindByIDWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := c.ToDTO()
	return &dto, nil
}
