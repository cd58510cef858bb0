package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/comment"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

const commentWithAuthorColumns = `
	c.id, c.blog_id, c.user_id, c.content, c.created_at, c.updated_at,
	u.full_name AS author_full_name, u.email AS author_email,
	b.title AS blog_title`

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (id, blog_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.pool.Exec(ctx, query,
		c.ID, c.BlogID, c.UserID, c.Content, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	query := `
		SELECT id, blog_id, user_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var c comment.Comment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment by id: %w", err)
	}

	return &c, nil
}

func (r *postgresRepository) FindByIDWithAuthor(ctx context.Context, id uuid.UUID) (*comment.CommentWithAuthor, error) {
	query := `
		SELECT ` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		JOIN blogs b ON b.id = c.blog_id
		WHERE c.id = $1
	`

	var c comment.CommentWithAuthor
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.AuthorFullName, &c.AuthorEmail, &c.BlogTitle,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("query comment with author: %w", err)
	}

	return &c, nil
}

// ListByBlog chỉ trả về comments có blog_id khớp - không leak
// comments của blog khác
func (r *postgresRepository) ListByBlog(ctx context.Context, blogID uuid.UUID) ([]comment.CommentWithAuthor, error) {
	query := `
		SELECT ` + commentWithAuthorColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		JOIN blogs b ON b.id = c.blog_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("query comments by blog: %w", err)
	}
	defer rows.Close()

	comments := make([]comment.CommentWithAuthor, 0)
	for rows.Next() {
		var c comment.CommentWithAuthor
		if err := rows.Scan(
			&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.AuthorFullName, &c.AuthorEmail, &c.BlogTitle,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *postgresRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := r.pool.Exec(ctx, query, id, content)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}
