package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

const tagColumns = `id, name, status, created_by, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, t *tag.Tag) error {
	query := `
		INSERT INTO tags (id, name, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Name,
		t.Status,
		t.CreatedBy,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		// 23505 = unique_violation trên normalized name
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag.ErrTagAlreadyExists
		}
		return fmt.Errorf("insert tag: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE name = $1`
	return r.scanOne(ctx, query, name)
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status tag.Status) error {
	query := `UPDATE tags SET status = $2, updated_at = NOW() WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update tag status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}

	return nil
}

// DeleteWithCascade xóa tag và mọi blog_tags reference
// Hai writes chạy trong một transaction - không để lại dangling references
func (r *postgresRepository) DeleteWithCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM blog_tags WHERE tag_id = $1`, id); err != nil {
			return fmt.Errorf("delete blog tag references: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return tag.ErrTagNotFound
		}

		return nil
	})
}

func (r *postgresRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*tag.Tag, error) {
	var t tag.Tag
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.Status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tag.ErrTagNotFound
		}
		return nil, fmt.Errorf("query tag: %w", err)
	}

	return &t, nil
}
