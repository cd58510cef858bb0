package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/blog"
	"blogpress-backend/internal/domains/tag"
	"blogpress-backend/pkg/cache"
	"blogpress-backend/pkg/database"
)

const blogCacheTTL = 5 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository tạo repository instance
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache) blog.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: c,
	}
}

const blogWithAuthorColumns = `
	b.id, b.title, b.description, b.author_id, b.created_at, b.updated_at,
	u.full_name AS author_full_name, u.email AS author_email`

// Create insert blog và blog_tags references trong một transaction
func (r *postgresRepository) Create(ctx context.Context, b *blog.Blog, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO blogs (id, title, description, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := tx.Exec(ctx, query,
			b.ID, b.Title, b.Description, b.AuthorID, b.CreatedAt, b.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert blog: %w", err)
		}

		for _, tagID := range tagIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO blog_tags (blog_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				b.ID, tagID,
			); err != nil {
				return fmt.Errorf("insert blog tag reference: %w", err)
			}
		}

		return nil
	})
}

// FindByID tìm blog theo UUID với Redis caching (Cache-Aside Pattern)
// Cached entry không chứa tags/comment count - những phần đó load riêng
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.BlogWithAuthor, error) {
	cacheKey := fmt.Sprintf("blog:%s", id.String())

	var b blog.BlogWithAuthor
	found, err := r.cache.Get(ctx, cacheKey, &b)
	if err == nil && found {
		// Cache HIT - return ngay, không cần query DB
		return &b, nil
	}

	query := `
		SELECT ` + blogWithAuthorColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1
	`

	b = blog.BlogWithAuthor{}
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Description, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&b.AuthorFullName, &b.AuthorEmail,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrBlogNotFound
		}
		return nil, fmt.Errorf("query blog by id: %w", err)
	}

	// Populate cache, best-effort
	_ = r.cache.Set(ctx, cacheKey, &b, blogCacheTTL)

	return &b, nil
}

func (r *postgresRepository) ExistsByAuthorAndTitle(ctx context.Context, authorID uuid.UUID, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blogs WHERE author_id = $1 AND title = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, authorID, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blog title exists: %w", err)
	}

	return exists, nil
}

// List build dynamic WHERE từ filter và chạy 2 queries: page + total count
func (r *postgresRepository) List(ctx context.Context, filter blog.ListFilter) ([]blog.BlogWithAuthor, int64, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", len(args)))
	}
	if filter.TagID != nil {
		args = append(args, *filter.TagID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM blog_tags bt WHERE bt.blog_id = b.id AND bt.tag_id = $%d)", len(args)))
	}
	if filter.TitleSearch != "" {
		// Escape metacharacters - search text là literal substring, không phải pattern
		args = append(args, database.EscapeLike(filter.TitleSearch))
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE '%%' || $%d || '%%'", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total trước khi apply pagination
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM blogs b %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	// Sort columns được whitelist ở service layer - không inject được
	orderBy := fmt.Sprintf("b.%s %s", filter.SortBy, filter.SortOrder)

	args = append(args, filter.Limit, filter.Offset)
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, blogWithAuthorColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query blogs: %w", err)
	}
	defer rows.Close()

	blogs, err := scanBlogs(rows)
	if err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

func (r *postgresRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]blog.BlogWithAuthor, error) {
	query := `
		SELECT ` + blogWithAuthorColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.author_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("query blogs by author: %w", err)
	}
	defer rows.Close()

	return scanBlogs(rows)
}

func (r *postgresRepository) Update(ctx context.Context, b *blog.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`

	cmdTag, err := r.pool.Exec(ctx, query, b.ID, b.Title, b.Description)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}

	r.invalidate(ctx, b.ID)
	return nil
}

// Delete xóa blog + blog_tags + comments trong một transaction
// Không để lại orphan references khi một write fail giữa chừng
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM blog_tags WHERE blog_id = $1`, id); err != nil {
			return fmt.Errorf("delete blog tag references: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE blog_id = $1`, id); err != nil {
			return fmt.Errorf("delete blog comments: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete blog: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return blog.ErrBlogNotFound
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

// invalidate xóa cache entry sau khi mutate, best-effort
func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, fmt.Sprintf("blog:%s", id.String()))
}

func (r *postgresRepository) TagsForBlogs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID][]tag.Tag, error) {
	result := make(map[uuid.UUID][]tag.Tag, len(blogIDs))
	if len(blogIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT bt.blog_id, t.id, t.name, t.status, t.created_by, t.created_at, t.updated_at
		FROM blog_tags bt
		JOIN tags t ON t.id = bt.tag_id
		WHERE bt.blog_id = ANY($1)
		ORDER BY t.name
	`

	rows, err := r.pool.Query(ctx, query, blogIDs)
	if err != nil {
		return nil, fmt.Errorf("query tags for blogs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blogID uuid.UUID
		var t tag.Tag
		if err := rows.Scan(&blogID, &t.ID, &t.Name, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan blog tag: %w", err)
		}
		result[blogID] = append(result[blogID], t)
	}

	return result, rows.Err()
}

func (r *postgresRepository) CommentCounts(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(blogIDs))
	if len(blogIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT blog_id, COUNT(*)
		FROM comments
		WHERE blog_id = ANY($1)
		GROUP BY blog_id
	`

	rows, err := r.pool.Query(ctx, query, blogIDs)
	if err != nil {
		return nil, fmt.Errorf("count comments for blogs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blogID uuid.UUID
		var count int
		if err := rows.Scan(&blogID, &count); err != nil {
			return nil, fmt.Errorf("scan comment count: %w", err)
		}
		result[blogID] = count
	}

	return result, rows.Err()
}

func scanBlogs(rows pgx.Rows) ([]blog.BlogWithAuthor, error) {
	blogs := make([]blog.BlogWithAuthor, 0)
	for rows.Next() {
		var b blog.BlogWithAuthor
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Description, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
			&b.AuthorFullName, &b.AuthorEmail,
		); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}

	return blogs, rows.Err()
}
