package blog

import (
	"time"

	"github.com/google/uuid"
)

// Blog là domain entity - ánh xạ 1:1 với bảng blogs trong DB
// Tag references nằm ở bảng blog_tags, comments reference ngược
// về blog qua comments.blog_id
type Blog struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	AuthorID    uuid.UUID `db:"author_id" json:"author_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// BlogWithAuthor là read model: blog + thông tin author đã join sẵn
type BlogWithAuthor struct {
	Blog
	AuthorFullName string `db:"author_full_name"`
	AuthorEmail    string `db:"author_email"`
}
