package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment là domain entity - mỗi comment reference về blog của nó
// qua blog_id thay vì nằm embedded trong blog
type Comment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BlogID    uuid.UUID `db:"blog_id" json:"blog_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CommentWithAuthor là read model: comment + thông tin author và blog title
type CommentWithAuthor struct {
	Comment
	AuthorFullName string `db:"author_full_name"`
	AuthorEmail    string `db:"author_email"`
	BlogTitle      string `db:"blog_title"`
}
