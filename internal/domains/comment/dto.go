package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CommentAuthor là thông tin author được populate trong comment responses
type CommentAuthor struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
}

// CommentDTO là comment representation trả về cho client
type CommentDTO struct {
	ID        uuid.UUID     `json:"id"`
	BlogID    uuid.UUID     `json:"blogId"`
	BlogTitle string        `json:"blogTitle"`
	Author    CommentAuthor `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 1000).Error("content must be 1-1000 characters"),
		),
	)
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r EditCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 1000).Error("content must be 1-1000 characters"),
		),
	)
}

func (c *CommentWithAuthor) ToDTO() CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		BlogID:    c.BlogID,
		BlogTitle: c.BlogTitle,
		Author: CommentAuthor{
			ID:       c.UserID,
			FullName: c.AuthorFullName,
			Email:    c.AuthorEmail,
		},
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
