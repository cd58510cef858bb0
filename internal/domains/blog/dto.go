package blog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"blogpress-backend/internal/domains/tag"
)

// AuthorInfo là thông tin author được populate trong blog responses
type AuthorInfo struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
}

// BlogDTO là blog representation trả về cho client
// Author và tags được populate, comments chỉ trả về count
type BlogDTO struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Author       AuthorInfo   `json:"author"`
	Tags         []tag.TagDTO `json:"tags"`
	CommentCount int          `json:"commentCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PaginatedBlogs là envelope cho filtered/paginated listing
// totalPages = ceil(total/limit)
type PaginatedBlogs struct {
	Data       []BlogDTO `json:"data"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int64     `json:"total"`
	TotalPages int       `json:"totalPages"`
}

// GetBlogsQuery là các filter từ query string của GET /blogs
type GetBlogsQuery struct {
	Author    string // author name substring, case-insensitive
	Tag       string // tag name exact match, case-insensitive
	Search    string // title substring
	SortBy    string // "title" | "createdAt"
	SortOrder string // "asc" | "desc"
	Page      int
	Limit     int
}

type CreateBlogRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be 1-200 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 0).Error("description cannot be empty"),
		),
		validation.Field(&r.Tags,
			validation.Length(0, 10).Error("a blog can have at most 10 tags"),
		),
	)
}

// UpdateBlogRequest - partial update: chỉ các field non-nil được apply
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 200).Error("title must be 1-200 characters")),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil, validation.Length(1, 0).Error("description cannot be empty")),
		),
	)
}
