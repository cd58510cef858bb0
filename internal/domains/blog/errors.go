package blog

import "errors"

var (
	ErrBlogNotFound   = errors.New("blog not found")
	ErrInvalidBlogID  = errors.New("invalid blog id")
	ErrDuplicateTitle = errors.New("you already have a blog with this title")
	ErrNotBlogOwner   = errors.New("you are not the owner of this blog")
)
