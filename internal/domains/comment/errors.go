package comment

import "errors"

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrInvalidCommentID = errors.New("invalid comment id")
	ErrNotCommentOwner  = errors.New("you can only modify your own comments")
)
