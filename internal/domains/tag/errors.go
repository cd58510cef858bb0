package tag

import "errors"

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrInvalidTagID     = errors.New("invalid tag id")
	ErrTagAlreadyExists = errors.New("tag already exists")
	ErrAlreadyApproved  = errors.New("tag is already approved")
	ErrEmptyName        = errors.New("tag name cannot be empty")
)
