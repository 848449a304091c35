package taxonomy

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrSlugTaken        = errors.New("slug already in use")
)
