package post

import "errors"

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrNotPostAuthor        = errors.New("not the post author")
	ErrPostNotActive        = errors.New("post is not active")
	ErrDeleteWindowExpired  = errors.New("self-delete window expired")
	ErrDeleteReasonRequired = errors.New("delete reason required")
	ErrAlreadyDeleted       = errors.New("post already deleted")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrTagNotFound          = errors.New("tag not found")
)
