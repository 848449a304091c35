package comment

import "errors"

var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotCommentAuthor     = errors.New("not the comment author")
	ErrParentNotFound       = errors.New("parent comment not found")
	ErrParentWrongPost      = errors.New("parent comment belongs to another post")
	ErrNestingTooDeep       = errors.New("replies to replies are not allowed")
	ErrDeleteWindowExpired  = errors.New("self-delete window expired")
	ErrDeleteReasonRequired = errors.New("delete reason required")
	ErrAlreadyDeleted       = errors.New("comment already deleted")
)
