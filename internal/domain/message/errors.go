package message

import "errors"

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrCannotMessageSelf = errors.New("cannot message yourself")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNotParticipant    = errors.New("not a participant of this conversation")
)
