package follow

import (
	"time"

	"github.com/google/uuid"
)

// Follow links a follower to the user they follow (matches follows
// table, unique on the pair).
type Follow struct {
	FollowerID uuid.UUID `db:"follower_id"`
	FolloweeID uuid.UUID `db:"followee_id"`
	CreatedAt  time.Time `db:"created_at"`
}

// FollowerInfo is a row in a follower or following listing
type FollowerInfo struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url,omitempty"`
	Since     time.Time `db:"since" json:"since"`
}
