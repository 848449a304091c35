package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type classifies what the reporter complains about
type Type string

const (
	TypeSpam          Type = "spam"
	TypeInappropriate Type = "inappropriate"
	TypeHarassment    Type = "harassment"
	TypeCopyright     Type = "copyright"
	TypeOther         Type = "other"
)

// Status represents report lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Report represents a user report against a post or a comment
// (matches reports table). Exactly one of PostID and CommentID is set.
type Report struct {
	ID         uuid.UUID     `db:"id"`
	ReporterID uuid.UUID     `db:"reporter_id"`
	PostID     uuid.NullUUID `db:"post_id"`
	CommentID  uuid.NullUUID `db:"comment_id"`
	Type       Type          `db:"type"`
	Details    string        `db:"details"`
	Status     Status        `db:"status"`

	ResolvedAt sql.NullTime   `db:"resolved_at"`
	ResolvedBy uuid.NullUUID  `db:"resolved_by"`
	AdminNotes sql.NullString `db:"admin_notes"`

	CreatedAt time.Time `db:"created_at"`

	// Joined fields
	ReporterUsername string `db:"reporter_username"`
}

// IsOpen reports whether the report still awaits a staff decision
func (r *Report) IsOpen() bool {
	return r.Status == StatusPending
}
