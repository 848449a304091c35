package stats

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Overview holds forum-wide aggregate numbers
type Overview struct {
	Users         int `db:"users" json:"users"`
	ActiveUsers   int `db:"active_users" json:"active_users"`
	BannedUsers   int `db:"banned_users" json:"banned_users"`
	Posts         int `db:"posts" json:"posts"`
	PostsToday    int `db:"posts_today" json:"posts_today"`
	Comments      int `db:"comments" json:"comments"`
	CommentsToday int `db:"comments_today" json:"comments_today"`
	Likes         int `db:"likes" json:"likes"`
	OpenReports   int `db:"open_reports" json:"open_reports"`
}

// Repository defines statistics data access interface
type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new stats repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Overview collects forum-wide aggregates in a single round trip.
// Active users are those seen within the last 24 hours.
func (r *repository) Overview(ctx context.Context) (*Overview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE last_login_at > NOW() - INTERVAL '24 hours') AS active_users,
			(SELECT COUNT(*) FROM users WHERE is_banned) AS banned_users,
			(SELECT COUNT(*) FROM posts WHERE is_active) AS posts,
			(SELECT COUNT(*) FROM posts WHERE is_active AND created_at > NOW() - INTERVAL '24 hours') AS posts_today,
			(SELECT COUNT(*) FROM comments WHERE is_active) AS comments,
			(SELECT COUNT(*) FROM comments WHERE is_active AND created_at > NOW() - INTERVAL '24 hours') AS comments_today,
			(SELECT COUNT(*) FROM likes) AS likes,
			(SELECT COUNT(*) FROM reports WHERE status = 'pending') AS open_reports
	`

	var o Overview
	if err := r.db.GetContext(ctx, &o, query); err != nil {
		return nil, err
	}
	return &o, nil
}
