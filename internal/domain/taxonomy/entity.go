package taxonomy

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Category groups posts into a browsable section (matches categories table)
type Category struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Slug        string         `db:"slug" json:"slug"`
	Description sql.NullString `db:"description" json:"-"`
	PostsCount  int            `db:"posts_count" json:"posts_count"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Tag is a free-form label attached to posts (matches tags table)
type Tag struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Slug       string    `db:"slug" json:"slug"`
	PostsCount int       `db:"posts_count" json:"posts_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
