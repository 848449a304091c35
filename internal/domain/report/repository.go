package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report data access interface
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	Exists(ctx context.Context, reporterID uuid.UUID, postID, commentID uuid.NullUUID) (bool, error)
	List(ctx context.Context, filter *ListFilter) ([]*Report, int, error)
	Resolve(ctx context.Context, id, resolvedBy uuid.UUID, status Status, adminNotes string) error
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const reportSelect = `
	SELECT r.id, r.reporter_id, r.post_id, r.comment_id, r.type, r.details, r.status,
	       r.resolved_at, r.resolved_by, r.admin_notes, r.created_at,
	       u.username AS reporter_username
	FROM reports r
	JOIN users u ON u.id = r.reporter_id
`

// Create creates a new report
func (r *repository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, post_id, comment_id, type, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.ReporterID, rep.PostID, rep.CommentID, rep.Type, rep.Details, rep.Status,
	)
	if err != nil {
		return fmt.Errorf("report repository create: %w", err)
	}
	return nil
}

// GetByID returns a report by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := reportSelect + ` WHERE r.id = $1`

	var rep Report
	err := r.db.GetContext(ctx, &rep, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

// Exists reports whether the reporter already filed a pending report
// against the same target
func (r *repository) Exists(ctx context.Context, reporterID uuid.UUID, postID, commentID uuid.NullUUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reports
			WHERE reporter_id = $1
			  AND post_id IS NOT DISTINCT FROM $2
			  AND comment_id IS NOT DISTINCT FROM $3
			  AND status = 'pending'
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, reporterID, postID, commentID); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns reports matching the filter plus the total count
func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != "" {
		where = ` WHERE r.status = $1`
		args = append(args, filter.Status)
	}

	countQuery := `SELECT COUNT(*) FROM reports r` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		reportSelect+where+` ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d`,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	reports := []*Report{}
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Resolve closes a pending report with a staff decision
func (r *repository) Resolve(ctx context.Context, id, resolvedBy uuid.UUID, status Status, adminNotes string) error {
	query := `
		UPDATE reports
		SET status = $1, resolved_at = NOW(), resolved_by = $2, admin_notes = NULLIF($3, '')
		WHERE id = $4
	`

	_, err := r.db.ExecContext(ctx, query, status, resolvedBy, adminNotes, id)
	return err
}
