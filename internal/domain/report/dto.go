package report

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest represents create report request. Exactly one of
// PostID and CommentID must be set.
type CreateReportRequest struct {
	PostID    *uuid.UUID `json:"post_id" validate:"omitempty"`
	CommentID *uuid.UUID `json:"comment_id" validate:"omitempty"`
	Type      string     `json:"type" validate:"required,report_type"`
	Details   string     `json:"details" validate:"omitempty,max=1000"`
}

// ResolveReportRequest represents staff resolution request
type ResolveReportRequest struct {
	AdminNotes string `json:"admin_notes" validate:"omitempty,max=1000"`
}

// ListFilter narrows the staff report listing
type ListFilter struct {
	Status string
	Page   int
	Limit  int
}

// Normalize clamps pagination values
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

// Offset returns the SQL offset for the filter
func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID               uuid.UUID  `json:"id"`
	ReporterID       uuid.UUID  `json:"reporter_id"`
	ReporterUsername string     `json:"reporter_username"`
	PostID           *uuid.UUID `json:"post_id,omitempty"`
	CommentID        *uuid.UUID `json:"comment_id,omitempty"`
	Type             Type       `json:"type"`
	Details          string     `json:"details,omitempty"`
	Status           Status     `json:"status"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy       *uuid.UUID `json:"resolved_by,omitempty"`
	AdminNotes       string     `json:"admin_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewReportResponse converts entity to response
func NewReportResponse(r *Report) ReportResponse {
	resp := ReportResponse{
		ID:               r.ID,
		ReporterID:       r.ReporterID,
		ReporterUsername: r.ReporterUsername,
		Type:             r.Type,
		Details:          r.Details,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
	}
	if r.PostID.Valid {
		resp.PostID = &r.PostID.UUID
	}
	if r.CommentID.Valid {
		resp.CommentID = &r.CommentID.UUID
	}
	if r.ResolvedAt.Valid {
		resp.ResolvedAt = &r.ResolvedAt.Time
	}
	if r.ResolvedBy.Valid {
		resp.ResolvedBy = &r.ResolvedBy.UUID
	}
	if r.AdminNotes.Valid {
		resp.AdminNotes = r.AdminNotes.String
	}
	return resp
}
