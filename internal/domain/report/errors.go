package report

import "errors"

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrTargetRequired    = errors.New("exactly one report target is required")
	ErrTargetNotFound    = errors.New("report target not found")
	ErrAlreadyResolved   = errors.New("report already resolved")
	ErrAlreadyReported   = errors.New("you already reported this content")
	ErrCannotReportOwn   = errors.New("cannot report your own content")
	ErrInvalidReportType = errors.New("invalid report type")
)
