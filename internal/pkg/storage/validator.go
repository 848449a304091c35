package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// AllowedMimeTypes maps upload categories to acceptable MIME types,
// detected from content rather than trusted from the file name.
var AllowedMimeTypes = map[string][]string{
	"avatar": {"image/jpeg", "image/png", "image/gif", "image/webp"},
	"attachment": {
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"application/pdf", "application/zip", "text/plain; charset=utf-8", "text/plain",
	},
}

// ValidateFile reads and validates an upload's size and MIME type for a
// category. Returns the file bytes and the detected MIME type.
func ValidateFile(reader io.Reader, category string, maxSize int64) ([]byte, string, error) {
	// Read maxSize+1 so oversized files are detectable without unbounded reads
	limitedReader := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}

	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	allowedTypes, ok := AllowedMimeTypes[category]
	if !ok {
		return nil, "", fmt.Errorf("unknown category: %s", category)
	}

	for _, t := range allowedTypes {
		if t == mimeType || strings.HasPrefix(t, mimeType) {
			return data, mimeType, nil
		}
	}

	return nil, "", ErrInvalidMimeType
}
