package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage stores uploaded photos under slash-separated keys such as
// "attendance/2024-05-01/<id>-checkin.jpg".
type FileStorage interface {
	// Upload writes file under key and returns the cleaned key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is idempotent; a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL is the public address the file is served from.
	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}
