// Package storage keeps uploaded resume files, on local disk or in MinIO.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("storage: object not found")

// ResumeStore saves and reads back resume files by key.
type ResumeStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// NewKey returns a unique object key that keeps the original file extension.
func NewKey(userID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return "resumes/" + strconv.FormatUint(uint64(userID), 10) + "/" + uuid.NewString() + ext
}
