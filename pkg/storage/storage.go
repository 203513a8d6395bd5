package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrNotFound is returned by Open when the object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidName is returned for names that would escape the storage root.
var ErrInvalidName = errors.New("storage: invalid object name")

// ResumeStorage persists uploaded résumés by their final filename.
type ResumeStorage interface {
	// Save writes r under name, replacing any existing object.
	Save(ctx context.Context, name, contentType string, r io.Reader) error
	// Open returns the object's content and content type.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// cleanName rejects anything that is not a single path element.
func cleanName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	if path.Clean(name) != name {
		return "", ErrInvalidName
	}
	return name, nil
}
