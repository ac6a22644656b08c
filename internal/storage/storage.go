// Package storage persists uploaded media. Local disk is the default;
// an S3-compatible bucket (R2) is used when configured.
package storage

import (
	"context"
	"io"
	"regexp"
)

// MediaStore saves uploaded files under a flat, validated filename.
type MediaStore interface {
	Save(ctx context.Context, filename string, contentType string, data io.Reader) error
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
}

var validFilename = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidFilename reports whether a client-supplied filename is safe to
// touch: a single flat path element, no separators, no dot-dot.
func ValidFilename(name string) bool {
	if name == "" || len(name) > 200 {
		return false
	}
	return validFilename.MatchString(name)
}
