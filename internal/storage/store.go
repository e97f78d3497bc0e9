// Package storage provides the external image store used for profile
// pictures.
package storage

import (
	"context"
	"errors"
	"io"
)

// ImageStore uploads an image and returns its public URL.
type ImageStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// ErrNotConfigured is returned when no upload provider is configured.
var ErrNotConfigured = errors.New("storage: image store not configured")

// Disabled is the ImageStore installed when no provider is configured.
type Disabled struct{}

// Upload always fails with ErrNotConfigured.
func (Disabled) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}
