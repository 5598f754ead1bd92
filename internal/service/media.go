package service

import (
	"context"
	"io"

	"eventify/internal/models"
)

// ObjectStorage is the slice of the storage layer the services need.
type ObjectStorage interface {
	Put(ctx context.Context, folder string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

const maxUploadBytes = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// validateUpload rejects oversized and non-image payloads before anything is
// written to storage.
func validateUpload(size int64, contentType string) error {
	if size <= 0 {
		return models.NewValidationError("Upload is empty")
	}
	if size > maxUploadBytes {
		return models.NewValidationError("Upload too large (max 5 MiB)")
	}
	if !allowedImageTypes[contentType] {
		return models.NewValidationError("Unsupported image type (jpeg, png, webp)")
	}
	return nil
}
