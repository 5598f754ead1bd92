// Package storage persists uploaded media (event covers, profile avatars) in
// S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"eventify/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultAvatarURL is served for profiles that never uploaded an avatar.
const DefaultAvatarURL = "https://res.cloudinary.com/eventify/image/upload/default_profile.jpg"

// ObjectStore is a thin wrapper around a MinIO client scoped to one bucket.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to the configured endpoint and ensures the bucket exists.
func New(cfg *config.Config) (*ObjectStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.StorageBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.StorageBucket, err)
		}
	}

	return &ObjectStore{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: strings.TrimRight(cfg.StoragePublicURL, "/"),
	}, nil
}

// Put stores the object under a fresh key in the given folder and returns the key.
func (s *ObjectStore) Put(ctx context.Context, folder string, r io.Reader, size int64, contentType string) (string, error) {
	ext := extensionFor(contentType)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store object %q: %w", key, err)
	}
	return key, nil
}

// Remove deletes the object. Missing objects are not an error.
func (s *ObjectStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// URL resolves a stored key to its public URL. Empty keys resolve to "".
func (s *ObjectStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + key
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
