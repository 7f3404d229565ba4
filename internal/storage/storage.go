// Package storage keeps processed profile images in an object store bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mentormatch/apiserver/internal/store"
)

const profileImageContentType = "image/jpeg"

// ErrObjectNotFound is returned by backends when a key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Bucket() string
}

// ProfileImageStore stores one JPEG per user under profile-images/{id}.jpg.
type ProfileImageStore struct {
	backend ObjectStorage
}

func NewProfileImageStore(backend ObjectStorage) *ProfileImageStore {
	return &ProfileImageStore{backend: backend}
}

// EnsureBucket ensures the configured bucket exists.
func (s *ProfileImageStore) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Bucket returns the configured bucket name.
func (s *ProfileImageStore) Bucket() string {
	return s.backend.Bucket()
}

func (s *ProfileImageStore) PutProfileImage(ctx context.Context, userID int, image []byte) error {
	key := ProfileImageKey(userID)
	if err := s.backend.Put(ctx, key, bytes.NewReader(image), int64(len(image)), profileImageContentType); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// GetProfileImage returns store.ErrNotFound when no object exists for userID.
func (s *ProfileImageStore) GetProfileImage(ctx context.Context, userID int) ([]byte, error) {
	key := ProfileImageKey(userID)
	rc, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// ProfileImageKey is the object key holding userID's image.
func ProfileImageKey(userID int) string {
	return fmt.Sprintf("profile-images/%d.jpg", userID)
}
