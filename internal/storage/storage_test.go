package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentormatch/apiserver/internal/store"
)

type fakeBackend struct {
	objects      map[string][]byte
	contentTypes map[string]string
	getErr       error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeBackend) EnsureBucket(context.Context) error { return nil }

func (f *fakeBackend) Put(_ context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return errors.New("size mismatch")
	}
	f.objects[key] = data
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeBackend) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBackend) Bucket() string { return "test-bucket" }

func TestProfileImageStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	images := NewProfileImageStore(backend)

	_, err := images.GetProfileImage(ctx, 7)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, images.PutProfileImage(ctx, 7, []byte("jpeg-bytes")))
	assert.Equal(t, "image/jpeg", backend.contentTypes["profile-images/7.jpg"])

	data, err := images.GetProfileImage(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, "test-bucket", images.Bucket())
}

func TestProfileImageStoreBackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.getErr = errors.New("connection refused")
	images := NewProfileImageStore(backend)

	_, err := images.GetProfileImage(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestProfileImageKey(t *testing.T) {
	assert.Equal(t, "profile-images/42.jpg", ProfileImageKey(42))
}
