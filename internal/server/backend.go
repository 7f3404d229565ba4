package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentormatch/apiserver/config"
	"github.com/mentormatch/apiserver/internal/db"
	"github.com/mentormatch/apiserver/internal/services"
	"github.com/mentormatch/apiserver/internal/storage"
	"github.com/mentormatch/apiserver/internal/store"
	"github.com/mentormatch/apiserver/internal/store/memory"
)

// Backend bundles the repositories selected by configuration. Images is nil
// when profile images live in the user store.
type Backend struct {
	Users    services.UserRepository
	Requests services.MatchRequestRepository
	Admin    services.ResetRepository
	Images   services.ImageStore

	closers []func() error
}

// OpenBackend connects the configured store and image backends. For PostgreSQL
// the embedded schema is applied before any repository is handed out.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	b := &Backend{}

	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		mem := memory.New()
		b.Users, b.Requests, b.Admin = mem.Users(), mem.MatchRequests(), mem.Admin()
	case config.StoreBackendPostgres, "":
		if err := db.EnsureSchema(cfg.Database); err != nil {
			return nil, err
		}
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, conn.Close)
		b.Users = store.NewUserRepository(conn)
		b.Requests = store.NewMatchRequestRepository(conn)
		b.Admin = store.NewAdminRepository(conn)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	images, closeImages, err := openImageStore(ctx, cfg)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if images != nil {
		b.Images = images
	}
	if closeImages != nil {
		b.closers = append(b.closers, closeImages)
	}
	return b, nil
}

// openImageStore returns nil when images live alongside users in the store.
func openImageStore(ctx context.Context, cfg config.Config) (*storage.ProfileImageStore, func() error, error) {
	var (
		backend storage.ObjectStorage
		closer  func() error
	)
	switch cfg.ImageBackend {
	case config.ImageBackendDatabase, "":
		return nil, nil, nil
	case config.ImageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, nil, fmt.Errorf("init minio: %w", err)
		}
		backend = client
	case config.ImageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, nil, fmt.Errorf("init gcs: %w", err)
		}
		backend, closer = client, client.Close
	default:
		return nil, nil, fmt.Errorf("unknown image backend %q", cfg.ImageBackend)
	}

	images := storage.NewProfileImageStore(backend)
	if err := images.EnsureBucket(ctx); err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, nil, fmt.Errorf("ensure bucket %s: %w", images.Bucket(), err)
	}
	return images, closer, nil
}

// Close releases every connection opened by OpenBackend.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}
