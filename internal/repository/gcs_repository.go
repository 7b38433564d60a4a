package repository

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/kamelth/ocr-to-markdown/internal/config"
)

type gcsRepository struct {
	client *storage.Client
	cfg    *config.StorageConfig
	log    *zap.Logger
}

// NewGCSRepository builds a Google Cloud Storage blob store using application
// default credentials.
func NewGCSRepository(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (BlobRepository, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	repo := &gcsRepository{
		client: client,
		cfg:    cfg,
		log:    log,
	}

	if cfg.Bucket != "" && cfg.GCSProjectID != "" {
		if err := repo.ensureBucketExists(ctx); err != nil {
			log.Warn("Failed to ensure bucket exists", zap.Error(err))
		}
	}

	return repo, nil
}

func (r *gcsRepository) ensureBucketExists(ctx context.Context) error {
	_, err := r.client.Bucket(r.cfg.Bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return err
	}

	r.log.Info("Creating bucket", zap.String("bucket", r.cfg.Bucket))
	return r.client.Bucket(r.cfg.Bucket).Create(ctx, r.cfg.GCSProjectID, nil)
}

func (r *gcsRepository) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	w := r.client.Bucket(r.cfg.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		r.log.Error("Failed to upload object",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	if err := w.Close(); err != nil {
		r.log.Error("Failed to upload object",
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	r.log.Info("Object uploaded",
		zap.String("key", key),
		zap.Int64("size", size),
		zap.String("content_type", contentType))

	return nil
}
