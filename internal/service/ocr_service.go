package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kamelth/ocr-to-markdown/internal/config"
	"github.com/kamelth/ocr-to-markdown/internal/domain"
	"github.com/kamelth/ocr-to-markdown/internal/ocr"
	"github.com/kamelth/ocr-to-markdown/internal/repository"
)

// NoTextPlaceholder is written as the markdown body when the engine finds no
// recognizable text in the image. The request still succeeds.
const NoTextPlaceholder = "No text extracted"

var (
	ErrNoImage       = errors.New("no image file provided")
	ErrMissingAPIKey = errors.New("OCR API key is not configured")
	ErrMissingBucket = errors.New("storage bucket is not configured")
)

type OcrService interface {
	Extract(ctx context.Context, image *domain.UploadedImage) (*domain.Extraction, error)
}

type ocrService struct {
	repo   repository.BlobRepository
	engine ocr.Engine
	cfg    *config.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewOcrService(repo repository.BlobRepository, engine ocr.Engine, cfg *config.Config, log *zap.Logger) OcrService {
	return &ocrService{
		repo:   repo,
		engine: engine,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Extract runs the full pipeline: validate, store the original image, run the
// engine, store the markdown next to it. Validation failures return before
// anything is written. A failure after the image upload leaves the image in
// the bucket on purpose; partial inputs are kept for inspection.
func (s *ocrService) Extract(ctx context.Context, image *domain.UploadedImage) (*domain.Extraction, error) {
	if err := s.validate(image); err != nil {
		return nil, err
	}

	key := domain.NewStorageKey(s.now(), image.Filename)

	s.log.Info("Processing image",
		zap.String("filename", image.Filename),
		zap.String("key", string(key)),
		zap.Int64("size", image.Size),
		zap.String("engine", s.engine.Name()))

	if err := s.repo.Upload(ctx, string(key), bytes.NewReader(image.Data), image.Size, image.ContentType); err != nil {
		return nil, fmt.Errorf("upload image to storage: %w", err)
	}

	started := s.now()
	markdown, err := s.engine.ExtractMarkdown(ctx, image.Data, image.ContentType)
	if err != nil {
		s.log.Error("Extraction failed",
			zap.String("key", string(key)),
			zap.Error(err))
		return nil, fmt.Errorf("extract text: %w", err)
	}
	elapsed := s.now().Sub(started)

	if strings.TrimSpace(markdown) == "" {
		s.log.Warn("No text recognized in image", zap.String("key", string(key)))
		markdown = NoTextPlaceholder
	}

	mdKey := key.Markdown()
	if err := s.repo.Upload(ctx, string(mdKey), strings.NewReader(markdown), int64(len(markdown)), "text/markdown"); err != nil {
		return nil, fmt.Errorf("upload markdown to storage: %w", err)
	}

	s.log.Info("Extraction complete",
		zap.String("input", string(key)),
		zap.String("output", string(mdKey)),
		zap.Int("markdown_len", len(markdown)),
		zap.Duration("elapsed", elapsed))

	return &domain.Extraction{
		InputKey:  key,
		OutputKey: mdKey,
		Bucket:    s.cfg.Storage.Bucket,
		Result: domain.OcrResult{
			Markdown: markdown,
			Elapsed:  elapsed,
		},
	}, nil
}

// validate rejects a request before any storage or provider call is made.
// Checks run in a fixed order: missing file first, then credential, then
// bucket.
func (s *ocrService) validate(image *domain.UploadedImage) error {
	if image == nil || len(image.Data) == 0 {
		return ErrNoImage
	}
	if s.cfg.OCR.APIKey == "" {
		return ErrMissingAPIKey
	}
	if s.cfg.Storage.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}
