package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamelth/ocr-to-markdown/internal/config"
	"github.com/kamelth/ocr-to-markdown/internal/domain"
	"github.com/kamelth/ocr-to-markdown/internal/service"
	"github.com/kamelth/ocr-to-markdown/pkg/utils"
)

type Handler struct {
	service service.OcrService
	cfg     *config.Config
	log     *zap.Logger
}

func NewHandler(service service.OcrService, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		log:     log,
	}
}

// ProcessImage accepts a multipart upload in the "image" field, runs the
// extraction pipeline and returns the result envelope.
func (h *Handler) ProcessImage(c *gin.Context) {
	reqID := uuid.New().String()

	file, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn("Upload over size limit",
				zap.String("request_id", reqID),
				zap.Int64("limit", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, domain.OcrFailure{
				Success: false,
				Error:   "file too large",
			})
			return
		}

		h.log.Warn("Request without image file",
			zap.String("request_id", reqID),
			zap.Error(err))
		h.respondError(c, service.ErrNoImage)
		return
	}

	data, err := h.readUpload(c, file)
	if err != nil {
		h.log.Error("Failed to read uploaded file",
			zap.String("request_id", reqID),
			zap.String("filename", file.Filename),
			zap.Error(err))
		h.respondError(c, fmt.Errorf("read uploaded file: %w", err))
		return
	}

	image := &domain.UploadedImage{
		Data:        data,
		Filename:    file.Filename,
		ContentType: utils.ResolveContentType(file.Header.Get("Content-Type"), data),
		Size:        int64(len(data)),
	}

	// A started extraction is always finished and stored, even when the
	// client goes away mid-request.
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.service.Extract(ctx, image)
	if err != nil {
		h.log.Error("Extraction request failed",
			zap.String("request_id", reqID),
			zap.String("filename", file.Filename),
			zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.OcrSuccess{
		Success:        true,
		InputFile:      string(result.InputKey),
		OutputFile:     string(result.OutputKey),
		Bucket:         result.Bucket,
		Markdown:       result.Result.Markdown,
		ProcessingTime: result.Result.ProcessingTime(),
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Health{
		Status:    "healthy",
		Service:   "OCR-to-Markdown",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetUI(c *gin.Context) {
	c.File(filepath.Join(h.cfg.App.StaticDir, "index.html"))
}

// readUpload pulls the multipart file into memory. With a spool directory
// configured the upload is staged on disk first and read back; the staged
// copy is removed afterwards, and a failed removal is logged and ignored.
func (h *Handler) readUpload(c *gin.Context, file *multipart.FileHeader) ([]byte, error) {
	if h.cfg.App.SpoolDir == "" {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return io.ReadAll(src)
	}

	// Nanosecond timestamps keep concurrent requests from colliding on a name.
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename))
	path := filepath.Join(h.cfg.App.SpoolDir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			h.log.Warn("Failed to remove spooled upload",
				zap.String("path", path),
				zap.Error(err))
		}
	}()

	return os.ReadFile(path)
}

// respondError converts a pipeline error into the failure envelope. Only a
// missing image is the client's fault; everything else is a 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrNoImage) {
		status = http.StatusBadRequest
	}

	c.JSON(status, domain.OcrFailure{
		Success: false,
		Error:   err.Error(),
	})
}
