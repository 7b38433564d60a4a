package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kamelth/ocr-to-markdown/internal/config"
	"github.com/kamelth/ocr-to-markdown/internal/handler"
	"github.com/kamelth/ocr-to-markdown/internal/ocr"
	"github.com/kamelth/ocr-to-markdown/internal/ocr/gemini"
	"github.com/kamelth/ocr-to-markdown/internal/ocr/openai"
	"github.com/kamelth/ocr-to-markdown/internal/repository"
	"github.com/kamelth/ocr-to-markdown/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
	engine     ocr.Engine
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	repo, err := newRepository(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob repository: %w", err)
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}

	ocrService := service.NewOcrService(repo, engine, cfg, log)

	h := handler.NewHandler(ocrService, cfg, log)

	router.GET("/", h.GetUI)
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/ocr", handler.BodySizeLimit(cfg.App.MaxUploadSize), h.ProcessImage)
	}

	router.Static("/static", cfg.App.StaticDir)

	server := &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
			// Write timeout has to outlive a full extraction round trip.
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   120 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg:    cfg,
		log:    log,
		engine: engine,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("ocr_provider", cfg.OCR.Provider))

	return server, nil
}

func newRepository(cfg *config.Config, log *zap.Logger) (repository.BlobRepository, error) {
	switch cfg.Storage.Driver {
	case "gcs":
		return repository.NewGCSRepository(context.Background(), &cfg.Storage, log)
	case "s3", "":
		return repository.NewS3Repository(&cfg.Storage, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newEngine(cfg *config.Config) (ocr.Engine, error) {
	switch cfg.OCR.Provider {
	case "gemini":
		return gemini.New(context.Background(), cfg.OCR.APIKey, cfg.OCR.Model, cfg.OCR.MaxTokens)
	case "openai", "":
		return openai.New(cfg.OCR.APIKey, cfg.OCR.Model, cfg.OCR.BaseURL, cfg.OCR.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider %q", cfg.OCR.Provider)
	}
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("host", s.cfg.Server.Host),
		zap.String("port", s.cfg.Server.Port),
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")

	err := s.httpServer.Shutdown(ctx)

	if closer, ok := s.engine.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil {
			s.log.Warn("Failed to close OCR engine", zap.Error(cerr))
		}
	}

	return err
}
