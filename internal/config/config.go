package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	OCR     OCRConfig
	App     AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

// StorageConfig selects and configures the object-store backend. Bucket is
// deliberately allowed to be empty here: the pipeline validates it per
// request so a missing value surfaces as an API error, not a crash at boot.
type StorageConfig struct {
	Driver          string // "s3" or "gcs"
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	GCSProjectID    string
}

// OCRConfig configures the vision-language inference engine. APIKey follows
// the same request-time validation rule as the bucket.
type OCRConfig struct {
	Provider  string // "openai" or "gemini"
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

type AppConfig struct {
	MaxUploadSize int64
	SpoolDir      string // when set, uploads are staged to disk before processing
	StaticDir     string
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("STORAGE_DRIVER", "s3")
	viper.SetDefault("S3_BUCKET_NAME", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_USE_SSL", false)
	viper.SetDefault("GCS_PROJECT_ID", "")
	viper.SetDefault("OCR_PROVIDER", "openai")
	viper.SetDefault("OCR_API_KEY", "")
	viper.SetDefault("OCR_MODEL", "gpt-4o-mini")
	viper.SetDefault("OCR_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OCR_MAX_TOKENS", 4096)
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 10*1024*1024) // 10 MiB
	viper.SetDefault("APP_SPOOL_DIR", "")
	viper.SetDefault("APP_STATIC_DIR", "./web/static")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		Storage: StorageConfig{
			Driver:          viper.GetString("STORAGE_DRIVER"),
			Bucket:          viper.GetString("S3_BUCKET_NAME"),
			Region:          viper.GetString("S3_REGION"),
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          viper.GetBool("S3_USE_SSL"),
			GCSProjectID:    viper.GetString("GCS_PROJECT_ID"),
		},
		OCR: OCRConfig{
			Provider:  viper.GetString("OCR_PROVIDER"),
			APIKey:    viper.GetString("OCR_API_KEY"),
			Model:     viper.GetString("OCR_MODEL"),
			BaseURL:   viper.GetString("OCR_BASE_URL"),
			MaxTokens: viper.GetInt("OCR_MAX_TOKENS"),
		},
		App: AppConfig{
			MaxUploadSize: viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
			SpoolDir:      viper.GetString("APP_SPOOL_DIR"),
			StaticDir:     viper.GetString("APP_STATIC_DIR"),
		},
	}

	if cfg.App.SpoolDir != "" {
		if err := os.MkdirAll(cfg.App.SpoolDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create spool directory %s: %w", cfg.App.SpoolDir, err)
		}
	}

	return cfg, nil
}
