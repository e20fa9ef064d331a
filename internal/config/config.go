package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBURL         string
	HTTPPort      string
	SessionSecret string
	UploadDir     string
	TemplatesDir  string
}

func Load() (*Config, error) {
	// .env is optional outside docker-compose
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:         os.Getenv("DB_URL"),        // e.g., postgres://user:pass@db:5432/hrmdb
		HTTPPort:      os.Getenv("HTTP_PORT"),     // e.g., :8080
		SessionSecret: os.Getenv("SESSION_SECRET"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),    // e.g., uploads
		TemplatesDir:  os.Getenv("TEMPLATES_DIR"), // e.g., templates
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = ":8080"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "super-secret-key"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "templates"
	}
	return cfg, nil
}
