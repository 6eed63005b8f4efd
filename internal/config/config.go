package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string `env:"PORT,notEmpty"`
	JwtSecret string `env:"JWT_SECRET,notEmpty"`
	DbURL     string `env:"DATABASE_URL,notEmpty"`

	JwtIssuer  string        `env:"JWT_ISSUER" envDefault:"doc-analysis-api"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`

	// ResourcesRequireAuth puts the placeholder resource routes behind
	// bearer-token authentication.
	ResourcesRequireAuth bool `env:"RESOURCES_REQUIRE_AUTH" envDefault:"false"`

	// CORSAllowedOrigins applies to the /api/v1 routes only.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	Storage StorageConfig
}

// StorageConfig holds the S3 object store settings. The store is disabled
// when Bucket is empty.
type StorageConfig struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	Bucket          string `env:"AWS_S3_BUCKET"`
	// Endpoint overrides the AWS endpoint for S3-compatible servers (MinIO).
	Endpoint string `env:"AWS_S3_ENDPOINT"`
}

func (s StorageConfig) Enabled() bool { return s.Bucket != "" }

// Load reads the configuration from a .env file or environment variables and returns a Config struct.
// It returns an error if any required variable is missing.
func Load() (*Config, error) {
	// Try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
