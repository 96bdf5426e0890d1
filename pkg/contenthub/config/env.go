package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig is the environment surface of the server, read with cleanenv.
//
//	PORT          - server port (default "8080")
//	ENVIRONMENT   - runtime environment (default "development")
//	DATABASE_URL  - "memory" or a postgres:// / postgresql:// URL
//	STORAGE_URL   - "memory://", "file:///path/to/uploads", or "s3://bucket"
//	UPLOAD_URL_PREFIX - prefix of stored references (default "/uploads")
//	JWT_SECRET    - HS256 secret for principal verification
//
// S3 credentials come from the standard AWS_* variables.
type envConfig struct {
	Port            string `env:"PORT" env-default:""`
	Environment     string `env:"ENVIRONMENT" env-default:""`
	DatabaseURL     string `env:"DATABASE_URL" env-default:""`
	StorageURL      string `env:"STORAGE_URL" env-default:""`
	URLPrefix       string `env:"UPLOAD_URL_PREFIX" env-default:""`
	JWTSecret       string `env:"JWT_SECRET" env-default:""`
	AWSRegion       string `env:"AWS_REGION" env-default:"us-east-1"`
	AWSEndpoint     string `env:"AWS_S3_ENDPOINT" env-default:""`
	AWSAccessKey    string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	AWSSecretKey    string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	AWSUsePathStyle bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
}

// WithEnv applies environment variable overrides on top of defaults.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var e envConfig
		if err := cleanenv.ReadEnv(&e); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		if e.Port != "" {
			c.Port = e.Port
		}
		if e.Environment != "" {
			c.Environment = e.Environment
		}
		if e.URLPrefix != "" {
			c.AssetStore.URLPrefix = e.URLPrefix
		}
		if e.JWTSecret != "" {
			c.JWTSecret = e.JWTSecret
		}

		if err := applyDatabaseEnv(e, c); err != nil {
			return err
		}

		return applyStorageEnv(e, c)
	}
}

func applyDatabaseEnv(e envConfig, c *ServerConfig) error {
	switch {
	case e.DatabaseURL == "" || e.DatabaseURL == "memory":
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
	case strings.HasPrefix(e.DatabaseURL, "postgres://"),
		strings.HasPrefix(e.DatabaseURL, "postgresql://"):
		c.DatabaseType = "postgres"
		c.DatabaseURL = e.DatabaseURL
	default:
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", e.DatabaseURL)
	}
	return nil
}

func applyStorageEnv(e envConfig, c *ServerConfig) error {
	switch {
	case e.StorageURL == "":
		// Keep the configured default.
	case e.StorageURL == "memory" || e.StorageURL == "memory://":
		c.AssetStore.Type = "memory"
	case strings.HasPrefix(e.StorageURL, "file://"):
		dir := strings.TrimPrefix(e.StorageURL, "file://")
		if dir == "" {
			return fmt.Errorf("filesystem path cannot be empty in STORAGE_URL")
		}
		c.AssetStore.Type = "fs"
		c.AssetStore.UploadDir = dir
	case strings.HasPrefix(e.StorageURL, "s3://"):
		bucket := strings.TrimPrefix(e.StorageURL, "s3://")
		if i := strings.IndexByte(bucket, '?'); i >= 0 {
			bucket = bucket[:i]
		}
		if bucket == "" {
			return fmt.Errorf("S3 bucket name cannot be empty in STORAGE_URL")
		}
		c.AssetStore.Type = "s3"
		c.AssetStore.S3 = S3Config{
			Bucket:          bucket,
			Region:          e.AWSRegion,
			Endpoint:        e.AWSEndpoint,
			AccessKeyID:     e.AWSAccessKey,
			SecretAccessKey: e.AWSSecretKey,
			UsePathStyle:    e.AWSUsePathStyle,
		}
	default:
		return fmt.Errorf("unsupported STORAGE_URL format: %s (use 'memory://', 'file://...', or 's3://...')", e.StorageURL)
	}
	return nil
}
