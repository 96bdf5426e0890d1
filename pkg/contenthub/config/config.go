package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
	"github.com/arun100-dev/ContentHub/pkg/contenthub/repo/memory"
	repopg "github.com/arun100-dev/ContentHub/pkg/contenthub/repo/postgres"
	fsstorage "github.com/arun100-dev/ContentHub/pkg/contenthub/storage/fs"
	memorystorage "github.com/arun100-dev/ContentHub/pkg/contenthub/storage/memory"
	s3storage "github.com/arun100-dev/ContentHub/pkg/contenthub/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		AssetStore: AssetStoreConfig{
			Type:      "fs",
			UploadDir: "./data/uploads",
			URLPrefix: "/uploads",
		},
		JWTSecret: "contenthub-dev-secret",
	}
}

// ServerConfig represents server configuration for the ContentHub service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Asset store configuration
	AssetStore AssetStoreConfig

	// Principal verification secret (HS256)
	JWTSecret string
}

// AssetStoreConfig represents configuration for the asset store backend
type AssetStoreConfig struct {
	Type      string // "memory", "fs", "s3"
	UploadDir string // fs only
	URLPrefix string
	S3        S3Config
}

// S3Config carries S3 backend settings
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.AssetStore.Type {
	case "memory":
	case "fs":
		if c.AssetStore.UploadDir == "" {
			return errors.New("upload_dir is required for the fs asset store")
		}
	case "s3":
		if c.AssetStore.S3.Bucket == "" {
			return errors.New("bucket is required for the s3 asset store")
		}
	default:
		return fmt.Errorf("unsupported asset store type: %s", c.AssetStore.Type)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (contenthub.Service, error) {
	repo, err := c.BuildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.BuildAssetStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build asset store: %w", err)
	}

	return contenthub.New(
		contenthub.WithRepository(repo),
		contenthub.WithAssetStore(store),
	)
}

// BuildRepository creates a Repository based on the configuration
func (c *ServerConfig) BuildRepository() (contenthub.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// BuildAssetStore creates the configured AssetStore backend. Exposed so the
// server can reuse the same backend for static serving of uploads.
func (c *ServerConfig) BuildAssetStore() (contenthub.AssetStore, error) {
	switch c.AssetStore.Type {
	case "memory":
		return memorystorage.New(), nil

	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.AssetStore.UploadDir,
			URLPrefix: c.AssetStore.URLPrefix,
		})

	case "s3":
		return s3storage.New(s3storage.Config{
			Region:          c.AssetStore.S3.Region,
			Bucket:          c.AssetStore.S3.Bucket,
			AccessKeyID:     c.AssetStore.S3.AccessKeyID,
			SecretAccessKey: c.AssetStore.S3.SecretAccessKey,
			Endpoint:        c.AssetStore.S3.Endpoint,
			UsePathStyle:    c.AssetStore.S3.UsePathStyle,
			URLPrefix:       c.AssetStore.URLPrefix,
		})

	default:
		return nil, fmt.Errorf("unsupported asset store type: %s", c.AssetStore.Type)
	}
}
