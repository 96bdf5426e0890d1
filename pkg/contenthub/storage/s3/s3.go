package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (MinIO compatibility)
	URLPrefix       string // URL prefix of returned references (default "/uploads")
}

// Backend is an S3-compatible implementation of the contenthub.AssetStore
// interface. References follow the same "<prefix>/<unixMilli>-<name>" shape
// as the filesystem backend; the object key is the stored name.
type Backend struct {
	client    *s3.Client
	bucket    string
	urlPrefix string
}

// New creates a new S3-compatible asset store
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.URLPrefix == "" {
		config.URLPrefix = "/uploads"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return &Backend{
		client:    s3.NewFromConfig(awsCfg, s3Options...),
		bucket:    config.Bucket,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

// Store uploads the bytes under a time-derived object key and returns the
// reference path.
func (b *Backend) Store(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), path.Base(originalFilename))

	uploader := manager.NewUploader(b.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
		Body:   r,
	})
	if err != nil {
		return "", &contenthub.StorageError{Store: "s3", Key: name, Op: "store", Err: err}
	}

	return b.urlPrefix + "/" + name, nil
}

// Open returns the stored bytes for a reference previously returned by Store.
func (b *Backend) Open(ctx context.Context, storedRef string) (io.ReadCloser, error) {
	name := path.Base(storedRef)

	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, contenthub.ErrAssetNotFound
		}
		return nil, &contenthub.StorageError{Store: "s3", Key: name, Op: "open", Err: err}
	}

	return result.Body, nil
}

// Delete removes a stored asset from the bucket.
func (b *Backend) Delete(ctx context.Context, storedRef string) error {
	name := path.Base(storedRef)

	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return &contenthub.StorageError{Store: "s3", Key: name, Op: "delete", Err: err}
	}

	return nil
}
