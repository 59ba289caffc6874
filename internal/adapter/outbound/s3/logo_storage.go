package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/warewise/server/internal/domain/organization"
)

// Config holds S3-compatible object storage configuration. An empty Bucket
// disables the store.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL is the base URL objects are served from (CDN or bucket
	// website endpoint).
	PublicBaseURL string
}

// IsConfigured reports whether the store can be used.
func (c *Config) IsConfigured() bool {
	return c != nil && c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// LogoStore implements organization.LogoStore on S3-compatible storage.
type LogoStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewLogoStore creates a new logo store.
func NewLogoStore(cfg *Config) (*LogoStore, error) {
	if !cfg.IsConfigured() {
		return nil, errors.New("incomplete object storage configuration")
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &LogoStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Put stores logo bytes under a stable per-organization key and returns the
// public URL. Re-uploading overwrites the previous logo.
func (s *LogoStore) Put(ctx context.Context, orgID uuid.UUID, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("logos/%s%s", orgID, extensionFor(contentType))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put logo object: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}

// Compile-time check
var _ organization.LogoStore = (*LogoStore)(nil)
