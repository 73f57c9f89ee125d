package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/avibn/lanten-sub001/internal/config"
	"github.com/avibn/lanten-sub001/internal/utils"
)

// BlobStore abstracts the object storage used for property images and
// lease documents. Keys are opaque; callers persist them alongside the
// owning row.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error

	// TemporaryURL returns a presigned GET URL; blobs are never
	// publicly readable.
	TemporaryURL(ctx context.Context, key string) (string, error)
}

type s3BlobStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewS3BlobStore(cfg *config.Config) (BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &s3BlobStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
		expiry:  cfg.BlobURLExpiry,
	}, nil
}

func (b *s3BlobStore) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &b.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upload blob: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}

func (b *s3BlobStore) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete blob: %v", utils.ErrExternalServiceFailure, err)
	}
	return nil
}

func (b *s3BlobStore) TemporaryURL(ctx context.Context, key string) (string, error) {
	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &b.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(b.expiry))
	if err != nil {
		return "", fmt.Errorf("%w: failed to presign blob URL: %v", utils.ErrExternalServiceFailure, err)
	}
	return req.URL, nil
}
