package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3BlobStore stores images in an S3-compatible bucket (MinIO works via the
// custom base endpoint) and returns durable public URLs.
type S3BlobStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

func NewS3BlobStore(ctx context.Context, opts S3Options) (*S3BlobStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := strings.TrimRight(opts.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("%s/%s", strings.TrimRight(opts.Endpoint, "/"), opts.Bucket)
	}

	return &S3BlobStore{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: publicURL,
	}, nil
}

func (s *S3BlobStore) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	key := storageKey(folder)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

func storageKey(folder string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%v", folder, now.Year(), now.Month(), uuid.New())
}

// PlaceholderBlobStore stands in when no object store is configured; uploads
// succeed and resolve to a placeholder URL.
type PlaceholderBlobStore struct{}

func (PlaceholderBlobStore) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	return "/api/placeholder/400/300", nil
}
