package storage

import (
	"context"
	"fmt"
	"io"

	appconfig "botpanel-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps media in an S3-compatible bucket (R2 in production).
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds the store from the S3 section of the config.
func NewS3Store(cfg *appconfig.Config) (*S3Store, error) {
	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3.AccessKey,
			cfg.S3.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
		}
	})

	return &S3Store{client: client, bucket: cfg.S3.Bucket}, nil
}

func (s *S3Store) Save(ctx context.Context, filename, contentType string, data io.Reader) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("invalid filename: %q", filename)
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String("uploads/" + filename),
		Body:        data,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3Store) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	if !ValidFilename(filename) {
		return nil, fmt.Errorf("invalid filename: %q", filename)
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("uploads/" + filename),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
