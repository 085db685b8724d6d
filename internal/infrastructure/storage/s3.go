package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/baechuer/skillmarket/internal/config"
	"github.com/baechuer/skillmarket/internal/domain"
)

// S3Avatars presigns browser uploads into an S3-compatible bucket (AWS, MinIO, R2).
type S3Avatars struct {
	presigner  *s3.PresignClient
	bucket     string
	publicBase string
	ttl        time.Duration
}

func NewS3Avatars(ctx context.Context, cfg appconfig.S3Config) (*S3Avatars, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &S3Avatars{
		presigner:  s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		publicBase: publicBase(cfg),
		ttl:        ttl,
	}, nil
}

// publicBase picks where uploaded objects are readable from.
func publicBase(cfg appconfig.S3Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

func (s *S3Avatars) PresignPut(ctx context.Context, key, contentType string) (string, time.Duration, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", 0, domain.Wrap(domain.KindInfrastructure, "presign_failed", "could not prepare upload", err)
	}
	return req.URL, s.ttl, nil
}

func (s *S3Avatars) PublicURL(key string) string {
	return s.publicBase + "/" + key
}
