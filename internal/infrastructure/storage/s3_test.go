package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/baechuer/skillmarket/internal/config"
)

func minioConfig() appconfig.S3Config {
	return appconfig.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		Bucket:          "avatars",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		UsePathStyle:    true,
		PresignTTL:      10 * time.Minute,
	}
}

func TestS3Avatars_PresignPut(t *testing.T) {
	s, err := NewS3Avatars(context.Background(), minioConfig())
	require.NoError(t, err)

	raw, ttl, err := s.PresignPut(context.Background(), "avatars/u1/abc.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, ttl)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/avatars/avatars/u1/abc.png"), "path-style url, got %s", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3Avatars_PublicURL(t *testing.T) {
	cfg := minioConfig()

	s, err := NewS3Avatars(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/avatars/k.png", s.PublicURL("k.png"))

	cfg.PublicBaseURL = "https://cdn.example.com/"
	s, err = NewS3Avatars(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/k.png", s.PublicURL("k.png"))

	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com",
		publicBase(appconfig.S3Config{Bucket: "b", Region: "eu-west-1"}))
}
