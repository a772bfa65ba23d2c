// Package blob stores uploaded photos in S3 and hands back publicly
// resolvable URLs.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type IStorage interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string)
}

// S3Storage uploads blobs to a single bucket. Keys are deterministic per
// owner so profile pictures overwrite themselves and request photos never
// collide.
type S3Storage struct {
	client *s3.Client
	bucket string
	region string
	log    *slog.Logger
}

func NewS3Storage(ctx context.Context, bucket, region string, log *slog.Logger) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		log:    log,
	}, nil
}

// Upload stores the blob and returns its public URL. An empty contentType is
// sniffed from the payload rather than trusted from the client.
func (s *S3Storage) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = mimetype.Detect(body).String()
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload of %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// DeleteByPrefix removes every object under prefix. Cleanup is best effort:
// failures are logged and never surfaced, so a broken bucket cannot block
// the deletion that triggered it.
func (s *S3Storage) DeleteByPrefix(ctx context.Context, prefix string) {
	listed, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		s.log.Error("listing objects for cleanup failed", "prefix", prefix, "error", err)
		return
	}
	if len(listed.Contents) == 0 {
		return
	}

	deleted := 0
	for _, obj := range listed.Contents {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    obj.Key,
		})
		if err != nil {
			s.log.Error("object cleanup failed", "key", aws.ToString(obj.Key), "error", err)
			continue
		}
		deleted++
	}
	s.log.Info("deleted stored photos", "prefix", prefix, "count", deleted)
}

// ProfilePictureKey keeps one picture per user; re-uploading replaces it.
func ProfilePictureKey(userID, filename string) string {
	return fmt.Sprintf("profile-pictures/%s%s", userID, ext(filename))
}

// RequestPhotoKey gives each photo of a request a unique suffix so multiple
// uploads for the same request never overwrite each other. The shared
// "requests/{id}/" prefix is what DeleteByPrefix sweeps on request deletion.
func RequestPhotoKey(requestID, userID, filename string) string {
	unique := fmt.Sprintf("%s_%d_%s", userID, time.Now().UnixMilli(), uuid.New().String()[:8])
	return fmt.Sprintf("requests/%s/%s%s", requestID, unique, ext(filename))
}

// RequestPhotoPrefix is the cleanup prefix for all photos of one request.
func RequestPhotoPrefix(requestID string) string {
	return fmt.Sprintf("requests/%s/", requestID)
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
