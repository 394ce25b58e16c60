// Package media delegates profile image storage to S3. The backend never
// touches image bytes: clients upload directly through a presigned URL and
// the backend only persists the resulting public URL and object key.
package media

import (
	"context"
	"fmt"
	"time"

	appconfig "heartlink/backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 5 * time.Minute

// Service wraps the S3 operations the profile image flow needs.
type Service struct {
	client *s3.Client
	bucket string
	region string
}

// NewService builds an S3-backed media service from app config.
func NewService(ctx context.Context, cfg *appconfig.Config) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Service{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}, nil
}

// PresignUpload generates a presigned PUT URL for a new profile image.
// Returns the URL the client uploads to, the object key to persist as the
// deletable handle, and the public URL the image will be served from.
func (s *Service) PresignUpload(ctx context.Context, fileName, fileType string) (uploadURL, key, publicURL string, err error) {
	key = "profile-pics/" + uuid.NewString() + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(s.client)
	presigned, err := presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", "", err
	}
	publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return presigned.URL, key, publicURL, nil
}

// Delete removes an uploaded object. Used when a profile image is replaced
// or cleared.
func (s *Service) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
