package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/greenspoon/backend/config"
)

// S3ImageStore stores uploaded images in an S3 bucket. The object key
// doubles as the image id kept on the owning entity.
type S3ImageStore struct {
	s3Config *config.S3Config
	log      *logrus.Logger
}

func NewS3ImageStore(s3Config *config.S3Config, log *logrus.Logger) *S3ImageStore {
	return &S3ImageStore{s3Config: s3Config, log: log}
}

// Save uploads the file under <folder>/<entity id><ext> and returns the key.
// The multipart temp file is released when the request's form is cleaned up.
func (s *S3ImageStore) Save(ctx context.Context, file *multipart.FileHeader, folder string, id uuid.UUID) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	key := fmt.Sprintf("%s/%s%s", folder, id, filepath.Ext(file.Filename))
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	s.log.WithField("key", key).Info("uploaded image")
	return key, nil
}

// Delete removes a stored image by key.
func (s *S3ImageStore) Delete(ctx context.Context, imageID string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(imageID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// URL returns the public URL for a stored image key.
func (s *S3ImageStore) URL(imageID string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, imageID)
}
