package adapters

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/config"
)

type s3TranscriptStore struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

// NewS3TranscriptStore stores transcripts in the configured bucket and reads
// objects back from whichever bucket a file URL names.
func NewS3TranscriptStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.TranscriptStorePort {
	return &s3TranscriptStore{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3TranscriptStore) Store(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload object to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    key,
		})
		return "", err
	}

	location := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	s.logger.DebugWithFields("Uploaded object to S3", map[string]interface{}{
		"location": location,
	})

	return location, nil
}

func (s *s3TranscriptStore) Fetch(ctx context.Context, bucket string, key string) ([]byte, error) {
	result, err := s.s3Svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to fetch object from S3", map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return nil, err
	}

	defer func() {
		if err := result.Body.Close(); err != nil {
			s.logger.Error(err, "Failed to close S3 object body")
		}
	}()

	payload, err := io.ReadAll(result.Body)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to read S3 object body", map[string]interface{}{
			"bucket": bucket,
			"key":    key,
		})
		return nil, err
	}

	return payload, nil
}
