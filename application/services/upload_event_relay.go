package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/reet-571099/Team6-272Project/application/ports/inbound"
	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/domain"
)

type uploadEventRelay struct {
	logger             outbound.LoggerPort
	transcriptionQueue outbound.MessagePublisherPort
	region             string
}

// NewUploadEventRelay bridges S3 "new object" notifications into the
// transcription queue. Upload keys follow the convention
// <user_id>_<project_id>_<timestamp>_<name>; both ids are required.
func NewUploadEventRelay(logger outbound.LoggerPort, transcriptionQueue outbound.MessagePublisherPort,
	region string) inbound.MessageHandlerPort {
	return &uploadEventRelay{
		logger:             logger,
		transcriptionQueue: transcriptionQueue,
		region:             region,
	}
}

func (r *uploadEventRelay) Handle(ctx context.Context, body []byte) error {
	var event domain.S3Event
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal S3 event: %w", err)
	}
	if len(event.Records) == 0 {
		return fmt.Errorf("S3 event carries no records")
	}

	for _, record := range event.Records {
		if err := r.relayRecord(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

func (r *uploadEventRelay) relayRecord(ctx context.Context, record domain.S3EventRecord) error {
	key, err := decodeObjectKey(record.S3.Object.Key)
	if err != nil {
		return fmt.Errorf("failed to decode object key %q: %w", record.S3.Object.Key, err)
	}

	userID, projectID := extractIDsFromKey(key)
	if userID == "" || projectID == "" {
		return fmt.Errorf("object key %q does not carry user and project ids", key)
	}

	message := domain.WorkMessage{
		UserID:    userID,
		ProjectID: projectID,
		URL:       fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", record.S3.Bucket.Name, r.region, key),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal work message: %w", err)
	}

	if err := r.transcriptionQueue.Publish(ctx, payload); err != nil {
		r.logger.ErrorWithFields(err, "Failed to publish upload message", map[string]interface{}{
			"user_id":    userID,
			"project_id": projectID,
		})
		return err
	}

	r.logger.InfoWithFields("Relayed upload to transcription queue", map[string]interface{}{
		"user_id":    userID,
		"project_id": projectID,
		"key":        key,
	})

	return nil
}

// decodeObjectKey reverses the S3 notification encoding, where spaces arrive
// as '+' and the rest is URL-escaped.
func decodeObjectKey(raw string) (string, error) {
	return url.QueryUnescape(strings.ReplaceAll(raw, "+", " "))
}

func extractIDsFromKey(key string) (string, string) {
	fileName := key
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		fileName = key[idx+1:]
	}

	parts := strings.Split(fileName, "_")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
