package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/reet-571099/Team6-272Project/application/ports/inbound"
	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/domain"
)

type storyGenerationProcessor struct {
	logger     outbound.LoggerPort
	store      outbound.TranscriptStorePort
	generator  outbound.StoryGeneratorPort
	repository outbound.StoryRepositoryPort
}

// NewStoryGenerationProcessor handles story-queue messages: fetch the
// transcript object, ask the model for user stories, mint story ids and
// persist the batch. The project's active_stories counter is overwritten
// with the batch size; reprocessing the same message inserts a fresh batch
// and the counter reflects only the last one.
func NewStoryGenerationProcessor(logger outbound.LoggerPort, store outbound.TranscriptStorePort,
	generator outbound.StoryGeneratorPort, repository outbound.StoryRepositoryPort) inbound.MessageHandlerPort {
	return &storyGenerationProcessor{
		logger:     logger,
		store:      store,
		generator:  generator,
		repository: repository,
	}
}

func (p *storyGenerationProcessor) Handle(ctx context.Context, body []byte) error {
	var message domain.WorkMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("failed to unmarshal work message: %w", err)
	}
	if message.FileURL == "" {
		return fmt.Errorf("work message carries no transcript url")
	}

	bucket, key, err := parseObjectURL(message.FileURL)
	if err != nil {
		return err
	}

	transcript, err := p.store.Fetch(ctx, bucket, key)
	if err != nil {
		return err
	}

	raw, err := p.generator.GenerateStories(ctx, string(transcript))
	if err != nil {
		return err
	}

	stories, err := domain.DecodeStories(raw)
	if err != nil {
		p.logger.ErrorWithFields(err, "Model returned undecodable stories", map[string]interface{}{
			"project_id": message.ProjectID,
		})
		return err
	}

	for i := range stories {
		stories[i].StoryID = uuid.NewString()
		stories[i].ProjectID = message.ProjectID
	}

	if err := p.repository.InsertStories(ctx, stories); err != nil {
		return err
	}
	if err := p.repository.SetActiveStories(ctx, message.UserID, message.ProjectID, len(stories)); err != nil {
		return err
	}

	p.logger.InfoWithFields("Stories generated", map[string]interface{}{
		"user_id":    message.UserID,
		"project_id": message.ProjectID,
		"count":      len(stories),
	})

	return nil
}

// parseObjectURL splits a virtual-hosted S3 URL into bucket and key.
func parseObjectURL(rawURL string) (string, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse object url %q: %w", rawURL, err)
	}

	bucket := strings.Split(parsed.Hostname(), ".")[0]
	if bucket == "" {
		return "", "", fmt.Errorf("object url %q carries no bucket", rawURL)
	}

	key, err := url.PathUnescape(strings.TrimPrefix(parsed.Path, "/"))
	if err != nil {
		return "", "", fmt.Errorf("failed to unescape object key in %q: %w", rawURL, err)
	}
	if key == "" {
		return "", "", fmt.Errorf("object url %q carries no key", rawURL)
	}

	return bucket, key, nil
}
