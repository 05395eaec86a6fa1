package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reet-571099/Team6-272Project/application/ports/inbound"
	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/domain"
)

type transcriptionProcessor struct {
	logger      outbound.LoggerPort
	transcriber outbound.TranscriberPort
	store       outbound.TranscriptStorePort
	storyQueue  outbound.MessagePublisherPort
	scratchDir  string
}

// NewTranscriptionProcessor handles transcription-queue messages: transcribe
// the audio URL, stage the transcript in a scratch file, upload it to the
// object store and hand the enriched message to the story queue. The scratch
// file is removed on every exit path.
func NewTranscriptionProcessor(logger outbound.LoggerPort, transcriber outbound.TranscriberPort,
	store outbound.TranscriptStorePort, storyQueue outbound.MessagePublisherPort,
	scratchDir string) inbound.MessageHandlerPort {
	return &transcriptionProcessor{
		logger:      logger,
		transcriber: transcriber,
		store:       store,
		storyQueue:  storyQueue,
		scratchDir:  scratchDir,
	}
}

func (p *transcriptionProcessor) Handle(ctx context.Context, body []byte) error {
	var message domain.WorkMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("failed to unmarshal work message: %w", err)
	}
	if message.URL == "" {
		return fmt.Errorf("work message carries no audio url")
	}

	transcript, err := p.transcriber.Transcribe(ctx, message.URL)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("transcription-summary-%d.txt", time.Now().UnixMilli())
	filePath := filepath.Join(p.scratchDir, fileName)

	if err := os.MkdirAll(p.scratchDir, 0o755); err != nil {
		return fmt.Errorf("failed to create scratch dir: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(transcript), 0o644); err != nil {
		return fmt.Errorf("failed to write scratch file: %w", err)
	}
	defer p.removeScratchFile(filePath)

	fileURL, err := p.uploadTranscript(ctx, fileName, filePath)
	if err != nil {
		return err
	}

	out := message
	out.FileURL = fileURL
	out.Status = domain.StatusTranscriptionDone
	out.Timestamp = time.Now().UTC().Format(time.RFC3339)

	payload, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal work message: %w", err)
	}
	if err := p.storyQueue.Publish(ctx, payload); err != nil {
		return err
	}

	p.logger.InfoWithFields("Transcription complete", map[string]interface{}{
		"user_id":    message.UserID,
		"project_id": message.ProjectID,
		"file_url":   fileURL,
	})

	return nil
}

func (p *transcriptionProcessor) uploadTranscript(ctx context.Context, fileName, filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open scratch file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.Error(err, "Failed to close scratch file")
		}
	}()

	return p.store.Store(ctx, "transcriptions/"+fileName, file, "text/plain")
}

func (p *transcriptionProcessor) removeScratchFile(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.ErrorWithFields(err, "Failed to remove scratch file", map[string]interface{}{
			"path": filePath,
		})
	}
}
