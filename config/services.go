package config

import (
	"fmt"
	"os"
)

const defaultScratchDir = "./temp"

// TriggerConfig wires the upload-event relay: the queue it drains, its
// dead-letter queue and the transcription queue it feeds.
type TriggerConfig struct {
	UploadEventsQueueURL  string
	UploadEventsDLQURL    string
	TranscriptionQueueURL string
}

func GetTriggerConfig() (*TriggerConfig, error) {
	uploadQueue, err := requiredEnv("UPLOAD_EVENTS_QUEUE_URL")
	if err != nil {
		return nil, err
	}
	uploadDLQ, err := requiredEnv("UPLOAD_EVENTS_DLQ_URL")
	if err != nil {
		return nil, err
	}
	transcriptionQueue, err := requiredEnv("TRANSCRIPTION_QUEUE_URL")
	if err != nil {
		return nil, err
	}

	return &TriggerConfig{
		UploadEventsQueueURL:  uploadQueue,
		UploadEventsDLQURL:    uploadDLQ,
		TranscriptionQueueURL: transcriptionQueue,
	}, nil
}

// TranscriberConfig wires the transcription stage.
type TranscriberConfig struct {
	TranscriptionQueueURL string
	TranscriptionDLQURL   string
	StoryQueueURL         string
	ScratchDir            string
}

func GetTranscriberConfig() (*TranscriberConfig, error) {
	transcriptionQueue, err := requiredEnv("TRANSCRIPTION_QUEUE_URL")
	if err != nil {
		return nil, err
	}
	transcriptionDLQ, err := requiredEnv("TRANSCRIPTION_DLQ_URL")
	if err != nil {
		return nil, err
	}
	storyQueue, err := requiredEnv("STORY_QUEUE_URL")
	if err != nil {
		return nil, err
	}

	scratchDir := os.Getenv("SCRATCH_DIR")
	if scratchDir == "" {
		scratchDir = defaultScratchDir
	}

	return &TranscriberConfig{
		TranscriptionQueueURL: transcriptionQueue,
		TranscriptionDLQURL:   transcriptionDLQ,
		StoryQueueURL:         storyQueue,
		ScratchDir:            scratchDir,
	}, nil
}

// StorygenConfig wires the story-generation stage.
type StorygenConfig struct {
	StoryQueueURL string
	StoryDLQURL   string
}

func GetStorygenConfig() (*StorygenConfig, error) {
	storyQueue, err := requiredEnv("STORY_QUEUE_URL")
	if err != nil {
		return nil, err
	}
	storyDLQ, err := requiredEnv("STORY_DLQ_URL")
	if err != nil {
		return nil, err
	}

	return &StorygenConfig{
		StoryQueueURL: storyQueue,
		StoryDLQURL:   storyDLQ,
	}, nil
}

// OpsConfig holds the listen address for the health endpoints.
type OpsConfig struct {
	Addr string
}

func GetOpsConfig() *OpsConfig {
	addr := os.Getenv("OPS_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return &OpsConfig{Addr: addr}
}

func requiredEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%s must be set", name)
	}
	return value, nil
}
