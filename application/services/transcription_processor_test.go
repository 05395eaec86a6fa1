package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reet-571099/Team6-272Project/domain"
	"github.com/reet-571099/Team6-272Project/infrastructure/adapters"
)

func requireEmptyScratchDir(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch dir should be empty after processing")
}

func transcriptionBody(t *testing.T, message domain.WorkMessage) []byte {
	t.Helper()
	body, err := json.Marshal(message)
	require.NoError(t, err)
	return body
}

func TestTranscriptionProcessor_PublishesEnrichedMessage(t *testing.T) {
	scratchDir := t.TempDir()
	transcriber := &fakeTranscriber{transcript: "Add login button"}
	store := &fakeTranscriptStore{}
	storyQueue := &fakePublisher{}

	processor := NewTranscriptionProcessor(adapters.NewZerologWrapper(), transcriber, store, storyQueue, scratchDir)

	err := processor.Handle(context.Background(), transcriptionBody(t, domain.WorkMessage{
		UserID:    "u1",
		ProjectID: "p1",
		URL:       "https://bucket.s3.us-west-1.amazonaws.com/u1_p1_123_clip.mp3",
	}))
	require.NoError(t, err)

	assert.Regexp(t, `^transcriptions/transcription-summary-\d+\.txt$`, store.storedKey)
	assert.Equal(t, "text/plain", store.storedCT)

	require.Len(t, storyQueue.messages(), 1)
	var out domain.WorkMessage
	require.NoError(t, json.Unmarshal(storyQueue.messages()[0], &out))
	assert.Equal(t, "u1", out.UserID)
	assert.Equal(t, "p1", out.ProjectID)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/"+store.storedKey, out.FileURL)
	assert.Equal(t, domain.StatusTranscriptionDone, out.Status)

	_, err = time.Parse(time.RFC3339, out.Timestamp)
	assert.NoError(t, err, "timestamp should be RFC3339")

	requireEmptyScratchDir(t, scratchDir)
}

func TestTranscriptionProcessor_CleansScratchFileOnUploadFailure(t *testing.T) {
	scratchDir := t.TempDir()
	transcriber := &fakeTranscriber{transcript: "some words"}
	store := &fakeTranscriptStore{storeErr: errors.New("s3 unavailable")}
	storyQueue := &fakePublisher{}

	processor := NewTranscriptionProcessor(adapters.NewZerologWrapper(), transcriber, store, storyQueue, scratchDir)

	err := processor.Handle(context.Background(), transcriptionBody(t, domain.WorkMessage{
		UserID:    "u1",
		ProjectID: "p1",
		URL:       "https://bucket.s3.us-west-1.amazonaws.com/clip.mp3",
	}))
	require.Error(t, err)
	assert.Empty(t, storyQueue.messages())
	requireEmptyScratchDir(t, scratchDir)
}

func TestTranscriptionProcessor_TranscriberFailureLeavesNothingBehind(t *testing.T) {
	scratchDir := t.TempDir()
	transcriber := &fakeTranscriber{err: errors.New("rate limited")}
	storyQueue := &fakePublisher{}

	processor := NewTranscriptionProcessor(adapters.NewZerologWrapper(), transcriber,
		&fakeTranscriptStore{}, storyQueue, scratchDir)

	err := processor.Handle(context.Background(), transcriptionBody(t, domain.WorkMessage{
		UserID:    "u1",
		ProjectID: "p1",
		URL:       "https://bucket.s3.us-west-1.amazonaws.com/clip.mp3",
	}))
	require.Error(t, err)
	assert.Empty(t, storyQueue.messages())
	requireEmptyScratchDir(t, scratchDir)
}

func TestTranscriptionProcessor_RejectsMessageWithoutURL(t *testing.T) {
	processor := NewTranscriptionProcessor(adapters.NewZerologWrapper(), &fakeTranscriber{},
		&fakeTranscriptStore{}, &fakePublisher{}, t.TempDir())

	err := processor.Handle(context.Background(), transcriptionBody(t, domain.WorkMessage{
		UserID:    "u1",
		ProjectID: "p1",
	}))
	require.Error(t, err)
}
