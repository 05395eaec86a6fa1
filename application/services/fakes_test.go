package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/domain"
)

// fakeQueue hands out scripted batches of messages and cancels the consumer's
// context once the script runs dry, so Run terminates deterministically.
type fakeQueue struct {
	mu      sync.Mutex
	batches [][]outbound.QueueMessage
	deleted []string
	cancel  context.CancelFunc
}

func (q *fakeQueue) Receive(ctx context.Context) ([]outbound.QueueMessage, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.batches) == 0 {
		if q.cancel != nil {
			q.cancel()
		}
		return nil, nil
	}

	batch := q.batches[0]
	q.batches = q.batches[1:]
	return batch, nil
}

func (q *fakeQueue) Delete(ctx context.Context, receiptHandle string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleted = append(q.deleted, receiptHandle)
	return nil
}

func (q *fakeQueue) deletedHandles() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.deleted...)
}

type fakePublisher struct {
	mu        sync.Mutex
	published [][]byte
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, append([]byte(nil), body...))
	return nil
}

func (p *fakePublisher) messages() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.published...)
}

// fakeHandler records every body it sees and answers from a script of errors,
// one per invocation; past the script's end it succeeds.
type fakeHandler struct {
	mu     sync.Mutex
	bodies []string
	script []error
}

func (h *fakeHandler) Handle(ctx context.Context, body []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bodies = append(h.bodies, string(body))
	if len(h.script) == 0 {
		return nil
	}
	err := h.script[0]
	h.script = h.script[1:]
	return err
}

func (h *fakeHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.bodies...)
}

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	t.calls++
	if t.err != nil {
		return "", t.err
	}
	return t.transcript, nil
}

type fakeTranscriptStore struct {
	objects   map[string]string
	storedKey string
	storedCT  string
	storeErr  error
	location  string
}

func (s *fakeTranscriptStore) Fetch(ctx context.Context, bucket string, key string) ([]byte, error) {
	content, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, fmt.Errorf("no such object %s/%s", bucket, key)
	}
	return []byte(content), nil
}

func (s *fakeTranscriptStore) Store(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	if s.storeErr != nil {
		return "", s.storeErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	s.storedKey = key
	s.storedCT = contentType
	if s.location != "" {
		return s.location, nil
	}
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

type fakeStoryRepository struct {
	mu            sync.Mutex
	stories       []domain.StoryRecord
	activeStories map[string]int
	insertErr     error
}

func newFakeStoryRepository() *fakeStoryRepository {
	return &fakeStoryRepository{activeStories: make(map[string]int)}
}

func (r *fakeStoryRepository) InsertStories(ctx context.Context, stories []domain.StoryRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stories = append(r.stories, stories...)
	return nil
}

func (r *fakeStoryRepository) SetActiveStories(ctx context.Context, userID string, projectID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeStories[userID+"/"+projectID] = count
	return nil
}

func (r *fakeStoryRepository) GetProjectAggregate(ctx context.Context, userID string, projectID string) (*domain.ProjectAggregate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count, ok := r.activeStories[userID+"/"+projectID]
	if !ok {
		return nil, nil
	}
	return &domain.ProjectAggregate{
		UserID:        userID,
		ProjectID:     projectID,
		ActiveStories: count,
	}, nil
}
