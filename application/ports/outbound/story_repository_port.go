package outbound

import (
	"context"

	"github.com/reet-571099/Team6-272Project/domain"
)

// StoryRepositoryPort persists generated stories and per-project counters.
// SetActiveStories overwrites the counter with the given value rather than
// incrementing it; each generation batch replaces the previous count.
type StoryRepositoryPort interface {
	InsertStories(ctx context.Context, stories []domain.StoryRecord) error
	SetActiveStories(ctx context.Context, userID string, projectID string, count int) error
	GetProjectAggregate(ctx context.Context, userID string, projectID string) (*domain.ProjectAggregate, error)
}
