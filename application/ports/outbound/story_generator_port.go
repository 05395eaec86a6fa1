package outbound

import "context"

// StoryGeneratorPort asks the language model for user stories derived from a
// transcript. It returns the raw completion text; decoding into records is a
// separate step so callers can distinguish a malformed completion from a
// transport error.
type StoryGeneratorPort interface {
	GenerateStories(ctx context.Context, transcript string) (string, error)
}
