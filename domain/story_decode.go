package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRegexp = regexp.MustCompile("```json|```")

// StoryParseError reports that the model output could not be decoded as a
// story array. RawText holds the unmodified model response so callers can
// tell a malformed completion apart from a transport failure.
type StoryParseError struct {
	RawText string
	Err     error
}

func (e *StoryParseError) Error() string {
	return fmt.Sprintf("failed to decode model output as stories: %v", e.Err)
}

func (e *StoryParseError) Unwrap() error {
	return e.Err
}

// DecodeStories parses a model completion into story records. The completion
// may wrap the JSON array in markdown code fences; fences are stripped before
// parsing. A plain JSON array decodes identically.
func DecodeStories(raw string) ([]StoryRecord, error) {
	clean := strings.TrimSpace(codeFenceRegexp.ReplaceAllString(raw, ""))

	var stories []StoryRecord
	if err := json.Unmarshal([]byte(clean), &stories); err != nil {
		return nil, &StoryParseError{RawText: raw, Err: err}
	}

	return stories, nil
}
