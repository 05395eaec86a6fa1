package domain

// StatusTranscriptionDone marks a message whose audio has been transcribed
// and uploaded, ready for story generation.
const StatusTranscriptionDone = "TRANSCRIPTION_DONE"

// WorkMessage is the JSON envelope passed between pipeline stages. Only
// user_id and project_id are common to every stage; the remaining fields are
// filled in as the message moves through the pipeline.
type WorkMessage struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	URL       string `json:"url,omitempty"`
	FileURL   string `json:"file_url,omitempty"`
	Status    string `json:"status,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// StoryRecord is a single user story derived from a transcript.
type StoryRecord struct {
	StoryID     string   `json:"story_id" dynamodbav:"story_id"`
	ProjectID   string   `json:"project_id" dynamodbav:"project_id"`
	StoryName   string   `json:"story_name" dynamodbav:"story_name"`
	StoryPoints int      `json:"story_points" dynamodbav:"story_points"`
	Description []string `json:"description" dynamodbav:"description"`
}

// ProjectAggregate tracks per-project story counters. ActiveStories holds the
// size of the most recent generation batch, not a running total.
type ProjectAggregate struct {
	UserID          string `json:"user_id" dynamodbav:"user_id"`
	ProjectID       string `json:"project_id" dynamodbav:"project_id"`
	TotalStories    int    `json:"total_stories" dynamodbav:"total_stories"`
	ActiveStories   int    `json:"active_stories" dynamodbav:"active_stories"`
	InactiveStories int    `json:"inactive_stories" dynamodbav:"inactive_stories"`
}
