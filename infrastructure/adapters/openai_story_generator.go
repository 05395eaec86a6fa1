package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/config"
)

const storiesMaxTokens = 1500

const storiesPromptTemplate = `
    Using the following key points, generate detailed user stories in the following format for a story database:

    For each story, include:
    1. story_name: The name of the feature (Feature Description).
    2. story_points: Assign points based on complexity (2 for simple, 5 for moderate, 8 for complex).
    3. description: A list of acceptance criteria covering:
        - Functional requirements
        - UI/UX considerations
        - Error handling
        - Testing and validation
        - Device/browser compatibility

    Key Points:
    %s

    Output each user story in the following JSON format:
    [
      {
        "story_name": "[Feature Name]",
        "story_points": [Story Points],
        "description": [
          "[First Criterion]",
          "[Second Criterion]",
          ...
        ]
      },
    ]
    Include every story that is mentioned in the text.`

type chatGptRequest struct {
	Model       string           `json:"model"`
	Messages    []chatGptMessage `json:"messages"`
	MaxTokens   int              `json:"max_tokens"`
	Temperature float64          `json:"temperature"`
}

type chatGptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatGptResponse struct {
	Choices []chatGptResponseChoice `json:"choices"`
}

type chatGptResponseChoice struct {
	Index   int `json:"index"`
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type openAIStoryGenerator struct {
	logger    outbound.LoggerPort
	fetcher   ContentFetcher
	gptConfig *config.OpenAIConfig
}

// NewOpenAIStoryGenerator prompts the chat-completions endpoint for a JSON
// array of user stories. Temperature is pinned to zero so repeated runs on
// the same transcript stay close to deterministic.
func NewOpenAIStoryGenerator(fetcher ContentFetcher, gptConfig *config.OpenAIConfig,
	logger outbound.LoggerPort) outbound.StoryGeneratorPort {
	return &openAIStoryGenerator{
		logger:    logger,
		fetcher:   fetcher,
		gptConfig: gptConfig,
	}
}

func (g *openAIStoryGenerator) GenerateStories(ctx context.Context, transcript string) (string, error) {
	req, err := g.createRequest(ctx, transcript)
	if err != nil {
		return "", err
	}

	payload, err := g.fetcher.FetchContent(req)
	if err != nil {
		return "", fmt.Errorf("story completion request failed: %w", err)
	}

	return extractCompletion(payload)
}

func (g *openAIStoryGenerator) createRequest(ctx context.Context, transcript string) (*http.Request, error) {
	promptReq := chatGptRequest{
		Model: g.gptConfig.Model,
		Messages: []chatGptMessage{
			{Role: "user", Content: fmt.Sprintf(storiesPromptTemplate, transcript)},
		},
		MaxTokens:   storiesMaxTokens,
		Temperature: 0,
	}

	payloadBytes, err := json.Marshal(promptReq)
	if err != nil {
		g.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.gptConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		g.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+g.gptConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func extractCompletion(payload []byte) (string, error) {
	var response chatGptResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal completion response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion response carries no choices")
	}
	return response.Choices[0].Message.Content, nil
}
