package config

import (
	"fmt"
	"os"
)

const (
	defaultOpenAIApiUrl = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel  = "gpt-4-turbo-preview"
)

type OpenAIConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetOpenAIConfig() (*OpenAIConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	apiUrl := os.Getenv("OPENAI_API_URL")
	if apiUrl == "" {
		apiUrl = defaultOpenAIApiUrl
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
