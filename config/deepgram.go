package config

import (
	"fmt"
	"os"
)

const (
	defaultDeepgramApiUrl = "https://api.deepgram.com/v1/listen"
	defaultDeepgramModel  = "nova-2"
)

type DeepgramConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetDeepgramConfig() (*DeepgramConfig, error) {
	apiKey := os.Getenv("DEEPGRAM_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPGRAM_API_KEY must be set")
	}

	apiUrl := os.Getenv("DEEPGRAM_API_URL")
	if apiUrl == "" {
		apiUrl = defaultDeepgramApiUrl
	}

	model := os.Getenv("DEEPGRAM_MODEL")
	if model == "" {
		model = defaultDeepgramModel
	}

	return &DeepgramConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
