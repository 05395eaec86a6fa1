package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/config"
)

type deepgramRequest struct {
	URL string `json:"url"`
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

type deepgramTranscriber struct {
	logger         outbound.LoggerPort
	fetcher        ContentFetcher
	deepgramConfig *config.DeepgramConfig
}

// NewDeepgramTranscriber transcribes prerecorded audio by URL through the
// Deepgram listen endpoint.
func NewDeepgramTranscriber(fetcher ContentFetcher, deepgramConfig *config.DeepgramConfig,
	logger outbound.LoggerPort) outbound.TranscriberPort {
	return &deepgramTranscriber{
		logger:         logger,
		fetcher:        fetcher,
		deepgramConfig: deepgramConfig,
	}
}

func (d *deepgramTranscriber) Transcribe(ctx context.Context, audioURL string) (string, error) {
	req, err := d.createRequest(ctx, audioURL)
	if err != nil {
		return "", err
	}

	payload, err := d.fetcher.FetchContent(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	return d.extractTranscript(payload)
}

func (d *deepgramTranscriber) createRequest(ctx context.Context, audioURL string) (*http.Request, error) {
	body, err := json.Marshal(deepgramRequest{URL: audioURL})
	if err != nil {
		d.logger.Error(err, "Failed to marshal the transcription request body")
		return nil, err
	}

	params := url.Values{}
	params.Set("model", d.deepgramConfig.Model)
	params.Set("language", "en")
	params.Set("smart_format", "true")
	params.Set("punctuate", "true")
	params.Set("paragraphs", "true")
	params.Set("diarize", "true")
	params.Set("filler_words", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.deepgramConfig.ApiUrl+"?"+params.Encode(), bytes.NewBuffer(body))
	if err != nil {
		d.logger.Error(err, "Failed to create the transcription HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Token "+d.deepgramConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// extractTranscript pulls the flat transcript out of Deepgram's nested
// response. An empty result set yields an empty transcript, not an error.
func (d *deepgramTranscriber) extractTranscript(payload []byte) (string, error) {
	var response deepgramResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		d.logger.Error(err, "Failed to unmarshal the transcription response")
		return "", err
	}

	if len(response.Results.Channels) == 0 || len(response.Results.Channels[0].Alternatives) == 0 {
		d.logger.Warn("Transcription response carries no alternatives")
		return "", nil
	}

	return response.Results.Channels[0].Alternatives[0].Transcript, nil
}
