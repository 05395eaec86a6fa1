package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultWaitSeconds = 10
	defaultMaxMessages = 10
	defaultMaxReceives = 5
)

// ConsumerConfig tunes the queue polling loop shared by every stage.
type ConsumerConfig struct {
	// WaitSeconds is the SQS long-poll wait per receive call.
	WaitSeconds int64
	// MaxMessages is the receive batch size cap.
	MaxMessages int64
	// MaxReceives is the delivery count after which a failing message is
	// dead-lettered.
	MaxReceives int
}

func GetConsumerConfig() (*ConsumerConfig, error) {
	waitSeconds, err := intFromEnv("CONSUMER_WAIT_SECONDS", defaultWaitSeconds)
	if err != nil {
		return nil, err
	}

	maxMessages, err := intFromEnv("CONSUMER_MAX_MESSAGES", defaultMaxMessages)
	if err != nil {
		return nil, err
	}

	maxReceives, err := intFromEnv("CONSUMER_MAX_RECEIVES", defaultMaxReceives)
	if err != nil {
		return nil, err
	}

	return &ConsumerConfig{
		WaitSeconds: int64(waitSeconds),
		MaxMessages: int64(maxMessages),
		MaxReceives: maxReceives,
	}, nil
}

func intFromEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}

	return value, nil
}
