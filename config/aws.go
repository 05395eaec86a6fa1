package config

import (
	"fmt"
	"os"
)

type AWSConfig struct {
	Region string
}

func GetAWSConfig() (*AWSConfig, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION must be set")
	}

	return &AWSConfig{
		Region: region,
	}, nil
}
