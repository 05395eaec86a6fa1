package config

import (
	"fmt"
	"os"
)

type DynamoConfig struct {
	StoriesTable      string
	UserProjectsTable string
}

func GetDynamoConfig() (*DynamoConfig, error) {
	storiesTable := os.Getenv("STORIES_TABLE_NAME")
	if storiesTable == "" {
		return nil, fmt.Errorf("STORIES_TABLE_NAME must be set")
	}

	userProjectsTable := os.Getenv("USER_PROJECTS_TABLE_NAME")
	if userProjectsTable == "" {
		return nil, fmt.Errorf("USER_PROJECTS_TABLE_NAME must be set")
	}

	return &DynamoConfig{
		StoriesTable:      storiesTable,
		UserProjectsTable: userProjectsTable,
	}, nil
}
