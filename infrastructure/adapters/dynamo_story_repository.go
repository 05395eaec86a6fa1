package adapters

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/config"
	"github.com/reet-571099/Team6-272Project/domain"
)

// DynamoDB caps BatchWriteItem at 25 items per call.
const batchWriteLimit = 25

const maxBatchWriteAttempts = 3

type dynamoStoryRepository struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoStoryRepository(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.StoryRepositoryPort {
	return &dynamoStoryRepository{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (r *dynamoStoryRepository) InsertStories(ctx context.Context, stories []domain.StoryRecord) error {
	writes := make([]*dynamodb.WriteRequest, 0, len(stories))
	for _, story := range stories {
		item, err := dynamodbattribute.MarshalMap(story)
		if err != nil {
			r.logger.ErrorWithFields(err, "Failed to marshal story record", map[string]interface{}{
				"story_id": story.StoryID,
			})
			return err
		}
		writes = append(writes, &dynamodb.WriteRequest{
			PutRequest: &dynamodb.PutRequest{Item: item},
		})
	}

	for len(writes) > 0 {
		batch := writes
		if len(batch) > batchWriteLimit {
			batch = writes[:batchWriteLimit]
		}
		writes = writes[len(batch):]

		if err := r.writeBatch(ctx, batch); err != nil {
			return err
		}
	}

	return nil
}

func (r *dynamoStoryRepository) writeBatch(ctx context.Context, batch []*dynamodb.WriteRequest) error {
	for attempt := 0; attempt < maxBatchWriteAttempts; attempt++ {
		out, err := r.dynamoSvc.BatchWriteItemWithContext(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]*dynamodb.WriteRequest{
				r.dynamoConfig.StoriesTable: batch,
			},
		})
		if err != nil {
			r.logger.Error(err, "Failed to batch-write story records")
			return err
		}

		unprocessed := out.UnprocessedItems[r.dynamoConfig.StoriesTable]
		if len(unprocessed) == 0 {
			return nil
		}
		batch = unprocessed
	}

	return fmt.Errorf("story batch write left %d unprocessed items after %d attempts",
		len(batch), maxBatchWriteAttempts)
}

func (r *dynamoStoryRepository) SetActiveStories(ctx context.Context, userID string, projectID string, count int) error {
	_, err := r.dynamoSvc.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.dynamoConfig.UserProjectsTable),
		Key: map[string]*dynamodb.AttributeValue{
			"user_id":    {S: aws.String(userID)},
			"project_id": {S: aws.String(projectID)},
		},
		UpdateExpression: aws.String("SET active_stories = :count"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":count": {N: aws.String(fmt.Sprintf("%d", count))},
		},
	})
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to update active stories", map[string]interface{}{
			"user_id":    userID,
			"project_id": projectID,
		})
		return err
	}

	return nil
}

func (r *dynamoStoryRepository) GetProjectAggregate(ctx context.Context, userID string, projectID string) (*domain.ProjectAggregate, error) {
	out, err := r.dynamoSvc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.dynamoConfig.UserProjectsTable),
		Key: map[string]*dynamodb.AttributeValue{
			"user_id":    {S: aws.String(userID)},
			"project_id": {S: aws.String(projectID)},
		},
	})
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to get project aggregate", map[string]interface{}{
			"user_id":    userID,
			"project_id": projectID,
		})
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var aggregate domain.ProjectAggregate
	if err := dynamodbattribute.UnmarshalMap(out.Item, &aggregate); err != nil {
		r.logger.Error(err, "Failed to unmarshal project aggregate")
		return nil, err
	}

	return &aggregate, nil
}
