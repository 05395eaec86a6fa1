package adapters

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/config"
)

type sqsMessageQueue struct {
	logger   outbound.LoggerPort
	sqsSvc   *sqs.SQS
	queueURL string
	consumer *config.ConsumerConfig
}

// NewSQSMessageQueue wraps one SQS queue as a consumable message source.
func NewSQSMessageQueue(sqsSvc *sqs.SQS, queueURL string, consumerConfig *config.ConsumerConfig,
	logger outbound.LoggerPort) outbound.MessageQueuePort {
	return &sqsMessageQueue{
		logger:   logger,
		sqsSvc:   sqsSvc,
		queueURL: queueURL,
		consumer: consumerConfig,
	}
}

func (q *sqsMessageQueue) Receive(ctx context.Context) ([]outbound.QueueMessage, error) {
	result, err := q.sqsSvc.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: aws.Int64(q.consumer.MaxMessages),
		WaitTimeSeconds:     aws.Int64(q.consumer.WaitSeconds),
		AttributeNames: []*string{
			aws.String(sqs.MessageSystemAttributeNameApproximateReceiveCount),
		},
	})
	if err != nil {
		return nil, err
	}

	messages := make([]outbound.QueueMessage, 0, len(result.Messages))
	for _, message := range result.Messages {
		if message.Body == nil || message.ReceiptHandle == nil {
			q.logger.Warn("Received SQS message without body or receipt handle")
			continue
		}
		messages = append(messages, outbound.QueueMessage{
			Body:          *message.Body,
			ReceiptHandle: *message.ReceiptHandle,
			ReceiveCount:  receiveCount(message),
		})
	}

	return messages, nil
}

func (q *sqsMessageQueue) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.sqsSvc.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		q.logger.ErrorWithFields(err, "Failed to delete SQS message", map[string]interface{}{
			"queue_url": q.queueURL,
		})
		return err
	}

	return nil
}

func receiveCount(message *sqs.Message) int {
	raw, ok := message.Attributes[sqs.MessageSystemAttributeNameApproximateReceiveCount]
	if !ok || raw == nil {
		return 1
	}
	count, err := strconv.Atoi(*raw)
	if err != nil || count < 1 {
		return 1
	}
	return count
}

type sqsMessagePublisher struct {
	logger   outbound.LoggerPort
	sqsSvc   *sqs.SQS
	queueURL string
}

// NewSQSMessagePublisher wraps one SQS queue as a publish target.
func NewSQSMessagePublisher(sqsSvc *sqs.SQS, queueURL string, logger outbound.LoggerPort) outbound.MessagePublisherPort {
	return &sqsMessagePublisher{
		logger:   logger,
		sqsSvc:   sqsSvc,
		queueURL: queueURL,
	}
}

func (p *sqsMessagePublisher) Publish(ctx context.Context, body []byte) error {
	result, err := p.sqsSvc.SendMessageWithContext(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to send SQS message", map[string]interface{}{
			"queue_url": p.queueURL,
		})
		return err
	}

	p.logger.DebugWithFields("Sent SQS message", map[string]interface{}{
		"queue_url":  p.queueURL,
		"message_id": aws.StringValue(result.MessageId),
	})

	return nil
}
