package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reet-571099/Team6-272Project/application/ports/inbound"
	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
)

const defaultReceiveErrorPause = 5 * time.Second

// ConsumerOptions tunes the generic consumer loop.
type ConsumerOptions struct {
	// MaxReceives is the delivery count at which a still-failing message is
	// routed to the dead-letter queue instead of being left for redelivery.
	// Zero disables dead-lettering.
	MaxReceives int
	// ReceiveErrorPause is how long the loop sleeps after a failed poll.
	ReceiveErrorPause time.Duration
}

type queueConsumer struct {
	logger     outbound.LoggerPort
	queue      outbound.MessageQueuePort
	deadLetter outbound.MessagePublisherPort
	handler    inbound.MessageHandlerPort
	opts       ConsumerOptions
}

// NewQueueConsumer builds the generic pipeline stage runner: poll the queue,
// apply the handler to each message in receipt order, and delete a message
// only after the handler succeeds. Failed messages stay on the queue until
// the visibility timeout redelivers them, or go to the dead-letter queue once
// their receive count reaches MaxReceives.
func NewQueueConsumer(logger outbound.LoggerPort, queue outbound.MessageQueuePort,
	deadLetter outbound.MessagePublisherPort, handler inbound.MessageHandlerPort,
	opts ConsumerOptions) inbound.PipelineConsumerPort {
	if opts.ReceiveErrorPause <= 0 {
		opts.ReceiveErrorPause = defaultReceiveErrorPause
	}
	return &queueConsumer{
		logger:     logger,
		queue:      queue,
		deadLetter: deadLetter,
		handler:    handler,
		opts:       opts,
	}
}

func (c *queueConsumer) Run(ctx context.Context) error {
	c.logger.Info("Starting queue consumer loop")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Queue consumer stopped")
			return nil
		default:
		}

		messages, err := c.queue.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Queue consumer stopped")
				return nil
			}
			c.logger.Error(err, "Failed to receive messages")
			select {
			case <-ctx.Done():
				c.logger.Info("Queue consumer stopped")
				return nil
			case <-time.After(c.opts.ReceiveErrorPause):
			}
			continue
		}

		for _, message := range messages {
			c.process(ctx, message)
		}
	}
}

func (c *queueConsumer) process(ctx context.Context, message outbound.QueueMessage) {
	err := c.handle(ctx, message)
	if err == nil {
		if err := c.queue.Delete(ctx, message.ReceiptHandle); err != nil {
			c.logger.Error(err, "Failed to delete message after successful processing")
		}
		return
	}

	c.logger.ErrorWithFields(err, "Failed to process message", map[string]interface{}{
		"receive_count": message.ReceiveCount,
	})

	if c.opts.MaxReceives > 0 && message.ReceiveCount >= c.opts.MaxReceives {
		c.sendToDeadLetter(ctx, message)
	}
}

func (c *queueConsumer) handle(ctx context.Context, message outbound.QueueMessage) error {
	if !json.Valid([]byte(message.Body)) {
		return fmt.Errorf("message body is not valid JSON")
	}
	return c.handler.Handle(ctx, []byte(message.Body))
}

// sendToDeadLetter parks an exhausted message so it stops cycling through the
// queue. The original delivery is deleted only once the dead-letter publish
// has succeeded.
func (c *queueConsumer) sendToDeadLetter(ctx context.Context, message outbound.QueueMessage) {
	if c.deadLetter == nil {
		c.logger.Warn("Message exhausted its receives but no dead-letter queue is configured")
		return
	}

	if err := c.deadLetter.Publish(ctx, []byte(message.Body)); err != nil {
		c.logger.Error(err, "Failed to publish message to dead-letter queue")
		return
	}

	c.logger.WarnWithFields("Message routed to dead-letter queue", map[string]interface{}{
		"receive_count": message.ReceiveCount,
	})

	if err := c.queue.Delete(ctx, message.ReceiptHandle); err != nil {
		c.logger.Error(err, "Failed to delete dead-lettered message")
	}
}
