package outbound

import "context"

// QueueMessage is one delivery from the work queue. ReceiveCount is how many
// times the queue has handed this message to a consumer, including this
// delivery.
type QueueMessage struct {
	Body          string
	ReceiptHandle string
	ReceiveCount  int
}

type MessageQueuePort interface {
	// Receive long-polls the queue and returns zero or more messages.
	Receive(ctx context.Context) ([]QueueMessage, error)
	// Delete acknowledges a delivery so it is never redelivered.
	Delete(ctx context.Context, receiptHandle string) error
}

type MessagePublisherPort interface {
	Publish(ctx context.Context, body []byte) error
}
