package inbound

import "context"

// MessageHandlerPort is the transformation a pipeline stage applies to one
// queue message. Returning an error leaves the message unacknowledged so the
// queue redelivers it.
type MessageHandlerPort interface {
	Handle(ctx context.Context, body []byte) error
}
