package inbound

import "context"

// PipelineConsumerPort drains a queue until the context is cancelled.
type PipelineConsumerPort interface {
	Run(ctx context.Context) error
}
