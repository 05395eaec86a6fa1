package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reet-571099/Team6-272Project/application/ports/outbound"
	"github.com/reet-571099/Team6-272Project/infrastructure/adapters"
)

func runConsumer(t *testing.T, queue *fakeQueue, deadLetter *fakePublisher,
	handler *fakeHandler, opts ConsumerOptions) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.cancel = cancel

	consumer := NewQueueConsumer(adapters.NewZerologWrapper(), queue, deadLetter, handler, opts)

	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestQueueConsumer_AcksOnlyOnSuccess(t *testing.T) {
	queue := &fakeQueue{
		batches: [][]outbound.QueueMessage{{
			{Body: `{"user_id":"u1"}`, ReceiptHandle: "rh-good", ReceiveCount: 1},
			{Body: `{"user_id":"u2"}`, ReceiptHandle: "rh-bad", ReceiveCount: 1},
		}},
	}
	deadLetter := &fakePublisher{}
	handler := &fakeHandler{script: []error{nil, errors.New("boom")}}

	runConsumer(t, queue, deadLetter, handler, ConsumerOptions{MaxReceives: 5})

	assert.Equal(t, []string{"rh-good"}, queue.deletedHandles())
	assert.Empty(t, deadLetter.messages())
}

func TestQueueConsumer_RedeliveryReachesHandlerAgain(t *testing.T) {
	queue := &fakeQueue{
		batches: [][]outbound.QueueMessage{
			{{Body: `{"user_id":"u1"}`, ReceiptHandle: "rh-1", ReceiveCount: 1}},
			{{Body: `{"user_id":"u1"}`, ReceiptHandle: "rh-2", ReceiveCount: 2}},
		},
	}
	handler := &fakeHandler{script: []error{errors.New("transient"), nil}}

	runConsumer(t, queue, &fakePublisher{}, handler, ConsumerOptions{MaxReceives: 5})

	require.Len(t, handler.seen(), 2)
	assert.Equal(t, []string{"rh-2"}, queue.deletedHandles())
}

func TestQueueConsumer_ProcessesBatchInReceiptOrder(t *testing.T) {
	queue := &fakeQueue{
		batches: [][]outbound.QueueMessage{{
			{Body: `{"user_id":"first"}`, ReceiptHandle: "rh-1", ReceiveCount: 1},
			{Body: `{"user_id":"second"}`, ReceiptHandle: "rh-2", ReceiveCount: 1},
			{Body: `{"user_id":"third"}`, ReceiptHandle: "rh-3", ReceiveCount: 1},
		}},
	}
	handler := &fakeHandler{}

	runConsumer(t, queue, &fakePublisher{}, handler, ConsumerOptions{MaxReceives: 5})

	assert.Equal(t, []string{
		`{"user_id":"first"}`,
		`{"user_id":"second"}`,
		`{"user_id":"third"}`,
	}, handler.seen())
}

func TestQueueConsumer_DeadLettersExhaustedMessage(t *testing.T) {
	queue := &fakeQueue{
		batches: [][]outbound.QueueMessage{
			{{Body: `{"user_id":"u1"}`, ReceiptHandle: "rh-last", ReceiveCount: 3}},
		},
	}
	deadLetter := &fakePublisher{}
	handler := &fakeHandler{script: []error{errors.New("still failing")}}

	runConsumer(t, queue, deadLetter, handler, ConsumerOptions{MaxReceives: 3})

	require.Len(t, deadLetter.messages(), 1)
	assert.JSONEq(t, `{"user_id":"u1"}`, string(deadLetter.messages()[0]))
	assert.Equal(t, []string{"rh-last"}, queue.deletedHandles())
}

func TestQueueConsumer_InvalidJSONNeverReachesHandler(t *testing.T) {
	queue := &fakeQueue{
		batches: [][]outbound.QueueMessage{
			{{Body: "not json", ReceiptHandle: "rh-1", ReceiveCount: 3}},
		},
	}
	deadLetter := &fakePublisher{}
	handler := &fakeHandler{}

	runConsumer(t, queue, deadLetter, handler, ConsumerOptions{MaxReceives: 3})

	assert.Empty(t, handler.seen())
	require.Len(t, deadLetter.messages(), 1)
	assert.Equal(t, "not json", string(deadLetter.messages()[0]))
}

func TestQueueConsumer_FailedDeadLetterPublishKeepsMessage(t *testing.T) {
	queue := &fakeQueue{
		batches: [][]outbound.QueueMessage{
			{{Body: `{"user_id":"u1"}`, ReceiptHandle: "rh-1", ReceiveCount: 5}},
		},
	}
	deadLetter := &fakePublisher{err: errors.New("dlq down")}
	handler := &fakeHandler{script: []error{errors.New("boom")}}

	runConsumer(t, queue, deadLetter, handler, ConsumerOptions{MaxReceives: 5})

	assert.Empty(t, queue.deletedHandles())
}

func TestQueueConsumer_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	consumer := NewQueueConsumer(adapters.NewZerologWrapper(), &fakeQueue{}, &fakePublisher{},
		&fakeHandler{}, ConsumerOptions{})

	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("consumer did not honor cancellation")
	}
}
