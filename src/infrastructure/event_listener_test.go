package infrastructure

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-shop-api/src/infrastructure/log"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsumer struct {
	mu     sync.Mutex
	queues map[string]chan amqp.Delivery
	calls  int
	err    error
}

func (c *fakeConsumer) Consume(queueName string) (<-chan amqp.Delivery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.queues[queueName], nil
}

type recordingHandler struct {
	mu     sync.Mutex
	bodies []string
	done   chan struct{}
	want   int
}

func (h *recordingHandler) Handle(_ context.Context, msgBody []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bodies = append(h.bodies, string(msgBody))
	if len(h.bodies) == h.want {
		close(h.done)
	}
}

func TestEventListener_DispatchesInOrder(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 3)
	consumer := &fakeConsumer{queues: map[string]chan amqp.Delivery{"order.created": deliveries}}
	handler := &recordingHandler{done: make(chan struct{}), want: 3}

	listener := NewEventListener(consumer, log.NewNopLogger())
	listener.RegisterHandler("order.created", handler)

	for _, body := range []string{"a", "b", "c"} {
		deliveries <- amqp.Delivery{Body: []byte(body)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		listener.StartListening(ctx)
		close(stopped)
	}()

	select {
	case <-handler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not receive all deliveries")
	}
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
	assert.Equal(t, []string{"a", "b", "c"}, handler.bodies)
}

func TestEventListener_GivesUpAfterMaxRetries(t *testing.T) {
	consumer := &fakeConsumer{err: errors.New("channel closed")}
	listener := NewEventListener(consumer, log.NewNopLogger())
	listener.retryDelay = time.Millisecond
	listener.maxRetries = 3
	listener.RegisterHandler("order.created", &recordingHandler{done: make(chan struct{})})

	listener.StartListening(context.Background())

	require.Equal(t, 3, consumer.calls)
}
