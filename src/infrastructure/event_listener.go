package infrastructure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-shop-api/src/infrastructure/log"

	"github.com/streadway/amqp"
)

// Consumer is the part of the broker the listener needs.
type Consumer interface {
	Consume(queueName string) (<-chan amqp.Delivery, error)
}

type EventHandler interface {
	Handle(ctx context.Context, msgBody []byte)
}

type EventListener struct {
	consumer   Consumer
	logger     log.Logger
	handlers   map[string]EventHandler
	maxRetries int
	retryDelay time.Duration
}

func NewEventListener(consumer Consumer, logger log.Logger) *EventListener {
	return &EventListener{
		consumer:   consumer,
		logger:     logger,
		handlers:   make(map[string]EventHandler),
		maxRetries: 5,
		retryDelay: 2 * time.Second,
	}
}

// RegisterHandler registers an event handler for a queue.
func (el *EventListener) RegisterHandler(queueName string, handler EventHandler) {
	el.handlers[queueName] = handler
}

// StartListening blocks until ctx is cancelled or every queue gave up reconnecting.
func (el *EventListener) StartListening(ctx context.Context) {
	var wg sync.WaitGroup

	for queueName, handler := range el.handlers {
		wg.Add(1)
		go func(queue string, h EventHandler) {
			defer wg.Done()
			el.listenToQueue(ctx, queue, h)
		}(queueName, handler)
	}

	wg.Wait()
}

// listenToQueue consumes one queue, re-subscribing with exponential backoff when the
// delivery channel closes.
func (el *EventListener) listenToQueue(ctx context.Context, queueName string, handler EventHandler) {
	retryDelay := el.retryDelay

	el.logger.Info(ctx, "Starting to listen for events on queue: "+queueName)

	for attempt := 1; attempt <= el.maxRetries; attempt++ {
		msgs, err := el.consumer.Consume(queueName)
		if err != nil {
			el.logger.Exception(ctx, fmt.Sprintf("Failed to start consuming queue: %s (attempt %d/%d)", queueName, attempt, el.maxRetries), err)

			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			retryDelay *= 2
			continue
		}

		attempt = 0
		retryDelay = el.retryDelay
		if !el.drain(ctx, queueName, msgs, handler) {
			return
		}
		el.logger.Warn(ctx, "Message channel closed for queue: "+queueName+", attempting to reconnect...")
	}

	el.logger.Warn(ctx, "Max retries reached for queue: "+queueName+", giving up")
}

// drain handles deliveries until the channel closes (true) or ctx is cancelled (false).
func (el *EventListener) drain(ctx context.Context, queueName string, msgs <-chan amqp.Delivery, handler EventHandler) bool {
	el.logger.Info(ctx, "Successfully started consuming queue: "+queueName)
	for {
		select {
		case <-ctx.Done():
			el.logger.Info(ctx, "Stopping event listener for queue: "+queueName)
			return false
		case msg, ok := <-msgs:
			if !ok {
				return true
			}
			handler.Handle(ctx, msg.Body)
			if msg.Acknowledger != nil {
				if err := msg.Ack(false); err != nil {
					el.logger.Exception(ctx, "Failed to ack message on queue: "+queueName, err)
				}
			}
		}
	}
}
