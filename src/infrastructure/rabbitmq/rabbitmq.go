package rabbitmq

import (
	"fmt"
	"sync"

	"github.com/streadway/amqp"
)

// RabbitMQServiceImpl publishes and consumes events on a single topic exchange.
type RabbitMQServiceImpl struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	// amqp channels must not be shared by concurrent publishers
	mu sync.Mutex
}

func NewRabbitMQService(host, exchange string, topics []string) (*RabbitMQServiceImpl, error) {
	conn, err := amqp.Dial(host)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	svc := &RabbitMQServiceImpl{conn: conn, channel: ch, exchange: exchange}
	if err := svc.declareTopology(topics); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

// declareTopology creates the exchange and, per topic, a durable queue plus a "<topic>.dlq"
// queue reachable through the same exchange.
func (s *RabbitMQServiceImpl) declareTopology(topics []string) error {
	err := s.channel.ExchangeDeclare(
		s.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare an exchange: %w", err)
	}

	for _, topic := range topics {
		for _, queue := range []string{topic, topic + ".dlq"} {
			_, err = s.channel.QueueDeclare(
				queue,
				true,
				false,
				false,
				false,
				nil,
			)
			if err != nil {
				return fmt.Errorf("failed to declare queue %s: %w", queue, err)
			}

			// routing key is the queue name
			err = s.channel.QueueBind(queue, queue, s.exchange, false, nil)
			if err != nil {
				return fmt.Errorf("failed to bind queue %s: %w", queue, err)
			}
		}
	}
	return nil
}

// Publish sends a persistent JSON message to a topic on the exchange.
func (s *RabbitMQServiceImpl) Publish(topic string, body []byte) error {
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if body == nil {
		return fmt.Errorf("message body cannot be nil")
	}
	if s.conn.IsClosed() {
		return fmt.Errorf("connection to RabbitMQ is closed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.channel.Publish(
		s.exchange, // exchange
		topic,      // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message to topic '%s': %w", topic, err)
	}
	return nil
}

// Consume starts consuming messages from a queue with manual acknowledgement.
func (s *RabbitMQServiceImpl) Consume(queueName string) (<-chan amqp.Delivery, error) {
	if s.conn.IsClosed() {
		return nil, fmt.Errorf("connection is closed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming queue: %w", err)
	}
	return msgs, nil
}

func (s *RabbitMQServiceImpl) IsHealthy() bool {
	return s.conn != nil && !s.conn.IsClosed() && s.channel != nil
}

func (s *RabbitMQServiceImpl) Close() {
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}
