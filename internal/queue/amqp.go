package queue

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// DispatchJob is the wire shape on the dispatch queue.
type DispatchJob struct {
	GeneratedEmailID int `json:"generated_email_id"`
}

// AMQPQueue publishes jobs to RabbitMQ. The worker binary consumes them with
// its own channel; this side only declares and publishes.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	id, ok := payload.(int)
	if !ok {
		return fmt.Errorf("unsupported payload type %T", payload)
	}

	queue, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	body, err := json.Marshal(DispatchJob{GeneratedEmailID: id})
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Subscribe is not supported on the publisher side; the worker consumes with
// its own connection.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	return fmt.Errorf("subscribe not supported on amqp publisher")
}

func (q *AMQPQueue) Close() error {
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
