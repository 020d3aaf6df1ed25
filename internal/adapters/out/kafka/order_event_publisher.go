// Package kafka publishes order lifecycle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedMessage is the JSON value of every published message.
type OrderChangedMessage struct {
	Type         string    `json:"type"`
	OrderID      string    `json:"orderId"`
	UserID       string    `json:"userId"`
	RestaurantID string    `json:"restaurantId"`
	Status       string    `json:"status"`
	Price        string    `json:"price"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// OrderEventPublisher writes one message per event. Messages are keyed by
// order id, so the events of an order stay in one partition and in order.
type OrderEventPublisher struct {
	writer messageWriter
}

// NewOrderEventPublisher creates a publisher for topic on the brokers listed
// in brokersCSV.
func NewOrderEventPublisher(brokersCSV, topic string) (*OrderEventPublisher, error) {
	brokers := ParseBrokers(brokersCSV)
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	return newOrderEventPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}), nil
}

func newOrderEventPublisher(writer messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (p *OrderEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(toMessage(e))
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.Type, err)
		}
		messages = append(messages, kafka.Message{
			Key:     []byte(e.OrderID.String()),
			Value:   value,
			Time:    e.OccurredAt.UTC(),
			Headers: []kafka.Header{{Key: "event-type", Value: []byte(e.Type)}},
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("write order events: %w", err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(e order.Event) OrderChangedMessage {
	return OrderChangedMessage{
		Type:         string(e.Type),
		OrderID:      e.OrderID.String(),
		UserID:       e.UserID.String(),
		RestaurantID: e.RestaurantID.String(),
		Status:       e.Status.String(),
		Price:        e.Price.StringFixed(2),
		OccurredAt:   e.OccurredAt.UTC(),
	}
}
