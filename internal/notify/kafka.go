// README: Kafka publisher for order status events.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"tvirti/internal/modules/order"
)

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish keys messages by order ID so one order's events stay on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, e order.Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("order." + string(e.ToStatus))},
		},
		Time: e.CreatedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}
