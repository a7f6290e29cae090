package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Kafka writes records keyed by endpoint so one endpoint stays ordered
// within its partition.
type Kafka struct {
	w *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireOne,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Kafka{w: w}
}

func (q *Kafka) Publish(ctx context.Context, a Activity) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return q.w.WriteMessages(ctx, kafka.Message{Key: []byte(a.Endpoint), Value: b})
}

func (q *Kafka) Close() error { return q.w.Close() }
