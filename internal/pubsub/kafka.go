package pubsub

import (
	"context"
	"slices"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

// Kafka carries every channel on one topic, with the channel name in the
// message key. The topic is expected to have a single partition; each
// subscriber reads it from the newest offset so every server sees every
// command.
type Kafka struct {
	brokers []string
	topic   string
	w       *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireOne,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Kafka{brokers: brokers, topic: topic, w: w}
}

func (k *Kafka) Publish(ctx context.Context, channel string, payload []byte) error {
	return k.w.WriteMessages(ctx, kafka.Message{Key: []byte(channel), Value: payload})
}

func (k *Kafka) Subscribe(ctx context.Context, channels ...string) (<-chan Message, error) {
	rd := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     k.brokers,
		Topic:       k.topic,
		StartOffset: kafka.LastOffset,
		MaxWait:     time.Second,
	})
	out := make(chan Message)
	go func() {
		defer close(out)
		defer rd.Close()
		for {
			m, err := rd.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logx.WithContext(ctx).Errorf("pubsub: kafka read: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}
			channel := string(m.Key)
			if !slices.Contains(channels, channel) {
				continue
			}
			select {
			case out <- Message{Channel: channel, Payload: m.Value}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (k *Kafka) Close() error { return k.w.Close() }
