// Package pubsub carries control-plane commands between processes and
// dispatches them to the synchronisers.
package pubsub

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Message is one published command. The payload is opaque to the transport.
type Message struct {
	Channel string
	Payload []byte
}

// Broker moves messages between publishers and subscribers.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	// Subscribe delivers messages on channels until ctx is done, then closes
	// the returned stream.
	Subscribe(ctx context.Context, channels ...string) (<-chan Message, error)
	Close() error
}

type Config struct {
	Driver        string   `json:",default=local,options=local|redis|kafka"`
	Brokers       []string `json:",optional"`
	Topic         string   `json:",default=gdps.control"`
	QueueCapacity int      `json:",default=100"`
}

// New opens the broker selected by c. rdb backs the redis driver.
func New(c Config, rdb redis.UniversalClient) (Broker, error) {
	switch strings.ToLower(c.Driver) {
	case "", "local":
		return NewLocal(), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("pubsub: redis driver without a redis client")
		}
		return NewRedis(rdb), nil
	case "kafka":
		if len(c.Brokers) == 0 {
			return nil, fmt.Errorf("pubsub: kafka driver needs brokers")
		}
		return NewKafka(c.Brokers, c.Topic), nil
	}
	return nil, fmt.Errorf("pubsub: unknown driver %q", c.Driver)
}
