// Package analytics streams one activity record per game request to an
// external queue, where offline jobs aggregate it.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Activity describes one served request.
type Activity struct {
	At        time.Time `json:"at"`
	RequestID string    `json:"request_id,omitempty"`
	Endpoint  string    `json:"endpoint"`
	AccountID int       `json:"account_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Millis    int64     `json:"ms"`
}

// Sink publishes activity records to a queue.
// Implementations are backed by Redis Streams, Kafka, or nothing.
type Sink interface {
	Publish(ctx context.Context, a Activity) error
	Close() error
}

type Config struct {
	Driver  string   `json:",default=none,options=none|redis|kafka"`
	Stream  string   `json:",default=gdps:activity"`
	MaxLen  int64    `json:",default=100000"`
	Brokers []string `json:",optional"`
	Topic   string   `json:",default=gdps.activity"`
	Buffer  int      `json:",default=1024"`
}

// NewSink opens the sink selected by c. rdb backs the redis driver.
func NewSink(c Config, rdb redis.UniversalClient) (Sink, error) {
	switch strings.ToLower(c.Driver) {
	case "", "none":
		return Noop{}, nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("analytics: redis driver needs a client")
		}
		return NewRedis(rdb, c.Stream, c.MaxLen), nil
	case "kafka":
		if len(c.Brokers) == 0 {
			return nil, fmt.Errorf("analytics: kafka driver needs brokers")
		}
		return NewKafka(c.Brokers, c.Topic), nil
	default:
		return nil, fmt.Errorf("analytics: unsupported driver %q", c.Driver)
	}
}

// Open builds the sink named by c and starts a recorder over it.
func Open(c Config, rdb redis.UniversalClient) (*Recorder, error) {
	sink, err := NewSink(c, rdb)
	if err != nil {
		return nil, err
	}
	return NewRecorder(sink, c.Buffer), nil
}

type Noop struct{}

func (Noop) Publish(context.Context, Activity) error { return nil }
func (Noop) Close() error                            { return nil }
