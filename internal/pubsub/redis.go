package pubsub

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis uses PUBLISH and SUBSCRIBE. Messages published while no server is
// subscribed are lost.
type Redis struct {
	cli redis.UniversalClient
}

func NewRedis(cli redis.UniversalClient) *Redis { return &Redis{cli: cli} }

func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	return r.cli.Publish(ctx, channel, payload).Err()
}

func (r *Redis) Subscribe(ctx context.Context, channels ...string) (<-chan Message, error) {
	ps := r.cli.Subscribe(ctx, channels...)
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}
	out := make(chan Message)
	in := ps.Channel()
	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- Message{Channel: m.Channel, Payload: []byte(m.Payload)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close leaves the shared client open; its owner closes it.
func (r *Redis) Close() error { return nil }
