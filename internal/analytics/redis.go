package analytics

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis appends records to a capped stream, one JSON document per entry
// under the "data" field.
type Redis struct {
	cli    redis.UniversalClient
	stream string
	maxLen int64
}

func NewRedis(cli redis.UniversalClient, stream string, maxLen int64) *Redis {
	return &Redis{cli: cli, stream: stream, maxLen: maxLen}
}

func (q *Redis) Publish(ctx context.Context, a Activity) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	args := &redis.XAddArgs{Stream: q.stream, Values: map[string]any{"data": string(b)}}
	if q.maxLen > 0 {
		args.MaxLen = q.maxLen
		args.Approx = true
	}
	return q.cli.XAdd(ctx, args).Err()
}

// Close leaves the shared client open.
func (q *Redis) Close() error { return nil }
