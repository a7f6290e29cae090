package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestNewSink(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tests := []struct {
		name    string
		c       Config
		rdb     redis.UniversalClient
		wantErr bool
	}{
		{"none", Config{Driver: "none"}, nil, false},
		{"empty", Config{}, nil, false},
		{"redis", Config{Driver: "redis", Stream: "s"}, rdb, false},
		{"redis without client", Config{Driver: "redis"}, nil, true},
		{"kafka without brokers", Config{Driver: "kafka"}, nil, true},
		{"unknown", Config{Driver: "nats"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSink(tt.c, tt.rdb)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				_ = s.Close()
			}
		})
	}
}

func TestRedisStream(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rec, err := Open(Config{Driver: "redis", Stream: "gdps:activity", MaxLen: 10, Buffer: 8}, rdb)
	if err != nil {
		t.Fatal(err)
	}
	rec.Record(Activity{Endpoint: "/uploadGJLevel21.php", AccountID: 7, Status: 200, Code: "ok"})
	rec.Record(Activity{Endpoint: "/likeGJItem211.php", Status: 200, Code: "-1"})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := rdb.XRange(context.Background(), "gdps:activity", "-", "+").Result()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	var got Activity
	if err := json.Unmarshal([]byte(entries[0].Values["data"].(string)), &got); err != nil {
		t.Fatal(err)
	}
	if got.Endpoint != "/uploadGJLevel21.php" || got.AccountID != 7 {
		t.Fatalf("first = %+v", got)
	}
}

type blockingSink struct {
	release chan struct{}
	mu      sync.Mutex
	seen    []Activity
}

func (b *blockingSink) Publish(_ context.Context, a Activity) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = append(b.seen, a)
	return errors.New("queue down")
}

func (b *blockingSink) Close() error { return nil }

func TestRecorderDropsWhenFull(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	rec := NewRecorder(sink, 1)

	// The first record is taken by the worker, the second fills the buffer.
	rec.Record(Activity{Endpoint: "a"})
	deadline := time.Now().Add(time.Second)
	for len(rec.ch) != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	rec.Record(Activity{Endpoint: "b"})
	rec.Record(Activity{Endpoint: "c"})
	if rec.Dropped() != 1 {
		t.Fatalf("dropped = %d", rec.Dropped())
	}

	close(sink.release)
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if len(sink.seen) != 2 {
		t.Fatalf("published = %d", len(sink.seen))
	}
	rec.Record(Activity{Endpoint: "late"})
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
}
