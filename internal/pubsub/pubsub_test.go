package pubsub

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
)

type recorder struct {
	mu     sync.Mutex
	events []*dom.ControlEvent
}

func (r *recorder) Record(_ context.Context, e *dom.ControlEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) snapshot() []*dom.ControlEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func TestQueueDropsOldest(t *testing.T) {
	q := newQueue(3)
	for _, c := range []string{"a", "b", "c"} {
		if old := q.push(Message{Channel: c}); old != nil {
			t.Fatalf("evicted %s below capacity", old.Channel)
		}
	}
	old := q.push(Message{Channel: "d"})
	if old == nil || old.Channel != "a" {
		t.Fatalf("evicted = %v", old)
	}
	ctx := context.Background()
	var got []string
	for q.len() > 0 {
		m, _ := q.pop(ctx)
		got = append(got, m.Channel)
	}
	if !slices.Equal(got, []string{"b", "c", "d"}) {
		t.Fatalf("order = %v", got)
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, ok := q.pop(cctx); ok {
		t.Fatal("pop on empty cancelled queue")
	}
}

func TestPayloadJSON(t *testing.T) {
	for in, want := range map[string]string{
		"":              "null",
		`{"full":true}`: `{"full":true}`,
		"plain":         `"plain"`,
	} {
		if got := string(payloadJSON([]byte(in))); got != want {
			t.Errorf("payloadJSON(%q) = %s, want %s", in, got, want)
		}
	}
}

func waitEvents(t *testing.T, rec *recorder, n int) []*dom.ControlEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if evs := rec.snapshot(); len(evs) >= n {
			return evs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events", n)
	return nil
}

func testRouter(t *testing.T, b Broker) {
	t.Helper()
	rec := &recorder{}
	r := NewRouter(b, rec, 10)
	calls := make(chan string, 4)
	r.Handle(Ping, func(_ context.Context, p []byte) error {
		calls <- string(p)
		return nil
	})
	r.Handle(UsersSyncSearch, func(context.Context, []byte) error {
		return errors.New("index down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		r.Wait()
	}()
	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := r.Publish(ctx, Ping, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := r.Publish(ctx, UsersSyncSearch, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.Publish(ctx, "unrelated", nil); err != nil {
		t.Fatal(err)
	}

	evs := waitEvents(t, rec, 2)
	if got := <-calls; got != "hello" {
		t.Fatalf("ping payload = %q", got)
	}
	if evs[0].Channel != Ping || evs[0].Status != StatusOK || string(evs[0].Payload) != `"hello"` {
		t.Fatalf("ping event = %+v", evs[0])
	}
	if evs[1].Channel != UsersSyncSearch || evs[1].Status != StatusFailed || evs[1].Error != "index down" {
		t.Fatalf("sync event = %+v", evs[1])
	}
}

func TestRouterLocal(t *testing.T) {
	testRouter(t, NewLocal())
}

func TestRouterRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })
	testRouter(t, NewRedis(rc))
}

func TestRouterRecoversPanics(t *testing.T) {
	rec := &recorder{}
	r := NewRouter(NewLocal(), rec, 0)
	r.Handle(Ping, func(context.Context, []byte) error { panic("boom") })
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		r.Wait()
	}()
	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	r.Publish(ctx, Ping, nil)
	if evs := waitEvents(t, rec, 1); evs[0].Status != StatusFailed {
		t.Fatalf("event = %+v", evs[0])
	}
}

func TestRegisterChannels(t *testing.T) {
	r := NewRouter(NewLocal(), nil, 0)
	Register(r, &service.Services{})
	want := []string{LeaderboardsSyncCreators, LeaderboardsSyncStars, LevelsSyncSearch, Ping, UsersSyncSearch}
	slices.Sort(want)
	if got := r.Channels(); !slices.Equal(got, want) {
		t.Fatalf("channels = %v", got)
	}
}

func TestNewDrivers(t *testing.T) {
	if _, err := New(Config{Driver: "redis"}, nil); err == nil {
		t.Fatal("redis without client")
	}
	if _, err := New(Config{Driver: "kafka"}, nil); err == nil {
		t.Fatal("kafka without brokers")
	}
	if _, err := New(Config{Driver: "carrier-pigeon"}, nil); err == nil {
		t.Fatal("unknown driver")
	}
	b, err := New(Config{}, nil)
	if _, ok := b.(*Local); err != nil || !ok {
		t.Fatalf("default broker = %T, %v", b, err)
	}
}
