package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
	"gorm.io/datatypes"

	dom "github.com/gdps-go/gdps/internal/ports"
)

// Handler runs one command.
type Handler func(ctx context.Context, payload []byte) error

const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Router subscribes to every channel that has a handler and runs received
// commands one at a time on a bounded queue.
type Router struct {
	broker   Broker
	events   dom.ControlEventRepository
	handlers map[string]Handler
	queue    *queue
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewRouter(b Broker, events dom.ControlEventRepository, capacity int) *Router {
	return &Router{
		broker:   b,
		events:   events,
		handlers: make(map[string]Handler),
		queue:    newQueue(capacity),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle registers h for channel. It must be called before Start.
func (r *Router) Handle(channel string, h Handler) { r.handlers[channel] = h }

// Channels lists the subscribed channels in order.
func (r *Router) Channels() []string {
	out := make([]string, 0, len(r.handlers))
	for c := range r.handlers {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Publish sends a command through the router's broker.
func (r *Router) Publish(ctx context.Context, channel string, payload []byte) error {
	return r.broker.Publish(ctx, channel, payload)
}

// Start subscribes and begins dispatching. Both stop when ctx is done; Wait
// blocks until they have.
func (r *Router) Start(ctx context.Context) error {
	msgs, err := r.broker.Subscribe(ctx, r.Channels()...)
	if err != nil {
		return fmt.Errorf("pubsub: subscribe: %w", err)
	}
	logx.WithContext(ctx).Infof("pubsub: subscribed to %v", r.Channels())

	r.wg.Add(2)
	threading.GoSafe(func() {
		defer r.wg.Done()
		for m := range msgs {
			if old := r.queue.push(m); old != nil {
				logx.WithContext(ctx).Errorf("pubsub: queue full, dropped %s command", old.Channel)
			}
		}
	})
	threading.GoSafe(func() {
		defer r.wg.Done()
		for {
			m, ok := r.queue.pop(ctx)
			if !ok {
				return
			}
			// A started sync runs to completion even if the router stops.
			r.dispatch(context.WithoutCancel(ctx), m)
		}
	})
	return nil
}

func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) dispatch(ctx context.Context, m Message) {
	h, ok := r.handlers[m.Channel]
	if !ok {
		return
	}
	ev := &dom.ControlEvent{
		Channel:    m.Channel,
		Payload:    payloadJSON(m.Payload),
		Status:     StatusOK,
		ReceivedTs: r.now(),
	}
	start := time.Now()
	if err := r.run(ctx, h, m.Payload); err != nil {
		ev.Status = StatusFailed
		ev.Error = truncate(err.Error(), 512)
		logx.WithContext(ctx).Errorf("pubsub: %s failed: %v", m.Channel, err)
	} else {
		logx.WithContext(ctx).WithDuration(time.Since(start)).Infof("pubsub: %s done", m.Channel)
	}
	if r.events != nil {
		if err := r.events.Record(ctx, ev); err != nil {
			logx.WithContext(ctx).Errorf("pubsub: record %s event: %v", m.Channel, err)
		}
	}
}

func (r *Router) run(ctx context.Context, h Handler, payload []byte) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h(ctx, payload)
}

// payloadJSON stores JSON payloads as-is and anything else as a JSON string.
func payloadJSON(p []byte) datatypes.JSON {
	if len(p) == 0 {
		return datatypes.JSON("null")
	}
	if json.Valid(p) {
		return datatypes.JSON(p)
	}
	b, _ := json.Marshal(string(p))
	return datatypes.JSON(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
