package pubsub

import (
	"context"
	"slices"
	"sync"
)

// Local fans messages out to subscribers in the same process.
type Local struct {
	mu   sync.Mutex
	subs map[string][]chan Message
}

func NewLocal() *Local { return &Local{subs: make(map[string][]chan Message)} }

func (l *Local) Publish(ctx context.Context, channel string, payload []byte) error {
	l.mu.Lock()
	subs := slices.Clone(l.subs[channel])
	l.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- Message{Channel: channel, Payload: payload}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (l *Local) Subscribe(ctx context.Context, channels ...string) (<-chan Message, error) {
	ch := make(chan Message, 16)
	l.mu.Lock()
	for _, c := range channels {
		l.subs[c] = append(l.subs[c], ch)
	}
	l.mu.Unlock()
	go func() {
		<-ctx.Done()
		l.mu.Lock()
		for _, c := range channels {
			l.subs[c] = slices.DeleteFunc(l.subs[c], func(s chan Message) bool { return s == ch })
		}
		l.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

func (l *Local) Close() error { return nil }
