package pubsub

import (
	"context"
	"sync"
)

// queue is a bounded FIFO that discards its oldest entry to admit a new one.
type queue struct {
	mu     sync.Mutex
	items  []Message
	limit  int
	notify chan struct{}
}

func newQueue(limit int) *queue {
	if limit <= 0 {
		limit = 100
	}
	return &queue{limit: limit, notify: make(chan struct{}, 1)}
}

// push appends m and reports the message it evicted, if any.
func (q *queue) push(m Message) (evicted *Message) {
	q.mu.Lock()
	if len(q.items) >= q.limit {
		old := q.items[0]
		evicted = &old
		q.items = q.items[1:]
	}
	q.items = append(q.items, m)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
	return evicted
}

// pop blocks until a message is available or ctx is done.
func (q *queue) pop(ctx context.Context) (Message, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			m := q.items[0]
			q.items[0] = Message{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return m, true
		}
		q.mu.Unlock()
		select {
		case <-ctx.Done():
			return Message{}, false
		case <-q.notify:
		}
	}
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
