package analytics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

const publishTimeout = 2 * time.Second

// Recorder hands records to its sink from a background goroutine. Record
// never blocks: when the buffer is full the record is dropped and counted.
type Recorder struct {
	sink    Sink
	ch      chan Activity
	done    chan struct{}
	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
}

func NewRecorder(sink Sink, buffer int) *Recorder {
	if buffer <= 0 {
		buffer = 1
	}
	r := &Recorder{sink: sink, ch: make(chan Activity, buffer), done: make(chan struct{})}
	threading.GoSafe(r.run)
	return r
}

func (r *Recorder) Record(a Activity) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.ch <- a:
	default:
		r.dropped.Add(1)
	}
}

// Dropped reports how many records were discarded on a full buffer.
func (r *Recorder) Dropped() int64 { return r.dropped.Load() }

func (r *Recorder) run() {
	defer close(r.done)
	for a := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := r.sink.Publish(ctx, a); err != nil {
			logx.Errorf("analytics: publish %s: %v", a.Endpoint, err)
		}
		cancel()
	}
}

// Close drains the buffered records and closes the sink.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.ch)
	r.mu.Unlock()
	<-r.done
	return r.sink.Close()
}
