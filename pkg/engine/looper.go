package engine

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/go-drift/clockface/pkg/animation"
	"github.com/go-drift/clockface/pkg/errors"
)

// Looper is the UI thread's message queue.
//
// Messages run in due-time order, and messages due at the same time run in
// the order they were posted. Due times are computed from [animation.Now], so
// a fake clock fully controls when delayed messages become runnable.
//
// Post and PostDelayed are safe to call from any goroutine. Messages only run
// on the goroutine that calls RunPending or Run.
type Looper struct {
	mu    sync.Mutex
	queue messageQueue
	seq   uint64
	wake  chan struct{}
}

type message struct {
	due       time.Time
	seq       uint64
	callback  func()
	index     int
	cancelled bool
}

// NewLooper creates an empty looper.
func NewLooper() *Looper {
	return &Looper{wake: make(chan struct{}, 1)}
}

// Post queues callback to run on the next pass.
func (l *Looper) Post(callback func()) {
	l.PostDelayed(0, callback)
}

// PostDelayed queues callback to run once delay has elapsed. The returned
// function removes the message if it has not run yet.
func (l *Looper) PostDelayed(delay time.Duration, callback func()) (cancel func()) {
	if callback == nil {
		return func() {}
	}
	if delay < 0 {
		delay = 0
	}
	l.mu.Lock()
	l.seq++
	msg := &message{due: animation.Now().Add(delay), seq: l.seq, callback: callback}
	heap.Push(&l.queue, msg)
	l.mu.Unlock()
	l.signal()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		msg.cancelled = true
		if msg.index >= 0 {
			heap.Remove(&l.queue, msg.index)
		}
	}
}

func (l *Looper) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued messages.
func (l *Looper) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Len()
}

// NextDue returns the due time of the earliest queued message.
func (l *Looper) NextDue() (time.Time, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.queue.Len() == 0 {
		return time.Time{}, false
	}
	return l.queue[0].due, true
}

// RunPending runs every message that is due, on the calling goroutine, and
// returns how many ran. Messages posted while running wait for the next call.
func (l *Looper) RunPending() int {
	l.mu.Lock()
	now := animation.Now()
	var batch []*message
	for l.queue.Len() > 0 && !l.queue[0].due.After(now) {
		batch = append(batch, heap.Pop(&l.queue).(*message))
	}
	l.mu.Unlock()

	ran := 0
	for _, msg := range batch {
		// An earlier message in the batch may have cancelled this one.
		l.mu.Lock()
		cancelled := msg.cancelled
		l.mu.Unlock()
		if cancelled {
			continue
		}
		l.run(msg)
		ran++
	}
	return ran
}

func (l *Looper) run(msg *message) {
	defer errors.Recover("engine.Looper.RunPending")
	msg.callback()
}

// Run processes messages until ctx is cancelled, sleeping until the next
// message is due or a new one is posted.
func (l *Looper) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		l.RunPending()

		wait := time.Hour
		if due, ok := l.NextDue(); ok {
			wait = max(due.Sub(animation.Now()), 0)
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		case <-timer.C:
		}
	}
}

// messageQueue is a min-heap of messages by due time, then post order.
type messageQueue []*message

func (q messageQueue) Len() int { return len(q) }

func (q messageQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q messageQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *messageQueue) Push(x any) {
	msg := x.(*message)
	msg.index = len(*q)
	*q = append(*q, msg)
}

func (q *messageQueue) Pop() any {
	old := *q
	n := len(old)
	msg := old[n-1]
	old[n-1] = nil
	msg.index = -1
	*q = old[:n-1]
	return msg
}
