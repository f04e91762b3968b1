// Package alert fires an event when a task crosses its deadline boundary
// (23:59:59 on the deadline date). Events are held in a min-heap keyed by
// boundary time; a single goroutine sleeps until the earliest one is due.
package alert

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidBoundary = errors.New("alert: invalid boundary time")

type DeadlineEvent struct {
	TaskID     string
	Title      string
	BoundaryAt time.Time
}

type queueItem struct {
	event DeadlineEvent
}

type boundaryQueue []queueItem

func (q boundaryQueue) Len() int { return len(q) }

func (q boundaryQueue) Less(i, j int) bool {
	return q[i].event.BoundaryAt.Before(q[j].event.BoundaryAt)
}

func (q boundaryQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *boundaryQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *boundaryQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   boundaryQueue
	out     chan DeadlineEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(boundaryQueue, 0),
		out:    make(chan DeadlineEvent, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DeadlineEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues the boundary event for a task, replacing any pending
// event with the same task ID so deadline edits reschedule instead of
// duplicating.
func (e *Engine) Schedule(ev DeadlineEvent) error {
	if ev.BoundaryAt.IsZero() {
		return ErrInvalidBoundary
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("alert: engine stopped")
	}

	e.removeLocked(ev.TaskID)
	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// Cancel drops any pending event for the task; clearing a deadline or
// deleting the task lands here.
func (e *Engine) Cancel(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removeLocked(taskID) {
		e.signalWakeup()
	}
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	drainTimer(timer)
	defer timer.Stop()

	for {
		wait, pending := e.nextWait()
		if !pending {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
			e.deliverDue(time.Now())
		case <-e.wakeup:
			// Queue changed under the armed timer; re-derive the wait.
			drainTimer(timer)
		case <-e.stopCh:
			return
		}
	}
}

// nextWait reports the time until the earliest pending boundary, clamped at
// zero, and whether anything is pending at all.
func (e *Engine) nextWait() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return 0, false
	}
	wait := time.Until(e.queue[0].event.BoundaryAt)
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

func (e *Engine) deliverDue(now time.Time) {
	for _, ev := range e.popDue(now) {
		select {
		case e.out <- ev:
		default:
			atomic.AddUint64(&e.dropped, 1)
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) popDue(now time.Time) []DeadlineEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DeadlineEvent, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.BoundaryAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.event)
	}
	return out
}

func (e *Engine) removeLocked(taskID string) bool {
	for i := range e.queue {
		if e.queue[i].event.TaskID == taskID {
			heap.Remove(&e.queue, i)
			return true
		}
	}
	return false
}

// drainTimer stops the timer and clears an already-fired tick so the next
// Reset arms a clean timer.
func drainTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
