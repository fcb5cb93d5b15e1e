package event

import "sync"

// Queue is a FIFO message list drained by a single consumer.
// Push is safe from concurrent producers; Drain hands over everything
// pushed so far and leaves the queue empty.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// Push appends a message.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()
}

// Drain returns all pending messages in FIFO order, or nil when empty.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending messages.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Reset discards all pending messages.
func (q *Queue[T]) Reset() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
