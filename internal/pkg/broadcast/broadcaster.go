// Package broadcast fans values out to any number of subscribers without
// letting a slow subscriber block the publisher.
package broadcast

import "sync"

// DefaultBuffer is the per-subscriber channel capacity
const DefaultBuffer = 16

// Broadcaster delivers each published value to every current subscriber.
// Subscribers whose buffer is full miss the value.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	buffer int
	subs   map[chan T]struct{}
	closed bool
}

// New creates a broadcaster; buffer <= 0 uses DefaultBuffer
func New[T any](buffer int) *Broadcaster[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broadcaster[T]{
		buffer: buffer,
		subs:   make(map[chan T]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; it is safe to call more than once.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, b.buffer)

	b.mu.Lock()
	if b.closed {
		close(ch)
		b.mu.Unlock()
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	return ch, func() { b.unsubscribe(ch) }
}

func (b *Broadcaster[T]) unsubscribe(ch chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish sends v to every subscriber with room in its buffer
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Subscribers returns the number of live subscribers
func (b *Broadcaster[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel and rejects new subscribers
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
