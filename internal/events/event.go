package events

import (
	"sync"
)

// listener is either a channel or a callback; exactly one field is set
type listener[T any] struct {
	ch       chan<- T
	callback func(T)
}

// Event fans values out to channel and callback listeners.
// Channel sends never block: a full channel misses that value.
// Callbacks run synchronously on the notifying goroutine, outside the lock.
type Event[T any] struct {
	mu        sync.RWMutex
	listeners map[uint64]listener[T]
	nextID    uint64
	replay    bool
	last      T
	hasLast   bool
}

// NewEvent creates an Event. With replay set, new listeners immediately get
// the most recent value, if any value has been notified yet.
func NewEvent[T any](replay bool) *Event[T] {
	return &Event[T]{
		listeners: make(map[uint64]listener[T]),
		replay:    replay,
	}
}

// Listen registers ch and returns its deregistration function
func (e *Event[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("events: channel cannot be nil")
	}
	return e.add(listener[T]{ch: ch})
}

// OnNotify registers callback and returns its deregistration function
func (e *Event[T]) OnNotify(callback func(T)) func() {
	if callback == nil {
		panic("events: callback cannot be nil")
	}
	return e.add(listener[T]{callback: callback})
}

func (e *Event[T]) add(l listener[T]) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	last, deliver := e.last, e.replay && e.hasLast
	e.mu.Unlock()

	if deliver {
		l.deliver(last)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.listeners, id)
			e.mu.Unlock()
		})
	}
}

// Notify delivers value to every registered listener
func (e *Event[T]) Notify(value T) {
	e.mu.Lock()
	if e.replay {
		e.last = value
		e.hasLast = true
	}
	snapshot := make([]listener[T], 0, len(e.listeners))
	for _, l := range e.listeners {
		snapshot = append(snapshot, l)
	}
	e.mu.Unlock()

	for _, l := range snapshot {
		l.deliver(value)
	}
}

// ListenerCount returns the current number of registered listeners
func (e *Event[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

func (l listener[T]) deliver(value T) {
	if l.callback != nil {
		l.callback(value)
		return
	}
	select {
	case l.ch <- value:
	default:
	}
}
