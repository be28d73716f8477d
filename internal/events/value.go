package events

import "sync"

// Value holds a current value and notifies listeners when it is replaced.
// Listeners always receive the current value on registration.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	changed *Event[T]
	equal   func(a, b T) bool
}

// NewValue creates a Value holding initial
func NewValue[T any](initial T) *Value[T] {
	v := &Value[T]{current: initial, changed: NewEvent[T](true)}
	v.changed.Notify(initial)
	return v
}

// NewDedupValue creates a Value that skips Set calls equal to the current value
func NewDedupValue[T any](initial T, equal func(a, b T) bool) *Value[T] {
	v := NewValue(initial)
	v.equal = equal
	return v
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores value and notifies listeners. Returns false when deduplicated.
func (v *Value[T]) Set(value T) bool {
	v.mu.Lock()
	if v.equal != nil && v.equal(v.current, value) {
		v.mu.Unlock()
		return false
	}
	v.current = value
	v.mu.Unlock()

	v.changed.Notify(value)
	return true
}

// Update applies fn to the current value under the lock, then notifies
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	v.current = fn(v.current)
	updated := v.current
	v.mu.Unlock()

	v.changed.Notify(updated)
	return updated
}

func (v *Value[T]) Listen(ch chan<- T) func() {
	return v.changed.Listen(ch)
}

func (v *Value[T]) OnChange(callback func(T)) func() {
	return v.changed.OnNotify(callback)
}

func (v *Value[T]) ListenerCount() int {
	return v.changed.ListenerCount()
}
