package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}
	var zero T
	return zero
}

func assertNothing[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Errorf("Unexpected value received: %v", v)
	default:
	}
}

func TestNewEvent(t *testing.T) {
	event := NewEvent[string](false)
	require.NotNil(t, event)
	assert.Equal(t, 0, event.ListenerCount())
	assert.False(t, event.replay)

	assert.True(t, NewEvent[int](true).replay)
}

func TestEvent_ChannelListener(t *testing.T) {
	event := NewEvent[string](false)
	ch := make(chan string, 10)
	unregister := event.Listen(ch)
	assert.Equal(t, 1, event.ListenerCount())

	event.Notify("first")
	event.Notify("second")
	assert.Equal(t, "first", receive(t, ch))
	assert.Equal(t, "second", receive(t, ch))

	unregister()
	assert.Equal(t, 0, event.ListenerCount())
	event.Notify("third")
	assertNothing(t, ch)
}

func TestEvent_CallbackListener(t *testing.T) {
	event := NewEvent[int](false)
	var got []int
	unregister := event.OnNotify(func(v int) { got = append(got, v) })

	event.Notify(1)
	event.Notify(2)
	assert.Equal(t, []int{1, 2}, got)

	unregister()
	event.Notify(3)
	assert.Equal(t, []int{1, 2}, got)
}

func TestEvent_MixedListeners(t *testing.T) {
	event := NewEvent[int](false)
	ch := make(chan int, 1)
	var called int
	defer event.Listen(ch)()
	defer event.OnNotify(func(v int) { called = v })()

	event.Notify(42)
	assert.Equal(t, 42, receive(t, ch))
	assert.Equal(t, 42, called)
	assert.Equal(t, 2, event.ListenerCount())
}

func TestEvent_Replay_NoNotifyYet(t *testing.T) {
	event := NewEvent[string](true)
	ch := make(chan string, 1)
	defer event.Listen(ch)()
	assertNothing(t, ch)
}

func TestEvent_Replay_AfterNotify(t *testing.T) {
	event := NewEvent[string](true)
	event.Notify("first")
	event.Notify("latest")

	ch := make(chan string, 1)
	defer event.Listen(ch)()
	assert.Equal(t, "latest", receive(t, ch))

	var replayed string
	defer event.OnNotify(func(v string) { replayed = v })()
	assert.Equal(t, "latest", replayed)
}

func TestEvent_NoReplay(t *testing.T) {
	event := NewEvent[string](false)
	event.Notify("missed")

	ch := make(chan string, 1)
	defer event.Listen(ch)()
	assertNothing(t, ch)
}

func TestEvent_FullChannelDoesNotBlock(t *testing.T) {
	event := NewEvent[int](false)
	ch := make(chan int, 1)
	defer event.Listen(ch)()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			event.Notify(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full channel")
	}
	assert.Equal(t, 0, receive(t, ch))
}

func TestEvent_NilListenersPanic(t *testing.T) {
	event := NewEvent[int](false)
	assert.Panics(t, func() { event.Listen(nil) })
	assert.Panics(t, func() { event.OnNotify(nil) })
}

func TestEvent_UnregisterIsIdempotent(t *testing.T) {
	event := NewEvent[int](false)
	unregister := event.Listen(make(chan int, 1))
	other := event.Listen(make(chan int, 1))

	unregister()
	unregister()
	assert.Equal(t, 1, event.ListenerCount())
	other()
	assert.Equal(t, 0, event.ListenerCount())
}

func TestEvent_UnregisterDuringNotify(t *testing.T) {
	event := NewEvent[int](false)
	var unregister func()
	calls := 0
	unregister = event.OnNotify(func(int) {
		calls++
		unregister()
	})

	event.Notify(1)
	event.Notify(2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, event.ListenerCount())
}

func TestEvent_ConcurrentAccess(t *testing.T) {
	event := NewEvent[int](true)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			event.Notify(v)
		}(i)
		go func() {
			defer wg.Done()
			unregister := event.Listen(make(chan int, 5))
			unregister()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, event.ListenerCount())
}
