package go_func_utils

import "runtime/debug"
import "log"

func SafeGo(logger *log.Logger, fn func()) {
	// the tview UI owns the terminal and hides anything written to stderr,
	// so record the panic in our logger before crashing out again...
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.Printf("PANIC: %v\n%s", r, debug.Stack())
				}
				panic(r)
			}
		}()
		fn()
	}()
}

// SafeCall runs fn synchronously and swallows any panic after logging it.
// Reserved for side channels (audio cues) whose failure must not reach the caller.
func SafeCall(logger *log.Logger, fn func()) (recovered bool) {
	defer func() {
		if r := recover(); r != nil {
			recovered = true
			if logger != nil {
				logger.Printf("recovered: %v", r)
			}
		}
	}()
	fn()
	return false
}
