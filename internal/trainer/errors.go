package trainer

import "errors"

var (
	// ErrNotReady is returned when a session is started without any movements
	ErrNotReady = errors.New("not ready: plan has no movements")
	// ErrIndexOutOfRange is returned by plan edits addressing a missing movement
	ErrIndexOutOfRange = errors.New("movement index out of range")
	// ErrInvalidMovement is returned when a movement has no id or name
	ErrInvalidMovement = errors.New("movement requires an id and a name")
)
