// internal/frame/errors.go
package frame

import "errors"

var (
	// ErrDisposed is the panic value for any use of a disposed frame, and the
	// error returned when a disposed frame is passed to a tree operation.
	ErrDisposed = errors.New("frame: use of disposed frame")
	// ErrNoStyle is the panic value when style-dependent code runs before SetStyle.
	ErrNoStyle = errors.New("frame: style not set")
	// ErrNoDecorator is the panic value of MustDecorator on an undecorated frame.
	ErrNoDecorator = errors.New("frame: no decorator attached")
	// ErrNotChild is returned when a reference frame is not a child of the receiver.
	ErrNotChild = errors.New("frame: reference is not a child of this frame")
	// ErrCycle is returned when an insertion would make a frame its own ancestor.
	ErrCycle = errors.New("frame: insertion would create a cycle")
	// ErrBrokenLink is returned by Validate when a tree link invariant fails.
	ErrBrokenLink = errors.New("frame: broken tree link")
)
