// internal/frame/decorator.go
package frame

// Decorator is the layout behaviour attached to a frame. The concrete
// variant is chosen by the tree builder from the frame's display type.
type Decorator interface {
	Frame() *Frame
}

// Decorator returns the attached decorator, or nil.
func (f *Frame) Decorator() Decorator {
	f.live()
	return f.decorator
}

// SetDecorator attaches d, replacing any earlier decorator.
func (f *Frame) SetDecorator(d Decorator) {
	f.live()
	f.decorator = d
}

// MustDecorator returns the attached decorator and panics with
// ErrNoDecorator when there is none.
func (f *Frame) MustDecorator() Decorator {
	f.live()
	if f.decorator == nil {
		panic(ErrNoDecorator)
	}
	return f.decorator
}
