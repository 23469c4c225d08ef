package emitter

// HandlerFunc handles one emission. data is the value passed to Emit, nil when the caller has
// none. A non-nil error stops the dispatch it is part of.
type HandlerFunc func(data any) error

// Listener is a registration handle around a HandlerFunc.
//
// Listeners are compared by pointer identity: register the same *Listener twice and it runs
// twice per Emit, and RemoveListener needs the exact handle that was registered. Two handles
// wrapping the same function are distinct listeners.
type Listener struct {
	name string
	fn   HandlerFunc
}

// Func creates a Listener that calls fn.
func Func(fn HandlerFunc) *Listener {
	return &Listener{fn: fn}
}

// FuncNamed creates a Listener with a label. The label is informational only.
func FuncNamed(name string, fn HandlerFunc) *Listener {
	return &Listener{name: name, fn: fn}
}

// Name returns the label given to FuncNamed, or an empty string.
func (l *Listener) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// Handle invokes the wrapped function. A nil handle, or one without a function, does nothing.
func (l *Listener) Handle(data any) error {
	if l == nil || l.fn == nil {
		return nil
	}
	return l.fn(data)
}
