package emitter

import (
	"math"
	"slices"
)

// DefaultMaxListeners is the default capacity of an Emitter: the maximum number of distinct
// event names it tracks at the same time.
const DefaultMaxListeners = 10

// Emitter maps event names to ordered sequences of listeners and dispatches to them
// synchronously.
//
// # Overview
//
// Emitter is the whole of the dispatch mechanism. It:
//   - Stores listeners per event name, in registration order, duplicates allowed
//   - Invokes them in that order on Emit, on the caller's goroutine
//   - Bounds the number of distinct event names (not listeners per name)
//
// # Creating and Using
//
//	e := emitter.New()
//	greet := emitter.Func(func(data any) error {
//	    fmt.Println("hello", data)
//	    return nil
//	})
//
//	e.MustRegister("greet", greet).MustRegister("greet", greet)
//	e.Emit("greet", "world") // prints twice
//
// The zero value is ready to use and has a capacity of DefaultMaxListeners.
//
// # Failure Policy
//
// Emit does not isolate listeners. The first error returned by a listener is handed back
// unchanged and the listeners after it are skipped. Panics are not recovered. Wrap a listener
// with listeners.Isolate when a failure boundary is needed.
//
// # Thread Safety
//
// Emitter is NOT thread-safe. Guard it with a sync.Mutex when sharing it across goroutines.
type Emitter struct {
	events       map[string][]*Listener
	order        []string
	maxListeners int
	initialized  bool
}

// New creates an Emitter with DefaultMaxListeners capacity, then applies opts.
func New(opts ...Option) *Emitter {
	e := NewWithConfig(DefaultConfig())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewWithConfig creates an Emitter from cfg.
func NewWithConfig(cfg Config) *Emitter {
	return &Emitter{
		events:       make(map[string][]*Listener),
		maxListeners: cfg.MaxListeners,
		initialized:  true,
	}
}

func (e *Emitter) lazyInit() {
	if e.initialized {
		return
	}
	e.events = make(map[string][]*Listener)
	e.maxListeners = DefaultMaxListeners
	e.initialized = true
}

// Register appends l to the end of the sequence for name.
//
// When name is not tracked yet and the Emitter already tracks MaxListeners names, nothing is
// registered and a *CapacityError is returned. Adding listeners to a name that is already
// tracked always succeeds.
//
// The receiver is returned in both cases.
func (e *Emitter) Register(name string, l *Listener) (*Emitter, error) {
	e.lazyInit()

	seq, tracked := e.events[name]
	if !tracked {
		if len(e.events) >= e.maxListeners {
			return e, &CapacityError{EventName: name, Limit: e.maxListeners}
		}
		e.order = append(e.order, name)
	}
	e.events[name] = append(seq, l)
	return e, nil
}

// On is an alias for Register.
func (e *Emitter) On(name string, l *Listener) (*Emitter, error) {
	return e.Register(name, l)
}

// AddListener is an alias for Register.
func (e *Emitter) AddListener(name string, l *Listener) (*Emitter, error) {
	return e.Register(name, l)
}

// MustRegister is like Register but panics when the capacity is exceeded.
// Use it for chained setup code where the set of event names is known up front.
func (e *Emitter) MustRegister(name string, l *Listener) *Emitter {
	if _, err := e.Register(name, l); err != nil {
		panic(err)
	}
	return e
}

// Emit invokes every listener registered for name, in registration order, passing data to
// each. Emitting a name nobody listens to is a no-op.
//
// Dispatch runs over a snapshot of the sequence, so listeners registered or removed by a
// listener take effect from the next Emit.
//
// The first error returned by a listener stops the dispatch and is returned as is.
func (e *Emitter) Emit(name string, data any) (*Emitter, error) {
	seq, ok := e.events[name]
	if !ok || len(seq) == 0 {
		return e, nil
	}

	for _, l := range slices.Clone(seq) {
		if err := l.Handle(data); err != nil {
			return e, err
		}
	}
	return e, nil
}

// EventNames returns the tracked event names in order of first registration. Names whose
// sequence was emptied by RemoveListener are still tracked.
func (e *Emitter) EventNames() []string {
	return slices.Clone(e.order)
}

// ListenerCount returns the number of listeners registered for name, 0 when untracked.
func (e *Emitter) ListenerCount(name string) int {
	return len(e.events[name])
}

// Len returns the number of tracked event names.
func (e *Emitter) Len() int {
	return len(e.events)
}

// MaxListeners returns the maximum number of distinct event names.
func (e *Emitter) MaxListeners() int {
	e.lazyInit()
	return e.maxListeners
}

// SetMaxListeners sets the maximum number of distinct event names.
// The limit only applies to future registrations of new names; names already tracked are kept
// even when they exceed it.
func (e *Emitter) SetMaxListeners(n int) *Emitter {
	e.lazyInit()
	e.maxListeners = n
	return e
}

// SetMaxListenersFrom sets the capacity from an untyped value, such as one decoded from YAML
// or JSON. Any Go integer is accepted, and floats only when they hold a whole number. Other
// values (strings, NaN, infinities, fractions, nil) are ignored.
//
// Whole numbers outside the range of int are clamped to math.MaxInt or math.MinInt, so a huge
// value means an effectively unlimited capacity.
func (e *Emitter) SetMaxListenersFrom(v any) *Emitter {
	if n, ok := wholeNumber(v); ok {
		e.SetMaxListeners(n)
	}
	return e
}

func wholeNumber(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return clampInt64(n), true
	case uint:
		return clampUint64(uint64(n)), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return clampUint64(uint64(n)), true
	case uint64:
		return clampUint64(n), true
	case float32:
		return wholeFloat(float64(n))
	case float64:
		return wholeFloat(n)
	default:
		return 0, false
	}
}

func clampInt64(n int64) int {
	switch {
	case n > math.MaxInt:
		return math.MaxInt
	case n < math.MinInt:
		return math.MinInt
	default:
		return int(n)
	}
}

func clampUint64(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func wholeFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Floor(f) != f {
		return 0, false
	}
	// float64(math.MaxInt) rounds up to 2^63 on 64-bit, which does not fit in an int.
	if f >= float64(math.MaxInt) {
		return math.MaxInt, true
	}
	if f <= float64(math.MinInt) {
		return math.MinInt, true
	}
	return int(f), true
}

// Listeners returns a copy of the sequence registered for name, and false when name is not
// tracked. Modifying the returned slice does not affect the Emitter.
func (e *Emitter) Listeners(name string) ([]*Listener, bool) {
	seq, ok := e.events[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(seq), true
}

// RemoveListener removes the first occurrence of l from the sequence for name. Later entries
// shift down. The name stays tracked even if its sequence becomes empty.
func (e *Emitter) RemoveListener(name string, l *Listener) *Emitter {
	seq, ok := e.events[name]
	if !ok {
		return e
	}
	if i := slices.Index(seq, l); i >= 0 {
		e.events[name] = slices.Delete(seq, i, i+1)
	}
	return e
}

// RemoveAllListeners stops tracking name and drops its sequence.
func (e *Emitter) RemoveAllListeners(name string) *Emitter {
	if _, ok := e.events[name]; !ok {
		return e
	}
	delete(e.events, name)
	if i := slices.Index(e.order, name); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
	return e
}

// RemoveAllListener is an alias for RemoveAllListeners.
func (e *Emitter) RemoveAllListener(name string) *Emitter {
	return e.RemoveAllListeners(name)
}

// Clear stops tracking every event name. The capacity is kept.
func (e *Emitter) Clear() *Emitter {
	e.lazyInit()
	e.events = make(map[string][]*Listener)
	e.order = nil
	return e
}
