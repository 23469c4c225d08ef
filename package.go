// Package emitter provides a minimal, synchronous, in-process event emitter.
//
// Callers register listeners under event names and later emit those names; every listener
// registered for the name runs on the caller's goroutine, in registration order, before Emit
// returns.
//
// # Quick Start
//
//	e := emitter.New(emitter.WithMaxListeners(20))
//
//	saved := emitter.FuncNamed("audit", func(data any) error {
//	    log.Printf("saved: %v", data)
//	    return nil
//	})
//
//	if _, err := e.Register("order:saved", saved); err != nil {
//	    return err // *emitter.CapacityError
//	}
//
//	if _, err := e.Emit("order:saved", order); err != nil {
//	    return err // returned unchanged by the failing listener
//	}
//
//	e.RemoveListener("order:saved", saved)
//
// # Capacity
//
// An Emitter tracks at most MaxListeners distinct event names (10 by default). Registering a
// listener under a new name beyond that limit fails with a *CapacityError, which matches
// ErrCapacityExceeded. Any number of listeners can be added under names that are already
// tracked. The limit is configured per Emitter, through New options, a Config, or
// SetMaxListeners; there is no process-wide default to mutate.
//
// # Listener Identity
//
// Go functions cannot be compared, so listeners are registered as *Listener handles created
// by Func or FuncNamed. Keep the handle to remove the listener later. Registering one handle
// twice makes it run twice per Emit, and RemoveListener removes one occurrence at a time.
//
// # Dispatch and Failures
//
// Emit is deliberately simple: it neither isolates listeners from each other nor schedules
// them asynchronously. The first listener error aborts the remaining dispatch and is returned
// unchanged; a panic unwinds through Emit. The listeners package offers Isolate for callers
// that want a failure boundary around a listener, plus ready-made logging and one-shot
// listeners.
//
// # Configuration
//
// LoadConfig reads a YAML document such as
//
//	max_listeners: 25
//
// validates it, and returns a Config for NewWithConfig.
package emitter
