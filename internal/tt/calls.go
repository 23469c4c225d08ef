// Package tt holds test helpers shared by the module's test suites.
package tt

import "errors"

// ErrInjected is returned by handlers created with Calls.Failing.
var ErrInjected = errors.New("injected failure")

// Calls records handler invocations by label, in order.
//
// Handlers are plain func(any) error values so they convert to emitter.HandlerFunc without
// this package importing the emitter.
type Calls struct {
	labels []string
	data   []any
}

// Handler returns a handler that records label and the data it receives.
func (c *Calls) Handler(label string) func(any) error {
	return func(data any) error {
		c.labels = append(c.labels, label)
		c.data = append(c.data, data)
		return nil
	}
}

// Failing returns a handler that records label and then fails with ErrInjected.
func (c *Calls) Failing(label string) func(any) error {
	return func(data any) error {
		c.labels = append(c.labels, label)
		c.data = append(c.data, data)
		return ErrInjected
	}
}

// Labels returns the recorded labels.
func (c *Calls) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Data returns the recorded data values.
func (c *Calls) Data() []any {
	return append([]any(nil), c.data...)
}

// Reset forgets all recorded calls.
func (c *Calls) Reset() {
	c.labels = nil
	c.data = nil
}
