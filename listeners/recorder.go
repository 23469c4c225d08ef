package listeners

import "github.com/rickchristie/emitter"

// Emission is one recorded emit.
type Emission struct {
	Event string
	Data  any
}

// Recorder collects emissions in the order they happen.
//
// Recorder is NOT thread-safe, like the Emitter feeding it.
type Recorder struct {
	emissions []Emission
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// For returns a listener that records emissions as event. Each call returns a new handle.
func (r *Recorder) For(event string) *emitter.Listener {
	return emitter.FuncNamed("recorder:"+event, func(data any) error {
		r.emissions = append(r.emissions, Emission{Event: event, Data: data})
		return nil
	})
}

// Emissions returns a copy of everything recorded so far.
func (r *Recorder) Emissions() []Emission {
	return append([]Emission(nil), r.emissions...)
}

// Events returns the recorded event names, in order.
func (r *Recorder) Events() []string {
	names := make([]string, len(r.emissions))
	for i, em := range r.emissions {
		names[i] = em.Event
	}
	return names
}

// Len returns the number of recorded emissions.
func (r *Recorder) Len() int {
	return len(r.emissions)
}

// Reset discards all recorded emissions.
func (r *Recorder) Reset() {
	r.emissions = nil
}
