package listeners

import "github.com/rickchristie/emitter"

// Once registers fn under event so that it runs for the next emission only. The listener
// removes itself before fn is called, so fn may emit event again without re-entering itself.
//
// The returned handle can be passed to RemoveListener to cancel it before it fires.
func Once(e *emitter.Emitter, event string, fn emitter.HandlerFunc) (*emitter.Listener, error) {
	var l *emitter.Listener
	l = emitter.FuncNamed("once:"+event, func(data any) error {
		e.RemoveListener(event, l)
		return fn(data)
	})

	if _, err := e.Register(event, l); err != nil {
		return nil, err
	}
	return l, nil
}
