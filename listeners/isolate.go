package listeners

import (
	"fmt"

	"github.com/rickchristie/emitter"
)

// PanicError is reported by Isolate when the wrapped listener panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("listener panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Isolate wraps l in a failure boundary. Errors returned by l, and panics raised by it, are
// passed to onFailure instead of aborting the dispatch; the listeners registered after it
// still run. A nil onFailure drops the failures.
//
// The returned handle is a new listener: register and remove it, not l.
func Isolate(l *emitter.Listener, onFailure func(error)) *emitter.Listener {
	return emitter.FuncNamed(l.Name(), func(data any) error {
		defer func() {
			if r := recover(); r != nil {
				report(onFailure, &PanicError{Value: r})
			}
		}()

		if handleErr := l.Handle(data); handleErr != nil {
			report(onFailure, handleErr)
		}
		return nil
	})
}

func report(onFailure func(error), err error) {
	if onFailure != nil {
		onFailure(err)
	}
}
