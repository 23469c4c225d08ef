package listeners

import (
	"fmt"
	"io"
	"time"

	"github.com/rickchristie/emitter"
	"gopkg.in/yaml.v3"
)

const timestampLayout = "2006-01-02 15:04:05.000"

// Logger returns a listener that logs every emission of event to w.
// The emit data is logged as YAML, with nothing truncated.
//
// Output looks like:
//
//	>>> [order:saved]: 2025-02-15 14:30:00.000
//	id: 42
//	total: 19.99
func Logger(w io.Writer, event string) *emitter.Listener {
	return LoggerWithClock(w, event, time.Now)
}

// LoggerWithClock is like Logger with an injectable time source.
func LoggerWithClock(w io.Writer, event string, now func() time.Time) *emitter.Listener {
	l := &logger{out: w, event: event, now: now}
	return emitter.FuncNamed("logger:"+event, l.handle)
}

type logger struct {
	out   io.Writer
	event string
	now   func() time.Time
}

func (l *logger) handle(data any) error {
	fmt.Fprintf(l.out, ">>> [%s]: %s\n", l.event, l.now().Format(timestampLayout))
	if data == nil {
		return nil
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		fmt.Fprintf(l.out, "(failed to marshal: %v)\n", err)
		return nil
	}
	_, err = l.out.Write(out)
	return err
}
