// Package shell interprets a small command language that drives an emitter.Emitter.
// It backs the emitterctl REPL and keeps its behavior testable without a terminal.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/rickchristie/emitter"
	"github.com/rickchristie/emitter/listeners"
	"gopkg.in/yaml.v3"
)

var (
	// ErrQuit is returned by Exec for quit and exit.
	ErrQuit = errors.New("quit")

	// ErrUsage wraps errors caused by malformed commands.
	ErrUsage = errors.New("usage")
)

// Usage describes every command understood by Exec.
const Usage = `Commands:
  on <event> <label>       register a logging listener (same label = same listener)
  fail <event> <label>     register a listener that returns an error
  emit <event> [yaml]      emit event, with an optional YAML value as data
  off <event> <label>      remove the first occurrence of a listener
  clear <event>            remove the event and all its listeners
  names                    list tracked events with their listener counts
  count <event>            number of listeners for event
  listeners <event>        labels of the listeners for event, in dispatch order
  max [value]              show or set the maximum number of distinct events
  help                     show this text
  quit                     leave`

// Commands lists the command keywords, for completion.
var Commands = []string{
	"on", "fail", "emit", "off", "clear", "names", "count", "listeners", "max", "help", "quit",
}

type handleKey struct {
	event string
	label string
}

// Shell executes commands against an Emitter and writes results to an io.Writer.
//
// Listeners created by on and fail are remembered per (event, label) pair, so repeating a
// label registers the same handle again and off can find it.
type Shell struct {
	emitter *emitter.Emitter
	out     io.Writer
	now     func() time.Time
	handles map[handleKey]*emitter.Listener
}

// New creates a Shell driving e.
func New(e *emitter.Emitter, out io.Writer) *Shell {
	return &Shell{
		emitter: e,
		out:     out,
		now:     time.Now,
		handles: make(map[handleKey]*emitter.Listener),
	}
}

// WithClock sets the time source used by logging listeners.
func (s *Shell) WithClock(now func() time.Time) *Shell {
	s.now = now
	return s
}

// Emitter returns the driven Emitter.
func (s *Shell) Emitter() *emitter.Emitter {
	return s.emitter
}

// Exec runs one command line. Blank lines and lines starting with # are ignored.
func (s *Shell) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	cmd, rest := cut(line)
	switch strings.ToLower(cmd) {
	case "on":
		return s.register(rest, false)
	case "fail":
		return s.register(rest, true)
	case "emit":
		return s.emit(rest)
	case "off":
		return s.off(rest)
	case "clear":
		return s.clear(rest)
	case "names":
		return s.names()
	case "count":
		return s.count(rest)
	case "listeners":
		return s.listeners(rest)
	case "max":
		return s.max(rest)
	case "help", "?":
		fmt.Fprintln(s.out, Usage)
		return nil
	case "quit", "exit":
		return ErrQuit
	default:
		return fmt.Errorf("%w: unknown command %q, try help", ErrUsage, cmd)
	}
}

func (s *Shell) register(args string, failing bool) error {
	event, label := cut(args)
	if event == "" || label == "" || strings.ContainsFunc(label, unicode.IsSpace) {
		if failing {
			return fmt.Errorf("%w: fail <event> <label>", ErrUsage)
		}
		return fmt.Errorf("%w: on <event> <label>", ErrUsage)
	}

	key := handleKey{event: event, label: label}
	l, ok := s.handles[key]
	if !ok {
		l = s.newListener(event, label, failing)
	}

	if _, err := s.emitter.Register(event, l); err != nil {
		return err
	}
	s.handles[key] = l
	fmt.Fprintf(s.out, "registered %s on %s (%d listener(s))\n",
		label, event, s.emitter.ListenerCount(event))
	return nil
}

func (s *Shell) newListener(event, label string, failing bool) *emitter.Listener {
	if failing {
		return emitter.FuncNamed(label, func(any) error {
			return fmt.Errorf("listener %s failed on %s", label, event)
		})
	}
	logger := listeners.LoggerWithClock(s.out, event+"/"+label, s.now)
	return emitter.FuncNamed(label, logger.Handle)
}

func (s *Shell) emit(args string) error {
	event, raw := cut(args)
	if event == "" {
		return fmt.Errorf("%w: emit <event> [yaml]", ErrUsage)
	}

	var data any
	if raw != "" {
		if err := yaml.Unmarshal([]byte(raw), &data); err != nil {
			return fmt.Errorf("invalid data for %s: %w", event, err)
		}
	}

	count := s.emitter.ListenerCount(event)
	if _, err := s.emitter.Emit(event, data); err != nil {
		return fmt.Errorf("emit %s: %w", event, err)
	}
	fmt.Fprintf(s.out, "emitted %s to %d listener(s)\n", event, count)
	return nil
}

func (s *Shell) off(args string) error {
	event, label := cut(args)
	if event == "" || label == "" {
		return fmt.Errorf("%w: off <event> <label>", ErrUsage)
	}

	l, ok := s.handles[handleKey{event: event, label: label}]
	if !ok {
		return fmt.Errorf("no listener %s on %s", label, event)
	}
	s.emitter.RemoveListener(event, l)
	fmt.Fprintf(s.out, "removed %s from %s (%d listener(s))\n",
		label, event, s.emitter.ListenerCount(event))
	return nil
}

func (s *Shell) clear(args string) error {
	event, _ := cut(args)
	if event == "" {
		return fmt.Errorf("%w: clear <event>", ErrUsage)
	}

	s.emitter.RemoveAllListeners(event)
	fmt.Fprintf(s.out, "cleared %s\n", event)
	return nil
}

func (s *Shell) names() error {
	names := s.emitter.EventNames()
	if len(names) == 0 {
		fmt.Fprintln(s.out, "(no events)")
		return nil
	}
	for _, name := range names {
		fmt.Fprintf(s.out, "%s\t%d\n", name, s.emitter.ListenerCount(name))
	}
	return nil
}

func (s *Shell) count(args string) error {
	event, _ := cut(args)
	if event == "" {
		return fmt.Errorf("%w: count <event>", ErrUsage)
	}

	fmt.Fprintln(s.out, s.emitter.ListenerCount(event))
	return nil
}

func (s *Shell) listeners(args string) error {
	event, _ := cut(args)
	if event == "" {
		return fmt.Errorf("%w: listeners <event>", ErrUsage)
	}

	seq, ok := s.emitter.Listeners(event)
	if !ok {
		fmt.Fprintf(s.out, "%s is not tracked\n", event)
		return nil
	}
	labels := make([]string, len(seq))
	for i, l := range seq {
		labels[i] = l.Name()
		if labels[i] == "" {
			labels[i] = "(unnamed)"
		}
	}
	fmt.Fprintf(s.out, "[%s]\n", strings.Join(labels, ", "))
	return nil
}

func (s *Shell) max(args string) error {
	if args == "" {
		fmt.Fprintln(s.out, s.emitter.MaxListeners())
		return nil
	}

	var value any
	if err := yaml.Unmarshal([]byte(args), &value); err != nil {
		return fmt.Errorf("invalid value %q: %w", args, err)
	}

	// Values that are not whole numbers leave the limit unchanged.
	fmt.Fprintf(s.out, "max listeners is %d\n", s.emitter.SetMaxListenersFrom(value).MaxListeners())
	return nil
}

// cut splits off the first whitespace-separated word of s.
func cut(s string) (head, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
