package listeners

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rickchristie/emitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 2, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedTime
}

// -----------------------------------------------------------------------------
// Logger Tests
// -----------------------------------------------------------------------------

func TestLogger_WritesHeaderAndYAML(t *testing.T) {
	var buf bytes.Buffer
	e := emitter.New()
	e.MustRegister("order:saved", LoggerWithClock(&buf, "order:saved", fixedClock))

	_, err := e.Emit("order:saved", map[string]any{"id": 42, "status": "paid"})

	require.NoError(t, err)
	assert.Equal(t,
		">>> [order:saved]: 2025-02-15 14:30:00.000\n"+
			"id: 42\n"+
			"status: paid\n",
		buf.String())
}

func TestLogger_NilDataWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	l := LoggerWithClock(&buf, "ping", fixedClock)

	require.NoError(t, l.Handle(nil))

	assert.Equal(t, ">>> [ping]: 2025-02-15 14:30:00.000\n", buf.String())
}

func TestLogger_Name(t *testing.T) {
	l := Logger(&bytes.Buffer{}, "ping")

	assert.Equal(t, "logger:ping", l.Name())
}

// -----------------------------------------------------------------------------
// Isolate Tests
// -----------------------------------------------------------------------------

func TestIsolate_ErrorDoesNotAbortDispatch(t *testing.T) {
	e := emitter.New()
	rec := NewRecorder()
	boom := errors.New("boom")
	var failures []error

	failing := emitter.Func(func(any) error { return boom })
	e.MustRegister("e", Isolate(failing, func(err error) { failures = append(failures, err) })).
		MustRegister("e", rec.For("e"))

	_, err := e.Emit("e", "data")

	require.NoError(t, err)
	assert.Equal(t, []error{boom}, failures)
	assert.Equal(t, 1, rec.Len())
}

func TestIsolate_RecoversPanic(t *testing.T) {
	e := emitter.New()
	rec := NewRecorder()
	var failures []error

	panicking := emitter.Func(func(any) error { panic("kaboom") })
	e.MustRegister("e", Isolate(panicking, func(err error) { failures = append(failures, err) })).
		MustRegister("e", rec.For("e"))

	assert.NotPanics(t, func() {
		_, err := e.Emit("e", nil)
		assert.NoError(t, err)
	})

	require.Len(t, failures, 1)
	var panicErr *PanicError
	require.ErrorAs(t, failures[0], &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.Equal(t, "listener panicked: kaboom", panicErr.Error())
	assert.Equal(t, 1, rec.Len())
}

func TestIsolate_PanicWithErrorUnwraps(t *testing.T) {
	cause := errors.New("cause")
	var got error

	l := Isolate(emitter.Func(func(any) error { panic(cause) }), func(err error) { got = err })
	require.NoError(t, l.Handle(nil))

	assert.ErrorIs(t, got, cause)
}

func TestIsolate_NilCallbackDropsFailures(t *testing.T) {
	l := Isolate(emitter.Func(func(any) error { return errors.New("x") }), nil)

	assert.NoError(t, l.Handle(nil))
}

func TestIsolate_KeepsName(t *testing.T) {
	l := Isolate(emitter.FuncNamed("mailer", func(any) error { return nil }), nil)

	assert.Equal(t, "mailer", l.Name())
}

// -----------------------------------------------------------------------------
// Once Tests
// -----------------------------------------------------------------------------

func TestOnce_FiresOnce(t *testing.T) {
	e := emitter.New()
	count := 0

	_, err := Once(e, "ready", func(any) error {
		count++
		return nil
	})
	require.NoError(t, err)

	e.Emit("ready", nil)
	e.Emit("ready", nil)

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, e.ListenerCount("ready"))
}

func TestOnce_ReemitFromHandlerDoesNotReenter(t *testing.T) {
	e := emitter.New()
	count := 0

	_, err := Once(e, "ready", func(any) error {
		count++
		_, err := e.Emit("ready", nil)
		return err
	})
	require.NoError(t, err)

	_, err = e.Emit("ready", nil)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOnce_CanBeCancelled(t *testing.T) {
	e := emitter.New()
	called := false

	l, err := Once(e, "ready", func(any) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	e.RemoveListener("ready", l)
	e.Emit("ready", nil)

	assert.False(t, called)
}

func TestOnce_CapacityExceeded(t *testing.T) {
	e := emitter.New(emitter.WithMaxListeners(0))

	l, err := Once(e, "ready", func(any) error { return nil })

	assert.Nil(t, l)
	assert.ErrorIs(t, err, emitter.ErrCapacityExceeded)
}

// -----------------------------------------------------------------------------
// Recorder Tests
// -----------------------------------------------------------------------------

func TestRecorder_RecordsInOrder(t *testing.T) {
	e := emitter.New()
	rec := NewRecorder()
	e.MustRegister("a", rec.For("a")).MustRegister("b", rec.For("b"))

	e.Emit("b", 1)
	e.Emit("a", 2)
	e.Emit("b", 3)

	assert.Equal(t, []string{"b", "a", "b"}, rec.Events())
	assert.Equal(t, []Emission{
		{Event: "b", Data: 1},
		{Event: "a", Data: 2},
		{Event: "b", Data: 3},
	}, rec.Emissions())

	rec.Reset()
	assert.Equal(t, 0, rec.Len())
}
