// Package listeners provides ready-made emitter listeners.
//
// # Overview
//
// Everything here is built on the public emitter API; the Emitter itself never logs and never
// recovers from listener failures. Use these helpers at the call site when you want that
// behavior:
//
//   - Logger: writes each emission, with its data as YAML, to an io.Writer
//   - Isolate: a failure boundary that keeps one listener from aborting the dispatch
//   - Once: a listener that unregisters itself before its first run
//   - Recorder: collects emissions, mostly for tests
//
// # Example
//
//	e := emitter.New()
//	e.MustRegister("order:saved", listeners.Logger(os.Stdout, "order:saved"))
//	e.MustRegister("order:saved", listeners.Isolate(sendMail, func(err error) {
//	    fmt.Fprintln(os.Stderr, "mail failed:", err)
//	}))
package listeners
