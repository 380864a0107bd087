// Package engine implements the event loop (C6): it multiplexes TTY
// key/resize events, RPC peer I/O, and the chord-sequence timeout into
// calls against a picker.Picker, and turns the resulting actions into
// process-level effects (stdout output, RPC events, exit).
//
// Grounded on the teacher's internal/app.Application.eventLoop and
// startInputPolling (cmd/keystorm's single coordinating goroutine
// multiplexing backend events over a channel via select), generalized from
// an editor's mode/document dispatch to Sweep's picker/RPC dispatch.
package engine
