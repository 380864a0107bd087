package tty

import "github.com/dshills/sweep/internal/input/key"

// EventKind distinguishes the handful of tcell event types the event loop
// (C6) cares about. Mouse, paste, and focus events are accepted by the
// underlying screen but dropped at conversion: nothing in the picker
// protocol consumes them.
type EventKind int

const (
	EventKey EventKind = iota
	EventResize
)

// Event is a TTY-sourced input event, already translated into
// internal/input/key terms so the rest of the program never imports tcell.
type Event struct {
	Kind          EventKind
	Key           key.Event
	Width, Height int
}
