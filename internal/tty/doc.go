// Package tty is the TTY key/resize event source for the event loop (C6).
// Terminal rendering primitives are out of scope (§1): this package only
// acquires raw mode, restores it on every exit path, and translates
// tcell's key/resize events into internal/input/key terms. It never calls
// Screen.SetContent or otherwise draws.
//
// Grounded on the teacher's internal/renderer/backend/terminal.go, which
// wraps the same gdamore/tcell/v2 Screen for Init/Fini/PollEvent/Size and
// converts tcell's key enum to its own; this package keeps that shape and
// drops everything backend.Terminal does beyond input (styles, mouse
// buttons, cell drawing).
package tty
