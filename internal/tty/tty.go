package tty

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sweep/internal/input/key"
)

// Options configures a Source.
type Options struct {
	// Path, when set, opens this device instead of the controlling
	// terminal (`--tty PATH`, §6). Needed when stdin/stdout are occupied
	// by the RPC peer stream.
	Path string

	// AltScreen carries `--altscreen` (§6). Open does not read it: tcell's
	// Init and Fini always enter and leave the alternate screen buffer.
	AltScreen bool
}

// Source is the C6 TTY input/resize event source. It exists purely to
// acquire raw mode and translate tcell's key/resize events into
// internal/input/key terms; it never draws (no SetContent calls).
//
// Grounded on the teacher's internal/renderer/backend/terminal.go, which
// wraps the same tcell.Screen for Init/Fini/Size/PollEvent and converts
// tcell's key enum to its own.
type Source struct {
	screen tcell.Screen

	mu     sync.Mutex
	closed bool
}

// Open acquires the terminal and puts it in raw input mode. Callers must
// call Close on every exit path, including signal-driven ones, to restore
// the terminal (§6 "always restore terminal state on exit, including on
// signals").
func Open(opts Options) (*Source, error) {
	var screen tcell.Screen
	var err error

	if opts.Path != "" {
		tty, ttyErr := tcell.NewDevTty(opts.Path)
		if ttyErr != nil {
			return nil, fmt.Errorf("tty: open %s: %w", opts.Path, ttyErr)
		}
		screen, err = tcell.NewTerminfoScreenFromTty(tty)
	} else {
		screen, err = tcell.NewScreen()
	}
	if err != nil {
		return nil, fmt.Errorf("tty: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tty: init: %w", err)
	}

	// Sweep never draws through tcell, so mouse reporting and bracketed
	// paste would only add noise to PollEvent; leave both disabled.
	// opts.AltScreen is not consulted: tcell issues the terminfo
	// smcup/rmcup pair in Init/Fini whatever its value.

	return &Source{screen: screen}, nil
}

// FromScreen wraps an already-initialized tcell.Screen, bypassing terminal
// acquisition. Intended for tests against tcell.NewSimulationScreen, which
// needs no real TTY.
func FromScreen(screen tcell.Screen) *Source {
	return &Source{screen: screen}
}

// Close restores the terminal. Safe to call more than once.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.screen.Fini()
}

// Size returns the current terminal dimensions.
func (s *Source) Size() (width, height int) {
	return s.screen.Size()
}

// PollEvent blocks until the next key or resize event and returns it
// converted to Sweep's own terms. It returns ok == false once the
// underlying screen has been finalized (Close called, or the screen
// delivered its own shutdown signal).
func (s *Source) PollEvent() (ev Event, ok bool) {
	for {
		raw := s.screen.PollEvent()
		if raw == nil {
			return Event{}, false
		}
		switch e := raw.(type) {
		case *tcell.EventKey:
			return Event{Kind: EventKey, Key: convertKey(e)}, true
		case *tcell.EventResize:
			w, h := e.Size()
			return Event{Kind: EventResize, Width: w, Height: h}, true
		default:
			// Mouse/paste/focus events: not part of the picker protocol.
			continue
		}
	}
}

// PostInterrupt posts an interrupt event to the underlying screen. Source's
// PollEvent discards interrupt events and keeps waiting, so this does not
// make a blocked PollEvent return.
func (s *Source) PostInterrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// convertKey converts a tcell key event to our own key.Event, grounded on
// the teacher's convertKey/convertMod but emitting internal/input/key
// terms instead of a second, parallel key enum.
func convertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())

	// tcell.KeyTab and tcell.KeyEnter share their values with KeyCtrlI and
	// KeyCtrlM; they are reported as Tab and Enter, not as ctrl-letters.
	if k := e.Key(); k != tcell.KeyTab && k != tcell.KeyEnter {
		if r, ok := ctrlLetterFromTcell(k); ok {
			return key.NewRuneEvent(r, mods.With(key.ModCtrl))
		}
	}

	if e.Key() == tcell.KeyRune {
		return key.NewRuneEvent(e.Rune(), mods)
	}

	if k, ok := convertSpecialKey(e.Key()); ok {
		return key.NewSpecialEvent(k, mods)
	}

	// Unrecognized tcell key (e.g. a keypad or locale-specific key we
	// don't model): surface as a rune so it can still reach the query
	// buffer rather than vanishing silently.
	return key.NewRuneEvent(e.Rune(), mods)
}

func convertMod(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out = out.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		out = out.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		out = out.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		out = out.With(key.ModMeta)
	}
	return out
}

// ctrlLetterFromTcell maps tcell's discrete KeyCtrlA..KeyCtrlZ constants
// back to the rune they represent. key.Key has no equivalent discrete
// constants: Ctrl+letter is NewRuneEvent(letter, ModCtrl) in our scheme.
func ctrlLetterFromTcell(k tcell.Key) (rune, bool) {
	if k < tcell.KeyCtrlA || k > tcell.KeyCtrlZ {
		return 0, false
	}
	return rune('a' + (k - tcell.KeyCtrlA)), true
}

func convertSpecialKey(k tcell.Key) (key.Key, bool) {
	switch k {
	case tcell.KeyEscape:
		return key.KeyEscape, true
	case tcell.KeyEnter:
		return key.KeyEnter, true
	case tcell.KeyTab:
		return key.KeyTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace, true
	case tcell.KeyDelete:
		return key.KeyDelete, true
	case tcell.KeyInsert:
		return key.KeyInsert, true
	case tcell.KeyHome:
		return key.KeyHome, true
	case tcell.KeyEnd:
		return key.KeyEnd, true
	case tcell.KeyPgUp:
		return key.KeyPageUp, true
	case tcell.KeyPgDn:
		return key.KeyPageDown, true
	case tcell.KeyUp:
		return key.KeyUp, true
	case tcell.KeyDown:
		return key.KeyDown, true
	case tcell.KeyLeft:
		return key.KeyLeft, true
	case tcell.KeyRight:
		return key.KeyRight, true
	case tcell.KeyF1:
		return key.KeyF1, true
	case tcell.KeyF2:
		return key.KeyF2, true
	case tcell.KeyF3:
		return key.KeyF3, true
	case tcell.KeyF4:
		return key.KeyF4, true
	case tcell.KeyF5:
		return key.KeyF5, true
	case tcell.KeyF6:
		return key.KeyF6, true
	case tcell.KeyF7:
		return key.KeyF7, true
	case tcell.KeyF8:
		return key.KeyF8, true
	case tcell.KeyF9:
		return key.KeyF9, true
	case tcell.KeyF10:
		return key.KeyF10, true
	case tcell.KeyF11:
		return key.KeyF11, true
	case tcell.KeyF12:
		return key.KeyF12, true
	default:
		return key.KeyNone, false
	}
}
