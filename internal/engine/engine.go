package engine

import (
	"errors"
	"time"

	"github.com/dshills/sweep/internal/app"
	"github.com/dshills/sweep/internal/haystack"
	"github.com/dshills/sweep/internal/picker"
	"github.com/dshills/sweep/internal/rpc"
	"github.com/dshills/sweep/internal/tty"
)

// Config wires an Engine to its collaborators. TTY and RPC are both
// optional (a pure `--rpc` invocation with no controlling terminal has
// TTY == nil; a non-RPC invocation has RPC == nil), but at least one must
// be set or the loop has nothing to wait on besides StdinClosed.
type Config struct {
	Picker *picker.Picker
	Logger *app.Logger

	// TTY is the key/resize source. Nil when running headless (--rpc
	// without a controlling terminal).
	TTY *tty.Source

	// RPC is the dispatcher for the control-plane peer, already populated
	// via rpc.RegisterPickerMethods. Nil in plain CLI mode.
	RPC *rpc.Dispatcher

	// Version is reported in the `ready` event (RPC mode only).
	Version string

	// StdinClosed, if non-nil, is closed when non-RPC stdin candidate
	// reading reaches EOF. Combined with an empty haystack this triggers
	// ErrNoCandidates exit (§4.6, §8 scenario set).
	StdinClosed <-chan struct{}
}

// Engine is the C6 event loop: one coordinating goroutine multiplexing TTY
// input, RPC I/O, the chord-sequence timeout, and ranker-driven picker
// state into a single sequential stream of actions.
type Engine struct {
	cfg Config
	log *app.Logger
}

// New creates an Engine from cfg.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = app.GetLogger()
	}
	return &Engine{cfg: cfg, log: log.WithComponent("engine")}
}

// Result is what Run reports once the loop exits.
type Result struct {
	// Selected is the item sweep.select fired on, if any.
	Selected *haystack.Item
	// Err is the terminating condition: app.ErrQuit, app.ErrNoCandidates,
	// app.ErrTerminate, or an I/O error from the TTY/RPC layer.
	Err error
}

// Run drives the event loop until a terminating condition is reached. The
// TTY (if set) is guaranteed to be closed before Run returns, including on
// a recovered panic (§5 "MUST be restored on every exit path including
// panics").
func (e *Engine) Run() (result Result) {
	p := e.cfg.Picker

	if e.cfg.TTY != nil {
		defer func() {
			if r := recover(); r != nil {
				e.cfg.TTY.Close()
				panic(r)
			}
		}()
		defer e.cfg.TTY.Close()
	}

	var ttyEvents chan tty.Event
	if e.cfg.TTY != nil {
		ttyEvents = make(chan tty.Event, 64)
		go e.pollTTY(ttyEvents)
	}

	var rpcDone chan error
	if e.cfg.RPC != nil {
		if err := e.cfg.RPC.Emit("ready", e.cfg.Version); err != nil {
			e.log.Warn("failed to emit ready event", "error", err)
		}
		rpcDone = make(chan error, 1)
		go func() { rpcDone <- e.cfg.RPC.Serve() }()
	}

	chordTimer := time.NewTimer(time.Hour)
	if !chordTimer.Stop() {
		<-chordTimer.C
	}
	defer chordTimer.Stop()

	for {
		select {
		case ev, ok := <-ttyEvents:
			if !ok {
				ttyEvents = nil
				if rpcDone == nil {
					return Result{Err: app.ErrTTYUnavailable}
				}
				continue
			}
			if done, res := e.handleTTYEvent(ev, chordTimer); done {
				return res
			}

		case err := <-rpcDone:
			rpcDone = nil
			if ttyEvents == nil {
				if err != nil {
					return Result{Err: err}
				}
				return Result{Err: app.ErrPeerClosed}
			}
			// TTY still attached: losing the RPC peer alone is not fatal.

		case <-chordTimer.C:
			p.ResetPending()

		case <-p.Done():
			return Result{Err: errTerminate()}

		case <-e.cfg.StdinClosed:
			if p.Haystack().Len() == 0 {
				return Result{Err: app.ErrNoCandidates}
			}
			// Candidates remain: keep running so the user can still pick
			// from what already arrived.
			e.cfg.StdinClosed = nil
		}
	}
}

func (e *Engine) pollTTY(out chan<- tty.Event) {
	defer close(out)
	for {
		ev, ok := e.cfg.TTY.PollEvent()
		if !ok {
			return
		}
		out <- ev
	}
}

func (e *Engine) handleTTYEvent(ev tty.Event, chordTimer *time.Timer) (done bool, result Result) {
	if ev.Kind == tty.EventResize {
		// Rendering is out of scope (§1); the renderer reads width/height
		// from its own resize hook on the same tcell screen.
		return false, Result{}
	}

	res := e.cfg.Picker.Dispatch(ev.Key)

	if !chordTimer.Stop() {
		select {
		case <-chordTimer.C:
		default:
		}
	}
	if res.Pending {
		chordTimer.Reset(e.cfg.Picker.ChordTimeout())
	}

	if !res.HasAction {
		return false, Result{}
	}

	switch res.Action.Kind {
	case picker.ActionSelect:
		if e.cfg.RPC != nil {
			var params any
			if res.Action.Item != nil {
				params = rpc.ItemToWire(*res.Action.Item)
			}
			if err := e.cfg.RPC.Emit("select", params); err != nil {
				e.log.Warn("failed to emit select event", "error", err)
			}
			return false, Result{}
		}
		return true, Result{Selected: res.Action.Item, Err: errQuit()}
	case picker.ActionQuit:
		return true, Result{Err: errQuit()}
	case picker.ActionBind:
		if e.cfg.RPC != nil {
			if err := e.cfg.RPC.Emit("bind", res.Action.Tag); err != nil {
				e.log.Warn("failed to emit bind event", "error", err)
			}
		}
		return false, Result{}
	case picker.ActionHelp:
		e.log.Debug("help action requested")
		return false, Result{}
	default:
		return false, Result{}
	}
}

func errQuit() error      { return app.ErrQuit }
func errTerminate() error { return app.ErrTerminate }

// IsExitClean reports whether err represents a zero-exit-code termination
// (§6 "0 on successful selection or graceful terminate").
func IsExitClean(err error) bool {
	return err == nil || errors.Is(err, app.ErrQuit) || errors.Is(err, app.ErrTerminate)
}
