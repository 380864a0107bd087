package picker

import "github.com/dshills/sweep/internal/haystack"

// ActionKind enumerates the externally observable actions a Dispatch call
// can produce (§4.4, §4.5 events). Internal actions (cursor movement, query
// editing, scorer cycling, preview toggling) are applied directly to picker
// state and never surface as an ActionKind.
type ActionKind int

const (
	// ActionNone means the keystroke was consumed internally (or was
	// literal input appended to the query); there is nothing for the
	// caller to do.
	ActionNone ActionKind = iota
	// ActionSelect means sweep.select fired: Item is the current selection.
	ActionSelect
	// ActionQuit means sweep.quit fired: the event loop should exit with
	// the no-selection exit code.
	ActionQuit
	// ActionHelp means sweep.help fired.
	ActionHelp
	// ActionBind means a user-defined tag fired; Tag names it and the RPC
	// layer emits a `bind` event carrying it.
	ActionBind
	// ActionTerminate means Terminate() was called: graceful shutdown.
	ActionTerminate
)

// Action is returned by Dispatch/Terminate when something external should
// happen in response to picker state changing.
type Action struct {
	Kind ActionKind
	Item *haystack.Item
	Tag  string
}
