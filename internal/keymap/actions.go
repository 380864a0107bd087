package keymap

// Built-in action tags (§4.4). Any other string bound via Trie.Bind is a
// user tag: dispatching it emits a `bind` RPC event instead of driving
// picker behavior directly.
const (
	ActionSelect       = "sweep.select"
	ActionQuit         = "sweep.quit"
	ActionHelp         = "sweep.help"
	ActionScorerNext   = "sweep.scorer.next"
	ActionPreviewToggle = "sweep.preview.toggle"

	ActionInputMoveLeft     = "input.move.left"
	ActionInputMoveRight    = "input.move.right"
	ActionInputMoveStart    = "input.move.start"
	ActionInputMoveEnd      = "input.move.end"
	ActionInputDeleteBack   = "input.delete.back"
	ActionInputDeleteFwd    = "input.delete.forward"
	ActionInputDeleteWord   = "input.delete.word"
	ActionInputDeleteToEnd  = "input.delete.toEnd"
	ActionInputClear        = "input.clear"

	ActionListItemNext = "list.item.next"
	ActionListItemPrev = "list.item.prev"
	ActionListPageNext = "list.page.next"
	ActionListPagePrev = "list.page.prev"
	ActionListHome     = "list.home"
	ActionListEnd      = "list.end"
)

// Builtin reports whether tag names one of the enumerated built-in
// actions (as opposed to an arbitrary user tag bound to the `bind` event).
func Builtin(tag string) bool {
	switch tag {
	case ActionSelect, ActionQuit, ActionHelp, ActionScorerNext, ActionPreviewToggle,
		ActionInputMoveLeft, ActionInputMoveRight, ActionInputMoveStart, ActionInputMoveEnd,
		ActionInputDeleteBack, ActionInputDeleteFwd, ActionInputDeleteWord, ActionInputDeleteToEnd, ActionInputClear,
		ActionListItemNext, ActionListItemPrev, ActionListPageNext, ActionListPagePrev, ActionListHome, ActionListEnd:
		return true
	}
	return false
}
