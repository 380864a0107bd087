package picker

import (
	"time"

	"github.com/dshills/sweep/internal/input/key"
	"github.com/dshills/sweep/internal/keymap"
)

// DispatchResult is what Dispatch reports back to the event loop.
type DispatchResult struct {
	// Action is populated when the keystroke produced an externally
	// observable effect (select, quit, bind, help).
	Action Action
	// HasAction is true iff Action is populated.
	HasAction bool
	// Pending is true when the trie is mid-sequence: the event loop should
	// (re)arm the chord timeout, after which it calls ResetPending.
	Pending bool
}

// Dispatch advances the binding trie by one keystroke (§4.4): on a leaf it
// performs the bound action (built-in tags are applied directly; any other
// tag is surfaced as ActionBind); on a non-match it resets to the trie
// root and, for a printable unmodified rune, appends it to the query as
// literal input.
func (p *Picker) Dispatch(ev key.Event) DispatchResult {
	p.mu.Lock()
	state := p.dispatchState
	p.mu.Unlock()

	next, tag, pending := p.trie.Step(state, ev)

	p.mu.Lock()
	p.dispatchState = next
	p.mu.Unlock()

	if pending {
		return DispatchResult{Pending: true}
	}

	if tag != "" {
		action, handled := p.applyTag(tag)
		if handled {
			return DispatchResult{Action: action, HasAction: action.Kind != ActionNone}
		}
		return DispatchResult{}
	}

	// No binding matched: treat a printable unmodified rune as literal
	// query input.
	if isLiteral(ev) {
		p.insertRune(ev.Rune)
	}
	return DispatchResult{}
}

// ResetPending resets a mid-sequence dispatch state back to the trie root
// after the chord timeout elapses with no further keystroke (§4.4, §9).
func (p *Picker) ResetPending() {
	p.mu.Lock()
	p.dispatchState = p.trie.Root()
	p.mu.Unlock()
}

// ChordTimeout returns the configured pending-prefix timeout.
func (p *Picker) ChordTimeout() time.Duration { return p.chordTimeout }

// applyTag executes a built-in action tag directly, or reports an
// ActionBind for the event loop/RPC layer to emit as a `bind` event.
func (p *Picker) applyTag(tag string) (Action, bool) {
	switch tag {
	case keymap.ActionSelect:
		item, ok := p.ItemsCurrent()
		if !ok {
			return Action{}, true
		}
		return Action{Kind: ActionSelect, Item: &item}, true
	case keymap.ActionQuit:
		return Action{Kind: ActionQuit}, true
	case keymap.ActionHelp:
		return Action{Kind: ActionHelp}, true
	case keymap.ActionScorerNext:
		p.cycleScorer()
		return Action{}, true
	case keymap.ActionPreviewToggle:
		p.PreviewSet(nil)
		return Action{}, true
	case keymap.ActionInputMoveLeft:
		p.moveEditCursor(-1)
		return Action{}, true
	case keymap.ActionInputMoveRight:
		p.moveEditCursor(1)
		return Action{}, true
	case keymap.ActionInputMoveStart:
		p.setEditCursor(0)
		return Action{}, true
	case keymap.ActionInputMoveEnd:
		p.setEditCursorEnd()
		return Action{}, true
	case keymap.ActionInputDeleteBack:
		p.deleteBack()
		return Action{}, true
	case keymap.ActionInputDeleteFwd:
		p.deleteForward()
		return Action{}, true
	case keymap.ActionInputDeleteWord:
		p.deleteWordBack()
		return Action{}, true
	case keymap.ActionInputDeleteToEnd:
		p.deleteToEnd()
		return Action{}, true
	case keymap.ActionInputClear:
		p.QuerySet("")
		return Action{}, true
	case keymap.ActionListItemNext:
		p.CursorMove(1)
		return Action{}, true
	case keymap.ActionListItemPrev:
		p.CursorMove(-1)
		return Action{}, true
	case keymap.ActionListPageNext:
		p.CursorPage(10)
		return Action{}, true
	case keymap.ActionListPagePrev:
		p.CursorPage(-10)
		return Action{}, true
	case keymap.ActionListHome:
		p.CursorHome()
		return Action{}, true
	case keymap.ActionListEnd:
		p.CursorEnd()
		return Action{}, true
	default:
		// A user tag bound via `bind`: surfaced as an event, never applied
		// internally.
		return Action{Kind: ActionBind, Tag: tag}, true
	}
}

func (p *Picker) cycleScorer() {
	cur := p.rk.ScorerID()
	next := scorerCycle[0]
	for i, name := range scorerCycle {
		if name == cur {
			next = scorerCycle[(i+1)%len(scorerCycle)]
			break
		}
	}
	p.rk.SetScorer(next)
}

func (p *Picker) moveEditCursor(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.editCursor + delta
	if c < 0 {
		c = 0
	}
	if c > len(p.queryRunes) {
		c = len(p.queryRunes)
	}
	p.editCursor = c
}

func (p *Picker) setEditCursor(pos int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editCursor = clamp(pos, len(p.queryRunes)+1)
}

func (p *Picker) setEditCursorEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editCursor = len(p.queryRunes)
}

func (p *Picker) deleteBack() {
	p.mu.Lock()
	if p.editCursor == 0 {
		p.mu.Unlock()
		return
	}
	runes := append([]rune{}, p.queryRunes[:p.editCursor-1]...)
	runes = append(runes, p.queryRunes[p.editCursor:]...)
	p.queryRunes = runes
	p.editCursor--
	q := string(p.queryRunes)
	p.mu.Unlock()
	p.rk.SetQuery(q)
}

func (p *Picker) deleteForward() {
	p.mu.Lock()
	if p.editCursor >= len(p.queryRunes) {
		p.mu.Unlock()
		return
	}
	runes := append([]rune{}, p.queryRunes[:p.editCursor]...)
	runes = append(runes, p.queryRunes[p.editCursor+1:]...)
	p.queryRunes = runes
	q := string(p.queryRunes)
	p.mu.Unlock()
	p.rk.SetQuery(q)
}

func (p *Picker) deleteToEnd() {
	p.mu.Lock()
	p.queryRunes = p.queryRunes[:p.editCursor]
	q := string(p.queryRunes)
	p.mu.Unlock()
	p.rk.SetQuery(q)
}

func (p *Picker) deleteWordBack() {
	p.mu.Lock()
	i := p.editCursor
	for i > 0 && p.queryRunes[i-1] == ' ' {
		i--
	}
	for i > 0 && p.queryRunes[i-1] != ' ' {
		i--
	}
	runes := append([]rune{}, p.queryRunes[:i]...)
	runes = append(runes, p.queryRunes[p.editCursor:]...)
	p.queryRunes = runes
	p.editCursor = i
	q := string(p.queryRunes)
	p.mu.Unlock()
	p.rk.SetQuery(q)
}
