package keymap

import "github.com/dshills/sweep/internal/input/key"

// defaultBinding pairs a chord-sequence spec (key.ParseSequence syntax)
// with the action tag it triggers.
type defaultBinding struct {
	seq string
	tag string
}

// Defaults lists the picker's out-of-the-box bindings. Rebinding any of
// these via `bind` (§4.5) simply overwrites the trie entry.
func Defaults() []defaultBinding {
	return []defaultBinding{
		{"enter", ActionSelect},
		{"ctrl+c", ActionQuit},
		{"escape", ActionQuit},
		{"ctrl+g", ActionQuit},
		{"ctrl+h", ActionHelp},
		{"ctrl+s", ActionScorerNext},
		{"alt+p", ActionPreviewToggle},

		{"left", ActionInputMoveLeft},
		{"right", ActionInputMoveRight},
		{"ctrl+a", ActionInputMoveStart},
		{"ctrl+e", ActionInputMoveEnd},
		{"backspace", ActionInputDeleteBack},
		{"delete", ActionInputDeleteFwd},
		{"ctrl+w", ActionInputDeleteWord},
		{"ctrl+k", ActionInputDeleteToEnd},
		{"ctrl+u", ActionInputClear},

		{"down", ActionListItemNext},
		{"ctrl+n", ActionListItemNext},
		{"up", ActionListItemPrev},
		{"ctrl+p", ActionListItemPrev},
		{"pagedown", ActionListPageNext},
		{"pageup", ActionListPagePrev},
		{"home", ActionListHome},
		{"end", ActionListEnd},
	}
}

// LoadDefaults binds every entry of Defaults() into t.
func LoadDefaults(t *Trie) error {
	for _, b := range Defaults() {
		seq, err := key.ParseSequence(b.seq)
		if err != nil {
			return err
		}
		if err := t.Bind(seq, b.tag); err != nil {
			return err
		}
	}
	return nil
}
