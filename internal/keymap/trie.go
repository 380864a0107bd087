package keymap

import (
	"fmt"
	"time"

	"github.com/dshills/sweep/internal/input/key"
)

// node is one level of the chord-sequence trie. A node with a non-empty
// tag is a leaf for some bound sequence; it may still have children if a
// longer sequence shares its prefix.
type node struct {
	children map[key.Event]*node
	tag      string
}

func newNode() *node {
	return &node{children: make(map[key.Event]*node)}
}

// Trie is the chord-sequence binding table described in §4.4: `bind`
// inserts a chord sequence mapped to an action tag (a built-in tag or an
// arbitrary user string bound to emit a `bind` event); an empty tag
// unbinds. Trie is not safe for concurrent use; callers serialize access
// (the picker's single dispatch goroutine).
type Trie struct {
	root *node
}

// NewTrie creates an empty binding trie.
func NewTrie() *Trie {
	return &Trie{root: newNode()}
}

// Bind inserts seq -> tag. An empty tag removes any binding for seq (but
// leaves longer sequences sharing its prefix intact).
func (t *Trie) Bind(seq *key.Sequence, tag string) error {
	if seq == nil || seq.IsEmpty() {
		return fmt.Errorf("keymap: empty chord sequence")
	}
	if tag == "" {
		t.unbind(seq)
		return nil
	}
	n := t.root
	for i := 0; i < seq.Len(); i++ {
		ev := normalize(*seq.At(i))
		next, ok := n.children[ev]
		if !ok {
			next = newNode()
			n.children[ev] = next
		}
		n = next
	}
	n.tag = tag
	return nil
}

func (t *Trie) unbind(seq *key.Sequence) {
	n := t.root
	for i := 0; i < seq.Len(); i++ {
		ev := normalize(*seq.At(i))
		next, ok := n.children[ev]
		if !ok {
			return
		}
		n = next
	}
	n.tag = ""
}

// State is a cursor into the trie representing a partially-typed chord
// sequence. The zero State is the root (no pending prefix).
type State struct {
	n *node
}

// Root returns the trie's root dispatch state.
func (t *Trie) Root() State {
	return State{n: t.root}
}

// Step advances state by one chord event. It reports:
//   - tag != "": a complete binding fired; the caller dispatches it and the
//     next Step should start again from Root().
//   - pending: state is a valid non-leaf prefix; more chords may complete a
//     binding (the caller should wait, subject to the chord timeout).
//   - neither: the chord does not continue any binding from this state; the
//     caller resets to Root() and, for a printable rune with no modifiers,
//     treats the original keystroke as literal query input.
func (t *Trie) Step(s State, ev key.Event) (next State, tag string, pending bool) {
	base := s.n
	if base == nil {
		base = t.root
	}
	child, ok := base.children[normalize(ev)]
	if !ok || (child.tag == "" && len(child.children) == 0) {
		return State{n: t.root}, "", false
	}
	if child.tag != "" {
		return State{n: t.root}, child.tag, false
	}
	return State{n: child}, "", true
}

// normalize strips the timestamp (irrelevant to trie identity) so two
// chords compare equal iff key, rune, and modifiers match.
func normalize(ev key.Event) key.Event {
	ev.Timestamp = time.Time{}
	return ev
}
