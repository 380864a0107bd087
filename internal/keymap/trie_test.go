package keymap

import (
	"testing"

	"github.com/dshills/sweep/internal/input/key"
)

func mustSeq(t *testing.T, s string) *key.Sequence {
	t.Helper()
	seq, err := key.ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", s, err)
	}
	return seq
}

func TestTrieSingleChord(t *testing.T) {
	tr := NewTrie()
	if err := tr.Bind(mustSeq(t, "enter"), ActionSelect); err != nil {
		t.Fatal(err)
	}

	state := tr.Root()
	next, tag, pending := tr.Step(state, key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	if tag != ActionSelect {
		t.Fatalf("tag = %q, want %q", tag, ActionSelect)
	}
	if pending {
		t.Fatal("pending should be false on a leaf")
	}
	if next.n == nil {
		t.Fatal("next state root should not be nil")
	}
}

func TestTrieMultiChordSequence(t *testing.T) {
	tr := NewTrie()
	if err := tr.Bind(mustSeq(t, "ctrl+x ctrl+c"), "open"); err != nil {
		t.Fatal(err)
	}

	state := tr.Root()
	state, tag, pending := tr.Step(state, key.NewRuneEvent('x', key.ModCtrl))
	if tag != "" || !pending {
		t.Fatalf("first chord: tag=%q pending=%v, want pending prefix", tag, pending)
	}

	state, tag, pending = tr.Step(state, key.NewRuneEvent('c', key.ModCtrl))
	if tag != "open" || pending {
		t.Fatalf("second chord: tag=%q pending=%v, want tag=open", tag, pending)
	}
	_ = state
}

func TestTrieNonMatchResetsToRoot(t *testing.T) {
	tr := NewTrie()
	if err := tr.Bind(mustSeq(t, "ctrl+x ctrl+c"), "open"); err != nil {
		t.Fatal(err)
	}

	state := tr.Root()
	state, _, pending := tr.Step(state, key.NewRuneEvent('x', key.ModCtrl))
	if !pending {
		t.Fatal("expected pending after first chord")
	}

	next, tag, pending := tr.Step(state, key.NewRuneEvent('z', key.ModCtrl))
	if tag != "" || pending {
		t.Fatalf("unexpected chord should not match: tag=%q pending=%v", tag, pending)
	}
	if next.n != tr.root {
		t.Fatal("unmatched chord should reset to root")
	}
}

func TestUnbind(t *testing.T) {
	tr := NewTrie()
	seq := mustSeq(t, "ctrl+o")
	if err := tr.Bind(seq, "open"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Bind(seq, ""); err != nil {
		t.Fatal(err)
	}

	_, tag, pending := tr.Step(tr.Root(), key.NewRuneEvent('o', key.ModCtrl))
	if tag != "" || pending {
		t.Fatalf("expected unbound chord to miss, got tag=%q pending=%v", tag, pending)
	}
}

func TestLoadDefaults(t *testing.T) {
	tr := NewTrie()
	if err := LoadDefaults(tr); err != nil {
		t.Fatal(err)
	}
	_, tag, _ := tr.Step(tr.Root(), key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	if tag != ActionSelect {
		t.Fatalf("default enter binding = %q, want %q", tag, ActionSelect)
	}
}
