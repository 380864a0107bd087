package ranker

import "github.com/dshills/sweep/internal/scorer"

// Entry is one scored item in a published ranked view.
type Entry struct {
	ItemID    int
	Score     float64
	Positions []scorer.FieldPosition
}

// View is the published, ordered result of one scoring generation (§3
// "Ranked view"). It is treated as immutable once published; callers
// receive a pointer to a snapshot and must not mutate it.
type View struct {
	Entries []Entry

	HaystackEpoch int64
	QueryEpoch    int64
	ScorerID      string
	KeepOrder     bool
}

// IndexOf returns the position of itemID within the view, or -1.
func (v *View) IndexOf(itemID int) int {
	if v == nil {
		return -1
	}
	for i, e := range v.Entries {
		if e.ItemID == itemID {
			return i
		}
	}
	return -1
}

// Len returns the number of entries in the view, nil-safe.
func (v *View) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Entries)
}
