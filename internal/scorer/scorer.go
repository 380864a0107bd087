// Package scorer implements the pure matching functions that decide whether
// a query matches a haystack string and, if so, which positions the match
// occupies and what score it earns.
package scorer

import (
	"sort"
	"strings"
)

// Match is the result of scoring a single needle against a single haystack
// string. When the needle does not match, Score returns ok == false and a
// zero Match.
type Match struct {
	Score     float64
	Positions []int
}

// Scorer scores one needle against one haystack string. Implementations
// must be total functions: no panics on any UTF-8 input, and deterministic
// regardless of how many goroutines call Score concurrently.
type Scorer interface {
	// Name identifies the scorer for CLI/RPC selection (e.g. "fuzzy").
	Name() string

	// Score attempts to match needle against haystack. ok is false when the
	// needle does not match; Positions are char offsets into haystack runes,
	// sorted ascending.
	Score(needle, haystack string) (m Match, ok bool)
}

// ByName resolves the built-in scorers by their CLI/RPC identifier.
func ByName(name string) (Scorer, bool) {
	switch name {
	case "", "fuzzy":
		return NewFuzzy(), true
	case "substr", "substring":
		return Substring{}, true
	case "keep_order", "keeporder":
		return KeepOrder{}, true
	}
	return nil, false
}

// Needles tokenizes a query string by ASCII whitespace into needles, per §3.
func Needles(query string) []string {
	return strings.Fields(query)
}

// MatchQuery scores every needle of query against the active fields of
// item's region texts (conjunction across needles, disjunction across
// fields per needle, per §4.1). fields is the ordered list of active field
// texts to search within a single region or across regions; fieldIndex
// maps a fields slice index back to the caller's own field-index numbering
// so returned positions are meaningful to the caller.
//
// ok is false when any needle fails to match any field — the item does
// not match the full query.
func MatchQuery(s Scorer, query string, fields []string, fieldIndex []int) (total float64, positions []FieldPosition, ok bool) {
	needles := Needles(query)
	if len(needles) == 0 {
		return 0, nil, true
	}

	for _, needle := range needles {
		var best Match
		bestField := -1
		found := false

		for i, text := range fields {
			m, matched := s.Score(needle, text)
			if !matched {
				continue
			}
			if !found || m.Score > best.Score {
				best = m
				bestField = i
				found = true
			}
		}

		if !found {
			return 0, nil, false
		}

		total += best.Score
		idx := bestField
		if fieldIndex != nil {
			idx = fieldIndex[bestField]
		}
		for _, p := range best.Positions {
			positions = append(positions, FieldPosition{Field: idx, Offset: p})
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Field != positions[j].Field {
			return positions[i].Field < positions[j].Field
		}
		return positions[i].Offset < positions[j].Offset
	})

	return total, positions, true
}

// FieldPosition identifies a single matched character: which field it lives
// in and its rune offset within that field's text.
type FieldPosition struct {
	Field  int
	Offset int
}

// isWordBoundaryBefore reports whether the rune at position i-1 in runes
// marks i as a word-start boundary (start of string counts), per §4.1:
// preceded by a space or tab, '/', '_', '-', '.', '\\', or start of string.
// A lowercase ASCII letter followed by an uppercase one (camelCase) is also
// a boundary.
func isWordBoundaryBefore(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := runes[i-1]
	switch prev {
	case ' ', '\t', '/', '_', '-', '.', '\\':
		return true
	}
	// camelCase boundary: previous is lowercase, current is uppercase.
	if i < len(runes) {
		cur := runes[i]
		if isLower(prev) && isUpper(cur) {
			return true
		}
	}
	return false
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
