package stdin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/sweep/internal/haystack"
	"github.com/dshills/sweep/internal/rpc"
)

// NthSpec is a parsed `--nth` field selector: a set of 1-based field
// indices (optionally open-ended ranges) marking which delimiter-split
// fragments of a line are searchable.
type NthSpec struct {
	raw    string
	ranges []nthRange
}

type nthRange struct {
	lo, hi int // hi == 0 means open-ended ("N..")
}

// ParseNth parses a comma-separated `--nth` spec such as "2", "1,3", or
// "2..". An empty spec is valid and means "no field splitting": the whole
// line is a single searchable field.
func ParseNth(spec string) (NthSpec, error) {
	if spec == "" {
		return NthSpec{}, nil
	}
	var ranges []nthRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasSuffix(part, "..") {
			lo, err := strconv.Atoi(strings.TrimSuffix(part, ".."))
			if err != nil {
				return NthSpec{}, fmt.Errorf("stdin: bad --nth range %q: %w", part, err)
			}
			ranges = append(ranges, nthRange{lo: lo})
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			loN, err := strconv.Atoi(lo)
			if err != nil {
				return NthSpec{}, fmt.Errorf("stdin: bad --nth range %q: %w", part, err)
			}
			hiN, err := strconv.Atoi(hi)
			if err != nil {
				return NthSpec{}, fmt.Errorf("stdin: bad --nth range %q: %w", part, err)
			}
			ranges = append(ranges, nthRange{lo: loN, hi: hiN})
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return NthSpec{}, fmt.Errorf("stdin: bad --nth field %q: %w", part, err)
		}
		ranges = append(ranges, nthRange{lo: n, hi: n})
	}
	return NthSpec{raw: spec, ranges: ranges}, nil
}

// IsZero reports whether the spec selects no fields, i.e. "split by
// delimiter" was never requested.
func (s NthSpec) IsZero() bool { return s.raw == "" }

// Active reports whether 1-based field index i is searchable under s.
func (s NthSpec) Active(i int) bool {
	for _, r := range s.ranges {
		if r.hi == 0 {
			if i >= r.lo {
				return true
			}
			continue
		}
		if i >= r.lo && i <= r.hi {
			return true
		}
	}
	return false
}

// SplitFields splits line by delim. An empty delim splits on runs of
// whitespace (strings.Fields), matching AWK's default field separator.
func SplitFields(line, delim string) []string {
	if delim == "" {
		return strings.Fields(line)
	}
	return strings.Split(line, delim)
}

// LineToItem converts one line of default-format stdin to a haystack.Item
// (§6). With a zero NthSpec the whole line is a single active field;
// otherwise the line is split by delim and only the fields nth selects are
// marked active, so the rest still render but never match.
func LineToItem(line, delim string, nth NthSpec) haystack.Item {
	if nth.IsZero() {
		return haystack.Item{Target: []haystack.Field{{Text: line, Active: true}}}
	}

	parts := SplitFields(line, delim)
	fields := make([]haystack.Field, len(parts))
	for i, p := range parts {
		fields[i] = haystack.Field{Text: p, Active: nth.Active(i + 1)}
	}
	return haystack.Item{Target: fields}
}

// JSONToItem decodes one `--json` stdin line into a haystack.Item, using
// the same wire schema as the RPC control plane's items_extend (§6).
func JSONToItem(line []byte) (haystack.Item, error) {
	var w rpc.WireItem
	if err := json.Unmarshal(line, &w); err != nil {
		return haystack.Item{}, fmt.Errorf("stdin: bad --json item: %w", err)
	}
	return rpc.WireToItem(w), nil
}
