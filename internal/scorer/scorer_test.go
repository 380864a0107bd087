package scorer

import "testing"

func TestFuzzyBasicSubsequence(t *testing.T) {
	f := NewFuzzy()

	tests := []struct {
		needle, haystack string
		wantMatch        bool
	}{
		{"re", "three", true},
		{"xyz", "three", false},
		{"one", "one", true},
		{"abc", "a_b_c", true},
		{"", "anything", false},
	}

	for _, tt := range tests {
		_, ok := f.Score(tt.needle, tt.haystack)
		if ok != tt.wantMatch {
			t.Errorf("Score(%q, %q) ok = %v, want %v", tt.needle, tt.haystack, ok, tt.wantMatch)
		}
	}
}

func TestFuzzyDeterminism(t *testing.T) {
	f := NewFuzzy()
	m1, ok1 := f.Score("abc", "a and b and c")
	m2, ok2 := f.Score("abc", "a and b and c")
	if ok1 != ok2 || m1.Score != m2.Score {
		t.Fatalf("fuzzy scoring is not deterministic: %v/%v vs %v/%v", m1, ok1, m2, ok2)
	}
}

func TestFuzzySmartCase(t *testing.T) {
	f := NewFuzzy()

	// Lowercase needle matches case-insensitively.
	m1, ok1 := f.Score("abc", "ABC")
	if !ok1 {
		t.Fatalf("lowercase needle should match uppercase haystack")
	}

	m2, ok2 := f.Score("abc", "abc")
	if !ok2 || m1.Score != m2.Score {
		t.Fatalf("smart case: score(s, q) should equal score(lower(s), q); got %v vs %v", m1, m2)
	}

	// Mixed-case needle is case-sensitive.
	if _, ok := f.Score("ABC", "abc"); ok {
		t.Fatalf("mixed-case needle should not match differently-cased haystack")
	}
}

func TestFuzzyPositionsInOrderAndBounded(t *testing.T) {
	f := NewFuzzy()
	haystack := "choose_files_kitten"
	m, ok := f.Score("cfk", haystack)
	if !ok {
		t.Fatalf("expected match")
	}
	runes := []rune(haystack)
	last := -1
	for _, p := range m.Positions {
		if p < 0 || p >= len(runes) {
			t.Fatalf("position %d out of bounds [0,%d)", p, len(runes))
		}
		if p <= last {
			t.Fatalf("positions not strictly increasing: %v", m.Positions)
		}
		last = p
	}
}

func TestFuzzyFallsBackToSubstringBeyondCap(t *testing.T) {
	f := NewFuzzy()
	long := make([]rune, maxDPRunes+10)
	for i := range long {
		long[i] = 'a'
	}
	long[5] = 'z'
	needle := "az"
	m, ok := f.Score(needle, string(long))
	if !ok {
		t.Fatalf("expected fallback substring match")
	}
	if m.Positions[0] != 4 {
		t.Fatalf("expected substring fallback at offset 4, got %v", m.Positions)
	}
}

func TestSubstringScoring(t *testing.T) {
	s := Substring{}
	m, ok := s.Score("oo", "foobar")
	if !ok {
		t.Fatalf("expected match")
	}
	if len(m.Positions) != 2 || m.Positions[0] != 1 || m.Positions[1] != 2 {
		t.Fatalf("unexpected positions: %v", m.Positions)
	}

	if _, ok := s.Score("xy", "foobar"); ok {
		t.Fatalf("expected no match")
	}
}

func TestKeepOrderNullScorer(t *testing.T) {
	k := KeepOrder{}
	m, ok := k.Score("fb", "foobar")
	if !ok || m.Score != 0 || m.Positions != nil {
		t.Fatalf("keep-order match should be zero-score with no positions, got %v, %v", m, ok)
	}
	if _, ok := k.Score("zz", "foobar"); ok {
		t.Fatalf("expected no match for non-subsequence")
	}
}

func TestNeedlesTokenization(t *testing.T) {
	got := Needles("  foo   bar baz ")
	want := []string{"foo", "bar", "baz"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMatchQueryConjunctionAcrossFields(t *testing.T) {
	f := NewFuzzy()
	fields := []string{"foo", "bar"}
	idx := []int{0, 1}

	// "foo bar" needs "foo" in some field and "bar" in some field.
	_, _, ok := MatchQuery(f, "foo bar", fields, idx)
	if !ok {
		t.Fatalf("expected conjunction to match across fields")
	}

	// "foo baz" has no field matching "baz".
	_, _, ok = MatchQuery(f, "foo baz", fields, idx)
	if ok {
		t.Fatalf("expected conjunction to fail when a needle matches no field")
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "fuzzy", "substr", "substring", "keep_order", "keeporder"} {
		if _, ok := ByName(name); !ok {
			t.Errorf("ByName(%q) should resolve", name)
		}
	}
	if _, ok := ByName("nonsense"); ok {
		t.Errorf("ByName(nonsense) should not resolve")
	}
}
