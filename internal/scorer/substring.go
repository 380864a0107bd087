package scorer

// Substring is the case-smart strstr scorer: match iff needle occurs as a
// contiguous substring of haystack. Score rewards earlier and shorter
// matches; positions are the contiguous matched range.
type Substring struct{}

// Name implements Scorer.
func (Substring) Name() string { return "substr" }

// Score implements Scorer.
func (Substring) Score(needle, haystack string) (Match, bool) {
	if needle == "" {
		return Match{}, false
	}

	needleRunes := []rune(needle)
	haystackRunes := []rune(haystack)

	smartCase := isAllLower(needleRunes)
	cmpNeedle := needleRunes
	cmpHaystack := haystackRunes
	if smartCase {
		cmpNeedle = toLowerRunes(needleRunes)
		cmpHaystack = toLowerRunes(haystackRunes)
	}

	offset := indexRunes(cmpHaystack, cmpNeedle)
	if offset < 0 {
		return Match{}, false
	}

	positions := make([]int, len(needleRunes))
	for i := range positions {
		positions[i] = offset + i
	}

	score := -float64(offset) - float64(len(needleRunes))
	return Match{Score: score, Positions: positions}, true
}

func indexRunes(haystack, needle []rune) int {
	n, m := len(haystack), len(needle)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if runesEqual(haystack[i:i+m], needle) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
