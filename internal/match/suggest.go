package match

import "strings"

// MinScore is the similarity below which Closest suggests nothing.
const MinScore = 0.6

// NormalizeIdent lowercases s and drops the separators '_', '-' and ' ',
// so that "SmartShift", "smart_shift" and "smartshift" compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Score compares two names after normalization.
func Score(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}

// Closest returns the candidate most similar to name. Ties go to the
// earlier candidate. It reports false when no candidate reaches MinScore
// or when name equals a candidate exactly.
func Closest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0.0

	for _, c := range candidates {
		if c == name {
			return "", false
		}

		if score := Score(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinScore {
		return "", false
	}

	return best, true
}
