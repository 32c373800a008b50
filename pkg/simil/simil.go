// 15 Mar 2026
// Score the similarity of two amino acids for tie-breaking during
// categorisation. This is not a full substitution matrix. It is a
// three level scheme: identical, one of a curated set of high scoring
// pairs distilled from blosum-80, or merely different. The pair set
// includes the ambiguity codes B, Z and J (asx, glx, xle), which are
// carried through from the conservation tables unchanged.

package simil

import (
	"strings"
)

// What Score can return.
const (
	NotComparable = -1 // one side is empty or a gap
	Dissimilar    = 1  // comparable, but not alike
	HighSim       = 2  // a curated high similarity pair
	Identical     = 3
)

const gapChar = '-'

// The curated pairs. Order within a pair does not matter, the table
// below is filled in both directions.
var highPairs = [][2]byte{
	{'R', 'K'}, {'N', 'B'}, {'D', 'B'}, {'Q', 'E'}, {'Q', 'Z'},
	{'E', 'Z'}, {'H', 'Y'}, {'I', 'V'}, {'I', 'J'}, {'L', 'M'},
	{'L', 'J'}, {'M', 'J'}, {'F', 'Y'}, {'W', 'Y'}, {'V', 'J'},
}

var high [128][128]bool

func init() {
	for _, p := range highPairs {
		high[p[0]][p[1]] = true
		high[p[1]][p[0]] = true
	}
}

// firstVariant takes an entry from a conservation table, which can
// list alternatives like "L/M", and returns just the first one.
func firstVariant(s string) string {
	if i := strings.IndexByte(s, '/'); i != -1 {
		s = s[:i]
	}
	return s
}

// Score compares two residues as they appear in conservation tables,
// so each may be a '/'-joined list of variants, of which only the
// first counts. Scores are symmetric.
func Score(a, b string) int {
	a, b = firstVariant(a), firstVariant(b)
	if len(a) == 0 || len(b) == 0 {
		return NotComparable
	}
	if a[0] == gapChar || b[0] == gapChar {
		return NotComparable
	}
	if a == b {
		return Identical
	}
	if len(a) == 1 && len(b) == 1 && a[0] < 128 && b[0] < 128 {
		if high[a[0]][b[0]] {
			return HighSim
		}
	}
	return Dissimilar
}
