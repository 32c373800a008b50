// 17 Mar 2026
// The classification policy. Every joined column lands in one of
// four categories or is dropped. A position must reach the threshold
// on at least one side to be interesting at all. When both sides
// reach it, the similarity of the two conserved residues decides
// between commonly and differently conserved.

package diffcons

import (
	"sort"

	"github.com/CompGenomeLab/cons_diff/pkg/simil"
)

// Category says how a position is conserved across the two
// receptors. The constants are ordered by display priority, so
// sorting by Category puts common positions first.
type Category uint8

const (
	Common       Category = iota // conserved in both, same or similar residue
	SpecificBoth                 // conserved in both, but different residues
	Specific1                    // conserved only in receptor 1
	Specific2                    // conserved only in receptor 2
)

func (c Category) String() string {
	switch c {
	case Common:
		return "common"
	case SpecificBoth:
		return "specific_both"
	case Specific1:
		return "specific1"
	case Specific2:
		return "specific2"
	}
	return "unknown"
}

// CategorizedResidue is one classified alignment column. Order in
// the output slice is alignment column order, never category order.
type CategorizedResidue struct {
	Cat Category
	Col int
	S1  Side
	S2  Side
}

// categorizeOne applies the policy to one column. The second return
// value says whether the column is kept at all.
func categorizeOne(jc JoinedColumn, thr float64) (Category, bool) {
	g1, g2 := jc.S1.Res.Gap(), jc.S2.Res.Gap()
	switch {
	case g1 && g2: // the mapper never emits these
		return 0, false
	case !g1 && !g2:
		c1, c2 := jc.S1.Perc >= thr, jc.S2.Perc >= thr
		switch {
		case c1 && c2:
			if simil.Score(jc.S1.ConsvAA, jc.S2.ConsvAA) > simil.Dissimilar {
				return Common, true
			}
			return SpecificBoth, true
		case c1:
			return Specific1, true
		case c2:
			return Specific2, true
		default:
			return 0, false
		}
	case g2: // only receptor 1 has a residue here
		if jc.S1.Perc >= thr {
			return Specific1, true
		}
		return 0, false
	default: // only receptor 2 has a residue here
		if jc.S2.Perc >= thr {
			return Specific2, true
		}
		return 0, false
	}
}

// Categorize classifies all joined columns against an inclusive
// threshold in percent. Columns that match no rule disappear from
// the output.
func Categorize(cols []JoinedColumn, threshold float64) []CategorizedResidue {
	var out []CategorizedResidue
	for _, jc := range cols {
		if cat, keep := categorizeOne(jc, threshold); keep {
			out = append(out, CategorizedResidue{Cat: cat, Col: jc.Col, S1: jc.S1, S2: jc.S2})
		}
	}
	return out
}

// SortByCategory reorders residues by category priority (common
// first), keeping alignment order within a category. The engine
// itself never calls this. It is for presentation layers which want
// the common positions at the top.
func SortByCategory(rs []CategorizedResidue) {
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Cat < rs[j].Cat })
}
