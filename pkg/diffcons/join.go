// 16 Mar 2026
// Merge the mapped columns with each receptor's conservation table.
// A residue that is missing from its table is normal. The tables can
// cover a narrower range than the sequence, so the side degrades to
// explicit defaults and InTable records that it happened.

package diffcons

import (
	"github.com/CompGenomeLab/cons_diff/pkg/consv"
)

// Side is everything we know about one receptor at one column.
type Side struct {
	Res     ResNum
	HumanAA string  // residue in the aligned (human) sequence, "-" for a gap
	ConsvAA string  // conserved residue(s) from the table, "-" if unknown
	Perc    float64 // conservation percent, 0 if unknown
	Region  string
	Gpcrdb  string
	InTable bool // false means the lookup missed and defaults were filled
}

// JoinedColumn is a fully populated alignment column.
type JoinedColumn struct {
	Col int
	S1  Side
	S2  Side
}

// fillSide builds one side of a joined column. aa is the character
// from the aligned sequence at this column.
func fillSide(res ResNum, aa byte, tab consv.Table) Side {
	s := Side{Res: res, HumanAA: "-", ConsvAA: "-", Region: "-", Gpcrdb: "-"}
	if res.Gap() {
		return s
	}
	s.HumanAA = string(aa)
	if rec, ok := tab[res.Num()]; ok {
		s.InTable = true
		s.Perc = rec.Perc
		s.ConsvAA = rec.ConsvAA
		s.Region = rec.Region
		s.Gpcrdb = rec.Gpcrdb
	}
	return s
}

// Join walks the mapped columns and joins in both conservation
// tables. seq1 and seq2 are the same aligned sequences the columns
// were mapped from.
func Join(cols []MappedColumn, seq1, seq2 []byte, tab1, tab2 consv.Table) []JoinedColumn {
	joined := make([]JoinedColumn, 0, len(cols))
	for _, m := range cols {
		jc := JoinedColumn{
			Col: m.Col,
			S1:  fillSide(m.Res1, seq1[m.Col], tab1),
			S2:  fillSide(m.Res2, seq2[m.Col], tab2),
		}
		joined = append(joined, jc)
	}
	return joined
}
