// 16 Mar 2026
// Walk two aligned sequences and work out, for every alignment
// column, which residue of each receptor's own ungapped numbering
// sits there. Each sequence gets its own counter and a column where
// both are gaps is not worth keeping.

package diffcons

import (
	"fmt"
	"strconv"

	. "github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

// ResNum is one side of an alignment column: either a residue number
// in the ungapped sequence, counting from 1, or a gap. The old
// string sentinel "gap" only exists at the output boundary.
type ResNum struct {
	num int // zero means gap
}

// Gapped is the ResNum for a gap position.
func Gapped() ResNum { return ResNum{} }

// Residue is the ResNum for residue n, counting from 1.
func Residue(n int) ResNum { return ResNum{n} }

// Gap says whether this side of the column is a gap.
func (r ResNum) Gap() bool { return r.num == 0 }

// Num returns the residue number. Asking a gap for its number is a
// programming error.
func (r ResNum) Num() int {
	if r.num == 0 {
		panic("Num called on a gapped ResNum")
	}
	return r.num
}

// String prints the residue number, or the literal "gap", which is
// what the serialised output format wants.
func (r ResNum) String() string {
	if r.num == 0 {
		return "gap"
	}
	return strconv.Itoa(r.num)
}

// MappedColumn is one alignment column where at least one receptor
// has a residue. Col is the column index, counting from zero.
type MappedColumn struct {
	Col  int
	Res1 ResNum
	Res2 ResNum
}

// MapColumns does the numbering in a single linear pass. The two
// sequences must come from the same alignment, so unequal lengths
// are an error. A column gapped on both sides can only happen if the
// alignment itself has an all-gap column. It must not break us, it
// is just dropped.
func MapColumns(seq1, seq2 []byte) ([]MappedColumn, error) {
	if len(seq1) != len(seq2) {
		return nil, fmt.Errorf("aligned sequences differ in length, %d and %d",
			len(seq1), len(seq2))
	}
	cols := make([]MappedColumn, 0, len(seq1))
	r1, r2 := 0, 0
	for i := range seq1 {
		m := MappedColumn{Col: i}
		if seq1[i] != GapChar {
			r1++
			m.Res1 = Residue(r1)
		}
		if seq2[i] != GapChar {
			r2++
			m.Res2 = Residue(r2)
		}
		if m.Res1.Gap() && m.Res2.Gap() {
			continue
		}
		cols = append(cols, m)
	}
	return cols, nil
}
