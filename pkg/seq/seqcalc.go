// 14 Mar 2026
// seqcalc does the counting on a set of sequences. The functions
// live in this package, since they need access to the internals of a
// sequence. The tallies are the raw material for conservation
// calculations in pkg/consv.

package seq

import (
	"math"

	"github.com/andrew-torda/matrix"
	. "github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

const (
	badMap = math.MaxUint8 // marks a symbol as not seen
)

// SetSymUsed fills out the bool slice which says whether or not a
// symbol was used anywhere in the group.
func (seqgrp *SeqGrp) SetSymUsed() {
	for _, ss := range seqgrp.seqs {
		for _, c := range ss.GetSeq() {
			seqgrp.symUsed[c] = true
		}
	}
	seqgrp.usedKnwn = true
}

// mapsyms looks at the symbols (characters, bases, residues) used in
// a seqgrp. It then makes a little array for mapping.
func (seqgrp *SeqGrp) mapsyms() {
	if !seqgrp.usedKnwn {
		seqgrp.SetSymUsed()
	}
	for i := range seqgrp.mapping { // Initialise with bad value, to
		seqgrp.mapping[i] = badMap // trap errors later
	}

	var n uint8
	for i := range seqgrp.symUsed {
		if seqgrp.symUsed[i] {
			seqgrp.mapping[i] = n
			if n >= badMap {
				panic("program bug")
			}
			seqgrp.revmap = append(seqgrp.revmap, uint8(i))
			n++
		}
	}
}

// UsageSite counts how many of each symbol/character appear at
// each site in the alignment.
// counts.Mat looks like [number_of_types][length_of_seq].
// We store it as a float32, since it will later usually be normalised
// and converted to a fraction.
// Inaccuracy introduced by working with floats is no problem and we
// can avoid allocating a new matrix for the frequencies.
func (seqgrp *SeqGrp) UsageSite() {
	if len(seqgrp.revmap) == 0 {
		seqgrp.mapsyms()
	}
	nrow := len(seqgrp.revmap)
	ncol := len(seqgrp.seqs[0].GetSeq())
	seqgrp.counts = matrix.NewFMatrix2d(nrow, ncol)
	for _, ss := range seqgrp.seqs {
		for i, c := range ss.GetSeq() {
			cmap := seqgrp.mapping[c]
			seqgrp.counts.Mat[cmap][i] += 1
		}
	}
}

// UsageFrac converts counts to normalised frequencies. If letter 'A'
// occurs 2 times in five positions, its count entry will be changed
// from 2 to 2/5 = 0.4
// If gapsAreChar is true, gaps ("-") are treated as a valid character
// type. Otherwise they are removed from the tallies.
// If gapsAreChar is not true, then
//
//	a symbol's fraction is the fraction of non-gaps
//	            in which you find this symbol
//	the gap's fraction is the fraction of the total
//	            number of residues in which one finds a gap.
//
// This means that the fractions of non-gaps add up to 1,
// and then you have a bit more due to gaps.
func (seqgrp *SeqGrp) UsageFrac(gapsAreChar bool) {
	if seqgrp.counts == nil {
		seqgrp.UsageSite()
	}
	counts := seqgrp.counts
	gappos := seqgrp.mapping[GapChar]
	thereAreGaps := gappos != badMap
	nrow, ncol := counts.Size()
	total := make([]float32, ncol) // total observations in each column
	for icol := 0; icol < ncol; icol++ {
		for irow := 0; irow < nrow; irow++ {
			total[icol] += counts.Mat[irow][icol]
		}
	}
	var savedGapFrac []float32
	if thereAreGaps && !gapsAreChar {
		savedGapFrac = make([]float32, ncol)
		for icol := range savedGapFrac {
			savedGapFrac[icol] = counts.Mat[gappos][icol] / total[icol]
		}
		for icol := 0; icol < ncol; icol++ { // Remove gaps from the totals
			total[icol] -= counts.Mat[gappos][icol]
		}
	}
	for icol := 0; icol < ncol; icol++ { // Normalise the counts
		for irow := 0; irow < nrow; irow++ {
			if total[icol] != 0 {
				counts.Mat[irow][icol] /= total[icol]
			}
		}
	}
	// The gaps have to be corrected. They have to be a fraction of
	// the original column totals
	for icol := range savedGapFrac {
		counts.Mat[gappos][icol] = savedGapFrac[icol]
	}
	seqgrp.freqKnwn = true
}

// FreqKnwn says whether counts have already been turned into
// fractions. Calling UsageFrac twice would normalise twice and give
// rubbish, so callers who share a SeqGrp check here first.
func (seqgrp *SeqGrp) FreqKnwn() bool { return seqgrp.freqKnwn }

// GapFrac looks in a SeqGrp and returns a slice with the fraction
// of gap characters at each position. If there are no gaps, there
// is no slice so we quietly return nil without signalling an error.
func (seqgrp *SeqGrp) GapFrac() []float32 {
	if !seqgrp.freqKnwn {
		gapsAreChar := false
		seqgrp.UsageFrac(gapsAreChar)
	}
	gappos := seqgrp.mapping[GapChar]
	if gappos == badMap {
		return nil
	}
	return seqgrp.counts.Mat[gappos]
}
