// 15 Mar 2026
// Compute a conservation table from a multiple sequence alignment.
// This is how the tables we read were made in the first place: for
// every ungapped residue of a reference sequence, find the most
// common residue in that alignment column and its frequency among
// the non-gap symbols.

package consv

import (
	"fmt"

	"github.com/CompGenomeLab/cons_diff/pkg/seq"
	. "github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

// tieEps is how close two frequencies must be before we call the
// residues joint winners of a column.
const tieEps = 1e-6

// FromAlignment computes records for every ungapped position of the
// reference sequence at index refNdx in the group. Region and gpcrdb
// fields are not derivable from an alignment, so they are filled with
// "-". Ties for the most common residue are joined with '/'.
func FromAlignment(seqgrp *seq.SeqGrp, refNdx int) ([]Record, error) {
	if refNdx < 0 || refNdx >= seqgrp.GetNSeq() {
		return nil, fmt.Errorf("reference index %d out of range, have %d sequences",
			refNdx, seqgrp.GetNSeq())
	}
	if err := seqgrp.Upper(); err != nil {
		return nil, err
	}
	if !seqgrp.FreqKnwn() {
		gapsAreChar := false
		seqgrp.UsageFrac(gapsAreChar)
	}
	counts := seqgrp.GetCounts()
	revmap := seqgrp.GetRevmap()
	refseq := seqgrp.SeqSlc()[refNdx].GetSeq()

	var recs []Record
	resnum := 0
	for icol, c := range refseq {
		if c == GapChar {
			continue
		}
		resnum++
		best := float32(0)
		for irow := range revmap { // First pass, find the top frequency
			if revmap[irow] == GapChar {
				continue
			}
			if f := counts.Mat[irow][icol]; f > best {
				best = f
			}
		}
		consv := ""
		for irow := range revmap { // Second pass, collect the winners
			if revmap[irow] == GapChar {
				continue
			}
			if best-counts.Mat[irow][icol] < tieEps {
				if consv != "" {
					consv += "/"
				}
				consv += string(revmap[irow])
			}
		}
		recs = append(recs, Record{
			ResNum:  resnum,
			Perc:    float64(best) * 100,
			ConsvAA: consv,
			RefAA:   string(c),
			Region:  "-",
			Gpcrdb:  "-",
		})
	}
	return recs, nil
}
