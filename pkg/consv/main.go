// 16 Mar 2026

package consv

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/CompGenomeLab/cons_diff/pkg/seq"
)

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

const tblHeader = "residue_number\tconservation_percent\tconserved_aa\treference_aa\tregion\tgpcrdb_number"

// Write writes records as a tab delimited table, the same format
// that Read consumes.
func Write(fp io.Writer, recs []Record) error {
	if _, err := fmt.Fprintln(fp, tblHeader); err != nil {
		return err
	}
	for _, r := range recs {
		_, err := fmt.Fprintf(fp, "%d\t%.2f\t%s\t%s\t%s\t%s\n",
			r.ResNum, r.Perc, r.ConsvAA, r.RefAA, r.Region, r.Gpcrdb)
		if err != nil {
			return err
		}
	}
	return nil
}

// Sorted turns a Table back into records ordered by residue number.
func (tab Table) Sorted() []Record {
	recs := make([]Record, 0, len(tab))
	for _, r := range tab {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ResNum < recs[j].ResNum })
	return recs
}

// CmdFlag holds the command line choices for writing out a table.
type CmdFlag struct {
	RefSym string // gene symbol of the reference sequence
	Vbsty  int
}

// Mymain reads an alignment, computes the conservation of each
// reference residue and writes the table. Empty infile or outfile
// mean standard input and output.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	s_opts := &seq.Options{Vbsty: flags.Vbsty, KeepGapsRd: true}
	seqgrp, err := seq.Readfile(infile, s_opts)
	if err != nil {
		return fmt.Errorf("fail reading sequences: %w", err)
	}

	ndx := -1
	if flags.RefSym != "" {
		if i, ok := seqgrp.SymMap()[strings.ToUpper(flags.RefSym)]; ok {
			ndx = i
		} else if ndx = seqgrp.FindNdx(flags.RefSym); ndx == -1 {
			return fmt.Errorf("cannot find reference sequence %q", flags.RefSym)
		}
	} else {
		ndx = 0 // no reference given, take the first sequence
	}

	recs, err := FromAlignment(seqgrp, ndx)
	if err != nil {
		return err
	}

	var fp io.WriteCloser
	if outfile != "" && outfile != "-" {
		warnExists(outfile)
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
	} else {
		fp = os.Stdout
	}
	return Write(fp, recs)
}
