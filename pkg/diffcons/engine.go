// 17 Mar 2026
// The engine ties the pieces together: look both receptors up in the
// catalog, pull their class alignment and conservation tables
// through the cache, map residue numbers, join and categorise. A
// comparison either completes or returns an error. There are no
// partial results.

package diffcons

import (
	"fmt"
	"math"

	"github.com/CompGenomeLab/cons_diff/pkg/catalog"
)

// DfltThreshold is the conservation threshold in percent used when
// the caller does not care.
const DfltThreshold = 90

// ClassMismatchError means somebody asked to compare receptors from
// different classes. Their alignments are not the same, so the
// comparison is meaningless and is rejected.
type ClassMismatchError struct {
	Gene1, Class1 string
	Gene2, Class2 string
}

func (e *ClassMismatchError) Error() string {
	return fmt.Sprintf("cannot compare %s (class %s) with %s (class %s): different classes",
		e.Gene1, e.Class1, e.Gene2, e.Class2)
}

// SequenceMissingError means the catalog says a receptor belongs to
// a class, but the class alignment has no sequence for it. The
// reference data disagrees with itself.
type SequenceMissingError struct {
	Gene  string
	Fname string
}

func (e *SequenceMissingError) Error() string {
	return fmt.Sprintf("sequence for %s is missing from alignment %s", e.Gene, e.Fname)
}

// Engine compares receptors. It holds only immutable reference data
// and a cache, so one engine can serve any number of comparisons.
type Engine struct {
	cat   *catalog.Catalog
	cache *Cache
}

// New makes an engine. A nil cache means a fresh private one.
func New(cat *catalog.Catalog, cache *Cache) *Engine {
	if cache == nil {
		cache = NewCache()
	}
	return &Engine{cat: cat, cache: cache}
}

// Result is what a comparison produces. Residues are in alignment
// column order.
type Result struct {
	Receptor1 catalog.Receptor
	Receptor2 catalog.Receptor
	Threshold float64
	Residues  []CategorizedResidue
}

// Compare classifies every alignment position of two receptors. The
// threshold is inclusive and in percent; give a negative value to
// get the default. The result is a pure function of the inputs and
// the catalog, so calling twice gives the same answer.
func (e *Engine) Compare(gene1, gene2 string, threshold float64) (*Result, error) {
	if threshold < 0 {
		threshold = DfltThreshold
	}
	// NaN compares false against everything, so it needs its own check.
	if threshold > 100 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("threshold %.4g is not a percent from 0 to 100", threshold)
	}
	r1, err := e.cat.Lookup(gene1)
	if err != nil {
		return nil, err
	}
	r2, err := e.cat.Lookup(gene2)
	if err != nil {
		return nil, err
	}
	if r1.Class != r2.Class {
		return nil, &ClassMismatchError{r1.GeneName, r1.Class, r2.GeneName, r2.Class}
	}

	alnFile := e.cat.AlignmentPath(r1)
	aln, err := e.cache.alignment(alnFile)
	if err != nil {
		return nil, err
	}
	ndx1, ok := aln.findSeq(r1.GeneName)
	if !ok {
		return nil, &SequenceMissingError{r1.GeneName, alnFile}
	}
	ndx2, ok := aln.findSeq(r2.GeneName)
	if !ok {
		return nil, &SequenceMissingError{r2.GeneName, alnFile}
	}
	seq1 := aln.grp.SeqSlc()[ndx1].GetSeq()
	seq2 := aln.grp.SeqSlc()[ndx2].GetSeq()

	tab1, err := e.cache.table(e.cat.ConsvPath(r1))
	if err != nil {
		return nil, err
	}
	tab2, err := e.cache.table(e.cat.ConsvPath(r2))
	if err != nil {
		return nil, err
	}

	cols, err := MapColumns(seq1, seq2)
	if err != nil {
		return nil, err
	}
	joined := Join(cols, seq1, seq2, tab1, tab2)

	return &Result{
		Receptor1: r1,
		Receptor2: r2,
		Threshold: threshold,
		Residues:  Categorize(joined, threshold),
	}, nil
}
