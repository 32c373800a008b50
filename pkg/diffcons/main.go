// 18 Mar 2026

package diffcons

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/CompGenomeLab/cons_diff/pkg/catalog"
)

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

const csvHeader = "category,res_num1,human_aa1,conserved_aa1,perc1," +
	"res_num2,human_aa2,conserved_aa2,perc2,region1,region2,gpcrdb1,gpcrdb2"

// WriteCsv writes categorised residues, one line per column. This is
// the one place the string sentinels live: a gapped side prints
// "gap" for the residue number, "-" for the residues and 0 for the
// percent, which is what downstream consumers of the old format
// expect.
func WriteCsv(fp io.Writer, res []CategorizedResidue) error {
	if _, err := fmt.Fprintln(fp, csvHeader); err != nil {
		return err
	}
	for _, r := range res {
		_, err := fmt.Fprintf(fp, "%s,%s,%s,%s,%g,%s,%s,%s,%g,%s,%s,%s,%s\n",
			r.Cat, r.S1.Res, r.S1.HumanAA, r.S1.ConsvAA, r.S1.Perc,
			r.S2.Res, r.S2.HumanAA, r.S2.ConsvAA, r.S2.Perc,
			r.S1.Region, r.S2.Region, r.S1.Gpcrdb, r.S2.Gpcrdb)
		if err != nil {
			return err
		}
	}
	return nil
}

// CmdFlag holds the command line choices.
type CmdFlag struct {
	Catalog   string  // path to the receptor catalog
	DataDir   string  // where alignments and tables live, default next to catalog
	Threshold float64 // conservation threshold in percent
	ByCat     bool    // sort output by category instead of column order
	Time      bool    // print the run time
	Vbsty     int
}

// Mymain is the main function for comparing two receptors and
// writing the categorised residues to a file. An empty or "-"
// outfile means standard output.
func Mymain(flags *CmdFlag, gene1, gene2, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure gives the right time.
			fmt.Println("finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}

	cat, err := catalog.ReadFile(flags.Catalog, flags.DataDir)
	if err != nil {
		return fmt.Errorf("fail reading catalog: %w", err)
	}
	eng := New(cat, nil)

	result, err := eng.Compare(gene1, gene2, flags.Threshold)
	if err != nil {
		return err
	}
	if flags.Vbsty > 2 {
		fmt.Fprintln(os.Stderr, len(result.Residues), "categorised residues for",
			result.Receptor1.GeneName, "vs", result.Receptor2.GeneName)
	}
	if flags.ByCat {
		SortByCategory(result.Residues)
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
	return WriteCsv(fp, result.Residues)
}
