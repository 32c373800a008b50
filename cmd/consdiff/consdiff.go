// 18 Mar 2026
// Compare the residue conservation of two receptors from the same
// class and categorise every alignment position.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/CompGenomeLab/cons_diff/pkg/diffcons"
	. "github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"[flags] gene1 gene2 [outfile]")
	flag.PrintDefaults()
}

func main() {
	var flags diffcons.CmdFlag
	var outfile string

	flag.StringVar(&flags.Catalog, "c", "receptors.tsv", "receptor catalog file")
	flag.StringVar(&flags.DataDir, "d", "", "data directory, default is next to the catalog")
	flag.Float64Var(&flags.Threshold, "p", diffcons.DfltThreshold, "conservation threshold in percent")
	flag.BoolVar(&flags.ByCat, "s", false, "sort output by category, not column order")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.IntVar(&flags.Vbsty, "v", 0, "verbosity")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "need two gene symbols")
		usage()
		os.Exit(ExitUsageError)
	}
	gene1, gene2 := flag.Arg(0), flag.Arg(1)
	if flag.NArg() > 2 {
		outfile = flag.Arg(2)
	}

	if err := diffcons.Mymain(&flags, gene1, gene2, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
