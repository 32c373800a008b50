// 18 Mar 2026
// Compute a per-residue conservation table from a multiple sequence
// alignment and a reference sequence.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/CompGenomeLab/cons_diff/pkg/consv"
	. "github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]),
		"[flags] [infile [outfile]]")
	long := `Given no arguments, read from stdin and write to stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags consv.CmdFlag
	var infile, outfile string

	flag.StringVar(&flags.RefSym, "r", "", "gene symbol of the reference sequence, default first in file")
	flag.IntVar(&flags.Vbsty, "v", 0, "verbosity")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		infile = flag.Arg(0)
		if flag.NArg() > 1 {
			outfile = flag.Arg(1)
		}
	}

	if err := consv.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
