// 19 Mar 2026

package seq_test

import (
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/CompGenomeLab/cons_diff/brokenio"
	. "github.com/CompGenomeLab/cons_diff/pkg/seq"
	"github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

func cmmtHelp(got, want string, t *testing.T) {
	t.Helper()
	if got != want {
		t.Fatalf("checking comments wanted \"%s\" got \"%s\"", want, got)
	}
}

// TestComment is to check that comments are read exactly, correctly,
// and without the ">".
func TestComment(t *testing.T) {
	c0 := "testcomment no space"
	c1 := " testcomment with space at start"
	s := "aaa\n"
	seqs := ">" + c0 + "\n" + s + ">" + c1 + "\n" + s
	var seqgrp SeqGrp
	var s_opts Options

	if err := ReadFasta(strings.NewReader(seqs), &seqgrp, &s_opts); err != nil {
		t.Fatal("bust reading simple seqs in TestComment", err)
	}
	slc := seqgrp.SeqSlc()
	cmmtHelp(slc[0].Cmmt(), c0, t)
	cmmtHelp(slc[1].Cmmt(), c1, t)
}

// TestGaps checks gaps survive with KeepGapsRd and vanish without.
func TestGaps(t *testing.T) {
	seqs := ">s1\nAC-D\n>s2\nA-CD\n"
	for _, keep := range []bool{true, false} {
		var seqgrp SeqGrp
		s_opts := &Options{KeepGapsRd: keep}
		if err := ReadFasta(strings.NewReader(seqs), &seqgrp, s_opts); err != nil {
			t.Fatal("reading gapped seqs", err)
		}
		want := "AC-D"
		if !keep {
			want = "ACD"
		}
		if got := string(seqgrp.SeqSlc()[0].GetSeq()); got != want {
			t.Fatalf("keep %v got %s want %s", keep, got, want)
		}
	}
}

// TestGeneSym works through the header convention. The third
// pipe-delimited field, truncated at the first underscore, is the
// gene symbol.
func TestGeneSym(t *testing.T) {
	tests := []struct {
		cmmt string
		sym  string
		ok   bool
	}{
		{"sp|P08908|HTR1A_HUMAN", "HTR1A", true},
		{"sp|P28222|HTR1B_HUMAN 5-hydroxytryptamine receptor", "HTR1B", true},
		{"tr|A0A2K5|OPN3_MACFA", "OPN3", true},
		{"sp|P12345|NOUNDERSCORE", "NOUNDERSCORE", true},
		{"just a plain comment", "", false},
		{"sp|P12345", "", false},
		{"", "", false},
		{"sp|P12345|_HUMAN", "", false},
	}
	for _, tc := range tests {
		var grp SeqGrp
		s := ">" + tc.cmmt + "\nACDE\n"
		if err := ReadFasta(strings.NewReader(s), &grp, &Options{}); err != nil {
			t.Fatal("reading one seq", err)
		}
		sym, ok := grp.SeqSlc()[0].GeneSym()
		if ok != tc.ok || sym != tc.sym {
			t.Fatalf("header %q got %q %v want %q %v", tc.cmmt, sym, ok, tc.sym, tc.ok)
		}
	}
}

// TestSymMap checks the gene symbol index: case-insensitive keys,
// broken headers skipped, first of a duplicate pair wins.
func TestSymMap(t *testing.T) {
	s := `>sp|P08908|HTR1A_HUMAN
AAAA
>sp|P28222|HTR1B_HUMAN
CCCC
>rubbish header
GGGG
>sp|P99999|HTR1A_MOUSE
TTTT`
	var grp SeqGrp
	if err := ReadFasta(strings.NewReader(s), &grp, &Options{}); err != nil {
		t.Fatal("reading seqs", err)
	}
	m := grp.SymMap()
	if len(m) != 2 {
		t.Fatal("symmap wanted 2 entries, got", len(m))
	}
	if m["HTR1A"] != 0 { // the human copy, not the mouse duplicate
		t.Fatal("HTR1A wanted index 0, got", m["HTR1A"])
	}
	if m["HTR1B"] != 1 {
		t.Fatal("HTR1B wanted index 1, got", m["HTR1B"])
	}
}

// TestLengthCheck makes sure Readfile objects to ragged alignments.
func TestLengthCheck(t *testing.T) {
	s := ">s1\nACDE\n>s2\nAC\n"
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(fname)
	if _, err := Readfile(fname, &Options{KeepGapsRd: true}); err == nil {
		t.Fatal("ragged alignment should provoke an error")
	}
	if _, err := Readfile(fname, &Options{KeepGapsRd: true, DiffLenSeq: true}); err != nil {
		t.Fatal("DiffLenSeq set, but got", err)
	}
}

// TestNumSeq counts records in a real file.
func TestNumSeq(t *testing.T) {
	s := ">s1\nACDE\n>s2\nACDF\n>s3\nACDG\n"
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(fname)
	n, err := NumSeq(fname)
	if err != nil {
		t.Fatal("numseq", err)
	}
	if n != 3 {
		t.Fatal("numseq wanted 3 got", n)
	}
}

// TestReadfile reads from a real file and checks the round trip.
func TestReadfile(t *testing.T) {
	s := ">sp|P1|AA_X\nAC-D\n>sp|P2|BB_X\nA-CD\n"
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(fname)
	grp, err := Readfile(fname, &Options{KeepGapsRd: true})
	if err != nil {
		t.Fatal("readfile", err)
	}
	if grp.GetNSeq() != 2 || grp.GetLen() != 4 {
		t.Fatal("got", grp.GetNSeq(), "seqs of length", grp.GetLen())
	}
}

// TestSmallBuf forces the reader through many tiny reads, so
// sequences and comments span buffer boundaries.
func TestSmallBuf(t *testing.T) {
	long1 := strings.Repeat("A", 2000)
	long2 := strings.Repeat("C", 3000)
	s := ">sp|P1|AA_X\n" + long1 + "\n>sp|P2|BB_X\n" + long2 + "\n"
	SetFastaRdSize(16)
	defer SetFastaRdSize(DefaultReadSize)
	var grp SeqGrp
	if err := ReadFasta(strings.NewReader(s), &grp, &Options{}); err != nil {
		t.Fatal("small buffer read", err)
	}
	if got := string(grp.SeqSlc()[0].GetSeq()); got != long1 {
		t.Fatal("seq 1 mangled, length", len(got))
	}
	if got := string(grp.SeqSlc()[1].GetSeq()); got != long2 {
		t.Fatal("seq 2 mangled, length", len(got))
	}
}

// TestBrokenReader checks a mid-file failure surfaces as an error.
func TestBrokenReader(t *testing.T) {
	s := ">s1\nACDE\n>s2\nACDF\n"
	rdr := brokenio.NewReader(strings.NewReader(s), 7, nil)
	var grp SeqGrp
	if err := ReadFasta(rdr, &grp, &Options{}); err == nil {
		t.Fatal("broken reader should provoke an error")
	}
}

// TestBadSeqNoLeak parses a file with an empty sequence many times
// over. Each parse must clean up its reader goroutine, or a
// long-running caller retrying a bad file accumulates blocked
// goroutines.
func TestBadSeqNoLeak(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		var grp SeqGrp
		if err := ReadFasta(strings.NewReader(">s1\n>s2\nACDE\n"), &grp, &Options{}); err == nil {
			t.Fatal("empty sequence should provoke an error")
		}
	}
	after := runtime.NumGoroutine()
	for end := time.Now().Add(2 * time.Second); after > before; after = runtime.NumGoroutine() {
		if time.Now().After(end) {
			t.Fatal("leaked goroutines, before", before, "after", after)
		}
		time.Sleep(time.Millisecond) // let finished producers be reaped
	}
}

// TestZeroFile is the common case of an empty file.
func TestZeroFile(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(">s1\nACDE\n"), 0, nil)
	var grp SeqGrp
	if err := ReadFasta(rdr, &grp, &Options{}); err == nil {
		t.Fatal("zero length file should provoke an error")
	}
}

// TestUsageFrac checks the per-column fractions on a toy alignment.
func TestUsageFrac(t *testing.T) {
	grp := Str2SeqGrp([]string{"AC-D", "AC-D", "AG-D", "A--D"})
	grp.UsageFrac(false)
	counts := grp.GetCounts()
	aRow := grp.GetMap('A')
	if got := counts.Mat[aRow][0]; got != 1 {
		t.Fatal("column 0 all A, frac got", got)
	}
	cRow := grp.GetMap('C')
	if got := counts.Mat[cRow][1]; got != 2./3 {
		t.Fatal("column 1 C frac got", got)
	}
	gapfrac := grp.GapFrac()
	if gapfrac[2] != 1 {
		t.Fatal("column 2 all gaps, frac got", gapfrac[2])
	}
	if gapfrac[1] != 1./4 {
		t.Fatal("column 1 gap frac got", gapfrac[1])
	}
}
