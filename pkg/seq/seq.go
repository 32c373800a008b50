// 14 Mar 2026

// Package seq holds sequences, which begin their lives in fasta
// format. Here they are usually a multiple sequence alignment of
// receptor orthologs, so there are functions for finding a sequence
// by its gene symbol and for tallying symbol usage per column.
package seq

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrew-torda/matrix"
)

// seq is one sequence with its comment (fasta header) line.
type seq struct {
	cmmt string
	seq  []byte
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

// Options contains all the choices passed in from the caller.
type Options struct {
	Vbsty      int  // Verbosity. Higher numbers get more chatter on stderr
	ExpectSeq  int  // Expected number of sequences, to pre-size the slice
	DiffLenSeq bool // false, unless we expect sequences to be different lengths
	KeepGapsRd bool // Keep gaps upon reading. Set for alignments
}

// Constants
const cmmt_char byte = '>' // this introduces comments in fasta format

// SeqGrp is a group of sequences, usually all from one alignment
// file, with tallies of which symbols are used and how often they
// appear at each position.
type SeqGrp struct {
	symUsed  [MaxSym]bool  // which symbols are actually used
	mapping  [MaxSym]uint8 // mapping['C'] tells me the index used for C
	revmap   []uint8       // revmap[2] tells me the character in place 2
	seqs     []seq
	counts   *matrix.FMatrix2d
	usedKnwn bool // Do we know which symbols are used ?
	freqKnwn bool // are counts of symbols converted to fractional probabilities ?
}

// GetSeq returns the sequence as the original byte slice
func (s seq) GetSeq() []byte { return s.seq }

// Cmmt returns the comment (header) line, without the '>'.
func (s seq) Cmmt() string { return s.cmmt }

// Len returns the length of one sequence.
func (s seq) Len() int { return len(s.seq) }

// GeneSym digs the gene symbol out of a header in uniprot style.
// Given "sp|P08908|HTR1A_HUMAN", the third pipe-delimited field is
// "HTR1A_HUMAN" and the symbol is whatever comes before the
// underscore, "HTR1A". If the header does not have the pipes, there
// is no symbol and we return ok = false.
func (s seq) GeneSym() (sym string, ok bool) {
	w := strings.Fields(s.cmmt)
	if len(w) == 0 {
		return "", false
	}
	f := strings.Split(w[0], "|")
	if len(f) < 3 || len(f[2]) == 0 {
		return "", false
	}
	sym = f[2]
	if i := strings.IndexByte(sym, '_'); i != -1 {
		sym = sym[:i]
	}
	if sym == "" {
		return "", false
	}
	return sym, true
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 127).
func (s *seq) Upper() error {
	const diff = 'a' - 'A'
	const symerr = "bad sym \"%c\" at position %d starting \"%s\""
	sq := s.GetSeq()
	for i := 0; i < len(sq); i++ {
		c := sq[i]
		if c >= MaxSym {
			return fmt.Errorf(symerr, c, i, trimStr(s.Cmmt(), 40))
		}
		if 'a' <= c && c <= 'z' {
			sq[i] -= diff
		}
	}
	return nil
}

// String returns a sequence, with its comment at the start as
// a single string
func (s seq) String() (t string) {
	if len(s.cmmt) > 0 {
		t = fmt.Sprintf("%c%s\n", cmmt_char, s.Cmmt())
	} else {
		t = ">\n"
	}
	t += string(s.GetSeq())
	return
}

// GetLen returns the length of the first sequence.
// If we have read a multiple sequence alignment, this is the length
// of all sequences.
func (seqgrp *SeqGrp) GetLen() int { return len(seqgrp.seqs[0].GetSeq()) }

// GetNSeq returns the number of sequences
func (seqgrp *SeqGrp) GetNSeq() int { return len(seqgrp.seqs) }

// SeqSlc returns the slice of sequences
func (seqgrp *SeqGrp) SeqSlc() []seq { return seqgrp.seqs }

// GetCounts gives us the normally non-exported counts
func (seqgrp *SeqGrp) GetCounts() *matrix.FMatrix2d {
	if seqgrp.counts == nil {
		seqgrp.UsageSite()
	}
	return seqgrp.counts
}

// GetRevmap returns the non-exported revmap
func (seqgrp *SeqGrp) GetRevmap() []uint8 { return seqgrp.revmap }

// GetMap tells us where we are storing tallies for a symbol.
// seqgrp.GetMap('C') is the row used for cysteine.
func (seqgrp *SeqGrp) GetMap(c byte) uint8 { return seqgrp.mapping[c] }

// Upper uppercases all the members of a group of sequences.
func (seqgrp *SeqGrp) Upper() error {
	for i := range seqgrp.seqs {
		if err := seqgrp.seqs[i].Upper(); err != nil {
			return err
		}
	}
	return nil
}

// FindNdx returns the index of the sequence whose comment contains a
// string. Numbering starts from zero. We remove any ">", space or tab
// at the start. -1 means not found.
func (seqgrp *SeqGrp) FindNdx(s string) int {
	s = strings.TrimLeft(s, " >\t")
	for i, seq := range seqgrp.seqs {
		if strings.Contains(seq.Cmmt(), s) {
			return i
		}
	}
	return -1
}

// SymMap walks the group and builds a map from gene symbol to
// sequence index. Symbols are uppercased, so later lookups can be
// case-insensitive. A header without a usable symbol is skipped with
// a warning on stderr. That is not an error. A few broken headers
// among thousands of orthologs should not stop anybody.
// If a symbol appears twice, the first sequence wins.
func (seqgrp *SeqGrp) SymMap() map[string]int {
	symmap := make(map[string]int, len(seqgrp.seqs))
	for i, s := range seqgrp.seqs {
		sym, ok := s.GeneSym()
		if !ok {
			fmt.Fprintln(os.Stderr, "no gene symbol in header, skipping:",
				trimStr(s.Cmmt(), 40))
			continue
		}
		sym = strings.ToUpper(sym)
		if _, exists := symmap[sym]; exists {
			continue
		}
		symmap[sym] = i
	}
	return symmap
}

// check_lengths should only be called if we are keeping gaps. Then we
// imagine all the sequences are aligned, so they must be the same
// length.
func check_lengths(seq_set []seq) error {
	const msg = `sequence lengths not the same. First length %d, but sequence %d length %d, starting "%s"`
	iwant := len(seq_set[0].GetSeq())
	for i := 1; i < len(seq_set); i++ {
		if ilen := len(seq_set[i].GetSeq()); ilen != iwant {
			return fmt.Errorf(msg, iwant, i+1, ilen, trimStr(seq_set[i].Cmmt(), 40))
		}
	}
	return nil
}

// Readfile takes a filename and reads sequences from it.
// It returns a SeqGrp and error. An empty filename means standard
// input. When we are given a real file, we count the sequences first
// via NumSeq, so the slice can be allocated in one go. Alignment
// files here can have tens of thousands of orthologs.
func Readfile(fname string, s_opts *Options) (*SeqGrp, error) {
	var seqgrp = new(SeqGrp)
	var fp io.ReadCloser // do not insist on a file. It could be stdin.
	var err error

	if fname != "" {
		if fp, err = os.Open(fname); err != nil {
			return nil, err
		}
		if s_opts.ExpectSeq == 0 {
			if n, err := NumSeq(fname); err == nil {
				s_opts.ExpectSeq = n
			}
		}
	} else {
		fp = os.Stdin
	}
	defer fp.Close()

	if err := ReadFasta(fp, seqgrp, s_opts); err != nil {
		return seqgrp, fmt.Errorf("file %s: %w", fname, err)
	}

	if s_opts.KeepGapsRd && !s_opts.DiffLenSeq {
		if err := check_lengths(seqgrp.seqs); err != nil {
			return seqgrp, fmt.Errorf("file %s: %w", fname, err)
		}
	}
	return seqgrp, nil
}

// Str2SeqGrp takes some strings and returns them as a seqgrp.
// sIn is a slice of strings which are the sequences.
// prefix is an optional argument. Sequences need names/comments. If
// prefix is not given, sequences will be called "s0", "s1", ...
func Str2SeqGrp(sIn []string, prefix ...string) *SeqGrp {
	base := "s"
	if prefix != nil {
		base = prefix[0]
	}
	seqgrp := new(SeqGrp)
	for i, s := range sIn {
		f := seq{cmmt: fmt.Sprint(base, i), seq: []byte(s)}
		seqgrp.seqs = append(seqgrp.seqs, f)
	}
	return seqgrp
}
