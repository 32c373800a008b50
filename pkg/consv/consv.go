// 15 Mar 2026
// Per-residue conservation tables. One row per ungapped residue of a
// reference sequence: residue number, how conserved the position is
// across orthologs (percent), the conserved residue(s), the residue
// in the reference (human) sequence, the receptor region and the
// gpcrdb number. The tables are read here and can also be computed
// from an alignment (calc.go).

package consv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Record is one row of a conservation table.
type Record struct {
	ResNum int     // residue number in the ungapped reference sequence
	Perc   float64 // conservation, 0 to 100
	ConsvAA string // conserved residue(s), variants joined by '/'
	RefAA  string  // residue in the reference sequence
	Region string  // receptor region such as TM3, ICL2
	Gpcrdb string  // gpcrdb generic number
}

// Table maps residue number to its record. Tables may cover a
// narrower range than the full sequence, so a missed lookup is
// normal, not an error.
type Table map[int]Record

// MalformedRecordError says a table row did not have the shape we
// insist on. We fail the whole read rather than guessing at fields,
// since a short row usually means the file is corrupt upstream.
type MalformedRecordError struct {
	Fname  string
	Nline  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record in %s line %d: %s", e.Fname, e.Nline, e.Reason)
}

const nCol = 6 // columns a table row must have

// CmmtScanner is a wrapper around bufio.Scanner that will ignore
// anything after a comment character and remove leading and trailing
// white space.
type CmmtScanner struct {
	bufio.Scanner
	cmmt  byte // Comment character
	nline int
}

// NewCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes leading and trailing spaces
//   - removes anything after a comment character
func NewCmmtScanner(r io.Reader, cmmt byte) *CmmtScanner {
	s := bufio.NewScanner(r)
	return &CmmtScanner{*s, cmmt, 0}
}

// CBytes presents the same interface as scanner.Bytes, but has to do
// a bit more work. Before returning, we remove anything after the
// comment symbol and strip leading and trailing white space. If this
// leaves us with an empty string, we call Scan again. Like the Bytes
// function, this works directly in the i/o buffer and does not
// allocate. If you like the string it returns, you have to save it
// somewhere.
func (s *CmmtScanner) CBytes() []byte {
	ok := true
	for b := s.Bytes(); ok; ok, b = s.Scan(), s.Bytes() {
		s.nline++
		for i := 0; i < len(b); i++ {
			if b[i] == s.cmmt {
				b = b[:i]
				break
			}
		}
		b = bytes.TrimSpace(b)
		if len(b) > 0 {
			return b
		}
	}
	return nil
}

// Nline is the line number of whatever CBytes returned last.
func (s *CmmtScanner) Nline() int { return s.nline }

// splitRow splits one table row. Tabs are the canonical delimiter,
// but tables written by other tools use runs of spaces, so if tabs
// give us nothing to work with, fall back to any white space.
func splitRow(line string) []string {
	f := strings.Split(line, "\t")
	if len(f) < 2 {
		f = strings.Fields(line)
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	return f
}

// isHeader recognises the optional first row of column names. The
// first field is either the literal column name or at least not a
// number.
func isHeader(f []string) bool {
	t := strings.ToLower(f[0])
	if t == "residue_number" || t == "residue" {
		return true
	}
	_, err := strconv.Atoi(f[0])
	return err != nil
}

// Read reads a conservation table. fname only appears in error
// messages, so callers reading from something other than a file can
// put anything there.
func Read(rdr io.Reader, fname string) (Table, error) {
	tab := make(Table)
	scnr := NewCmmtScanner(rdr, '#')
	first := true
	for scnr.Scan() {
		b := scnr.CBytes()
		if b == nil {
			break
		}
		f := splitRow(string(b))
		if first {
			first = false
			if isHeader(f) {
				continue
			}
		}
		if len(f) != nCol {
			return nil, &MalformedRecordError{fname, scnr.Nline(),
				fmt.Sprintf("want %d columns, got %d", nCol, len(f))}
		}
		var rec Record
		var err error
		if rec.ResNum, err = strconv.Atoi(f[0]); err != nil {
			return nil, &MalformedRecordError{fname, scnr.Nline(),
				"residue number " + f[0]}
		}
		if rec.Perc, err = strconv.ParseFloat(f[1], 64); err != nil {
			return nil, &MalformedRecordError{fname, scnr.Nline(),
				"conservation percent " + f[1]}
		}
		if rec.Perc < 0 || rec.Perc > 100 {
			return nil, &MalformedRecordError{fname, scnr.Nline(),
				"conservation percent out of range " + f[1]}
		}
		rec.ConsvAA, rec.RefAA, rec.Region, rec.Gpcrdb = f[2], f[3], f[4], f[5]
		tab[rec.ResNum] = rec
	}
	if err := scnr.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(tab) == 0 {
		return nil, fmt.Errorf("no records found in %s", fname)
	}
	return tab, nil
}

// ReadFile reads a conservation table from a named file.
func ReadFile(fname string) (Table, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return Read(fp, fname)
}
