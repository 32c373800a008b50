// 14 Mar 2026
// Count the sequences in a fasta file without parsing it. The
// alignment files here can hold tens of thousands of orthologs, so
// Readfile uses this to size its slice in one allocation. We mmap
// the file and count ">" characters, which was the fastest of the
// variations tried.

package seq

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
)

// NumSeq returns the number of fasta records in a file.
// A ">" buried in the middle of a comment line would be counted too,
// so treat the result as a capacity hint, not gospel.
func NumSeq(fname string) (int, error) {
	var fp *os.File
	var err error
	var mm mmap.MMap
	if fp, err = os.Open(fname); err != nil {
		return 0, err
	}
	defer fp.Close()
	if mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		return 0, err
	}
	defer mm.Unmap()
	return bytes.Count(mm, []byte(">")), nil
}
