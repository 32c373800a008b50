// brokenio wraps an io.Reader so it fails on purpose. The parsers in
// this module read alignments and tables from files which in real
// life are sometimes truncated or on flaky storage. Typical use: you
// have a reader. You write
//   rdr = brokenio.NewReader(rdr, n, err)
// and everything functions as before until n bytes have passed
// through, at which point every Read returns your error. With n = 0
// the very first read reports a clean end of file, which is what one
// sees with a zero length file.

package brokenio

import (
	"errors"
	"io"
)

// ErrBroken is the error handed out when the caller does not supply
// their own.
var ErrBroken = errors.New("broken reader: deliberate failure")

// Reader is modelled on the wrappers in the standard library, but
// with a byte budget after which reads fail.
type Reader struct {
	rdr       io.Reader
	failAfter int // fail once this many bytes have been read
	nByte     int // bytes that have gone through so far
	err       error
}

// NewReader wraps rdr. After failAfter bytes, reads return err.
// A nil err means ErrBroken. failAfter = 0 simulates a zero length
// file, so the first read returns io.EOF without an error.
func NewReader(rdr io.Reader, failAfter int, err error) *Reader {
	if err == nil {
		err = ErrBroken
	}
	return &Reader{rdr: rdr, failAfter: failAfter, err: err}
}

// Read passes data through until the budget is spent.
func (r *Reader) Read(p []byte) (int, error) {
	if r.failAfter == 0 {
		return 0, io.EOF
	}
	if r.nByte >= r.failAfter {
		return 0, r.err
	}
	if left := r.failAfter - r.nByte; len(p) > left {
		p = p[:left]
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	return n, err
}
