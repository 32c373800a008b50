// Reader for fasta format files.

package seq

import (
	"bytes"
	"errors"
	"io"
	"sync"

	. "github.com/CompGenomeLab/cons_diff/pkg/seq/common"
)

// An item is terminated by a newline if we are in a comment or a comment
// character ">" if we are in a sequence.
const (
	NL       = '\n'
	cmmtChar = '>'
)

type item struct {
	data     []byte
	complete bool
}

type lexer struct {
	input    []byte
	ichan    chan *item
	seqgrp   *SeqGrp
	rdr      io.Reader
	itempool sync.Pool
	cmmt     string // partial comment
	seq      []byte // partial sequence
	white    [256]bool
	term     byte
	first    bool // still on the very first item of the file ?
	err      error
}

const defaultReadSize = 4 * 1024

var rdsize int = defaultReadSize

// setFastaRdSize is only used during benchmarking
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

func newItem() interface{} { return new(item) }

// next reads from the input and sends an item to channel, ichan.
// An item is terminated by l.term, or the end of the buffer or
// end of input.
func (l *lexer) next() {
	l.itempool.New = newItem
	for {
		item := l.itempool.Get().(*item)
		if len(l.input) == 0 {
			l.input = make([]byte, rdsize)
			n, err := l.rdr.Read(l.input)
			if n == 0 {
				if err != nil && err != io.EOF {
					l.err = err // signal that a real error occurred.
				}
				item.data = []byte("")
				item.complete = true
				l.ichan <- item // we have to flush
				close(l.ichan)
				return
			}
			if err == io.EOF && n < rdsize { // Terminate the final item.
				l.input[n] = l.term //  A short read without EOF is legal,
				l.input = l.input[:n+1] // so only do this at a sure end.
			} else {
				l.input = l.input[:n]
			}
		}

		if ndx := bytes.IndexByte(l.input, l.term); ndx == -1 {
			item.data = l.input // no terminator found, so just send
			l.input = nil       // back whatever we have in the buffer.
			item.complete = false
		} else { //                                We did find a terminator
			newlInput := l.input[ndx+1:] //        Advance pointer
			item.data = l.input[:ndx]    //
			item.complete = true         //
			l.input = newlInput          //        Set up for next loop
			if l.term == NL {
				l.term = cmmtChar
			} else {
				l.term = NL
			}
		}
		l.ichan <- item
	}
}

type stateFn func(*lexer) stateFn

// removeWhite squeezes the characters we do not want out of a piece
// of sequence, in place. Which characters those are depends on
// whether we are keeping gaps.
func (l *lexer) removeWhite(s []byte) []byte {
	n := 0
	for _, c := range s {
		if !l.white[c] {
			s[n] = c
			n++
		}
	}
	return s[:n]
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || l.err != nil {
		return nil
	}
	defer l.itempool.Put(item)

	l.seq = append(l.seq, l.removeWhite(item.data)...)
	if item.complete {
		if len(l.seq) == 0 {
			l.err = errors.New("zero length sequence after " + l.cmmt)
			return nil
		}
		seq := seq{cmmt: l.cmmt, seq: l.seq}
		l.seqgrp.seqs = append(l.seqgrp.seqs, seq)
		l.cmmt = ""
		l.seq = nil
		return gcmmt
	}
	return gseq
}

// We are reading a comment. The very first record in a file still
// carries its ">", since nothing before it consumed the character.
// Later records lose theirs as a terminator, so strip it here.
func gcmmt(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || l.err != nil {
		return nil
	}
	defer l.itempool.Put(item)

	data := item.data
	if l.first {
		l.first = false
		if len(data) > 0 && data[0] == cmmtChar {
			data = data[1:]
		}
	}
	l.cmmt = l.cmmt + string(data)
	if item.complete {
		item.complete = false
		return gseq
	}
	return gcmmt
}

// ReadFasta reads fasta formatted sequences, appending them to
// seqgrp. The only reading option it looks at is KeepGapsRd. With it,
// gap characters survive the trip. Without it, they are treated like
// white space and squeezed out.
func ReadFasta(rdr io.Reader, seqgrp *SeqGrp, s_opts *Options) (err error) {
	l := lexer{rdr: rdr, ichan: make(chan *item, 2), seqgrp: seqgrp, term: NL, first: true}
	l.white = [256]bool{
		'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true}
	if !s_opts.KeepGapsRd {
		l.white[GapChar] = true
	}
	if s_opts.ExpectSeq > 0 && cap(seqgrp.seqs) == 0 {
		seqgrp.seqs = make([]seq, 0, s_opts.ExpectSeq)
	}

	go l.next()
	for state := gcmmt; state != nil; {
		state = state(&l)
	}
	// If a state function bailed out early, the producer is still
	// sending. Drain until it closes the channel, or it would block
	// on ichan forever.
	for range l.ichan {
	}
	if l.err == nil && seqgrp.GetNSeq() == 0 {
		l.err = errors.New("no sequences found")
	}
	return l.err
}
