// 17 Mar 2026
// Reference data never changes during the life of the process, so
// parsed alignments and tables are kept in a cache keyed by file
// path. The cache is an explicit object handed to the engine, not a
// package level global, so tests can start with an empty one.
// Dropping the cache is always safe. Everything in it can be
// recomputed from the files.

package diffcons

import (
	"strings"
	"sync"

	"github.com/CompGenomeLab/cons_diff/pkg/consv"
	"github.com/CompGenomeLab/cons_diff/pkg/seq"
)

// alnEntry is a parsed alignment plus its gene symbol index.
type alnEntry struct {
	grp    *seq.SeqGrp
	symmap map[string]int
}

// Cache maps file paths to parsed content. Entries are never
// invalidated.
type Cache struct {
	mu     sync.RWMutex
	aligns map[string]*alnEntry
	tabs   map[string]consv.Table
	vbsty  int
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		aligns: make(map[string]*alnEntry),
		tabs:   make(map[string]consv.Table),
	}
}

// Drop empties the cache. Useful under memory pressure, harmless
// otherwise.
func (c *Cache) Drop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aligns = make(map[string]*alnEntry)
	c.tabs = make(map[string]consv.Table)
}

// alignment returns the parsed alignment for a path, reading it on
// the first request. Sequences are uppercased once after reading, so
// later residue comparisons need not worry about case.
func (c *Cache) alignment(fname string) (*alnEntry, error) {
	c.mu.RLock()
	e, ok := c.aligns[fname]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	s_opts := &seq.Options{Vbsty: c.vbsty, KeepGapsRd: true}
	grp, err := seq.Readfile(fname, s_opts)
	if err != nil {
		return nil, err
	}
	if err := grp.Upper(); err != nil {
		return nil, err
	}
	e = &alnEntry{grp: grp, symmap: grp.SymMap()}

	c.mu.Lock()
	c.aligns[fname] = e
	c.mu.Unlock()
	return e, nil
}

// table returns the parsed conservation table for a path, reading it
// on the first request.
func (c *Cache) table(fname string) (consv.Table, error) {
	c.mu.RLock()
	tab, ok := c.tabs[fname]
	c.mu.RUnlock()
	if ok {
		return tab, nil
	}

	tab, err := consv.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tabs[fname] = tab
	c.mu.Unlock()
	return tab, nil
}

// findSeq looks a gene symbol up in an alignment entry, ignoring
// case.
func (e *alnEntry) findSeq(gene string) (ndx int, ok bool) {
	ndx, ok = e.symmap[strings.ToUpper(gene)]
	return
}
