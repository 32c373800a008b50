// 16 Mar 2026
// The receptor catalog is static reference data, read once at
// startup. Each row names a receptor, the class it belongs to and
// its conservation table. The alignment file is shared by the whole
// class, so its name is derived from the class, not stored per
// receptor.

package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CompGenomeLab/cons_diff/pkg/consv"
)

// Receptor is one catalog entry. GeneName is the case-insensitive
// lookup key. Receptors are only comparable within one Class.
type Receptor struct {
	GeneName  string
	Class     string
	ConsvFile string // conservation table, relative to the data directory
}

// Catalog holds the receptors keyed by upper-cased gene name, and
// the directory the file paths are relative to.
type Catalog struct {
	byName  map[string]Receptor
	dataDir string
}

// NotFoundError means the gene symbol is not in the catalog. It is
// the user's typo, so the message is meant to be shown verbatim.
type NotFoundError struct {
	Gene string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("receptor %q is not in the catalog", e.Gene)
}

const nCol = 3 // gene name, class, conservation file

// Read reads catalog rows. Comments after '#' and blank lines are
// ignored. An optional header row is recognised by its first field.
func Read(rdr io.Reader, fname, dataDir string) (*Catalog, error) {
	cat := &Catalog{byName: make(map[string]Receptor), dataDir: dataDir}
	scnr := consv.NewCmmtScanner(rdr, '#')
	first := true
	for scnr.Scan() {
		b := scnr.CBytes()
		if b == nil {
			break
		}
		f := strings.Fields(string(b))
		if first {
			first = false
			if t := strings.ToLower(f[0]); t == "gene" || t == "gene_name" {
				continue
			}
		}
		if len(f) != nCol {
			return nil, fmt.Errorf("catalog %s line %d: want %d fields, got %d",
				fname, scnr.Nline(), nCol, len(f))
		}
		r := Receptor{GeneName: f[0], Class: f[1], ConsvFile: f[2]}
		key := strings.ToUpper(r.GeneName)
		if _, dup := cat.byName[key]; dup {
			return nil, fmt.Errorf("catalog %s line %d: duplicate receptor %s",
				fname, scnr.Nline(), r.GeneName)
		}
		cat.byName[key] = r
	}
	if err := scnr.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(cat.byName) == 0 {
		return nil, fmt.Errorf("no receptors found in %s", fname)
	}
	return cat, nil
}

// ReadFile reads a catalog from a named file. Relative paths inside
// the catalog are taken relative to the file's own directory unless
// dataDir says otherwise.
func ReadFile(fname, dataDir string) (*Catalog, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	if dataDir == "" {
		dataDir = filepath.Dir(fname)
	}
	return Read(fp, fname, dataDir)
}

// Lookup finds a receptor by gene name, ignoring case.
func (cat *Catalog) Lookup(gene string) (Receptor, error) {
	r, ok := cat.byName[strings.ToUpper(gene)]
	if !ok {
		return Receptor{}, &NotFoundError{gene}
	}
	return r, nil
}

// NReceptor returns the number of entries.
func (cat *Catalog) NReceptor() int { return len(cat.byName) }

// ConsvPath is the full path to a receptor's conservation table.
func (cat *Catalog) ConsvPath(r Receptor) string {
	return filepath.Join(cat.dataDir, r.ConsvFile)
}

// AlignmentPath is the full path of the ortholog alignment shared by
// a receptor's class.
func (cat *Catalog) AlignmentPath(r Receptor) string {
	return filepath.Join(cat.dataDir, r.Class+"_orthologs.fasta")
}
