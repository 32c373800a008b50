// 19 Mar 2026

package catalog_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CompGenomeLab/cons_diff/brokenio"
	. "github.com/CompGenomeLab/cons_diff/pkg/catalog"
)

const catText = `# receptor catalog
gene_name	class	conservation_file
HTR1A	ClassA	htr1a.tsv
HTR1B	ClassA	htr1b.tsv
GCGR	ClassB	gcgr.tsv
`

// TestLookup checks the case-insensitive lookup and the error for
// an unknown gene.
func TestLookup(t *testing.T) {
	cat, err := Read(strings.NewReader(catText), "test", "/data")
	if err != nil {
		t.Fatal("reading catalog", err)
	}
	if cat.NReceptor() != 3 {
		t.Fatal("wanted 3 receptors, got", cat.NReceptor())
	}
	for _, name := range []string{"HTR1A", "htr1a", "Htr1A"} {
		r, err := cat.Lookup(name)
		if err != nil {
			t.Fatal("lookup", name, err)
		}
		if r.GeneName != "HTR1A" || r.Class != "ClassA" {
			t.Fatal("lookup", name, "gave", r)
		}
	}

	_, err = cat.Lookup("nosuchgene")
	if err == nil {
		t.Fatal("unknown gene should provoke an error")
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatal("wanted NotFoundError, got", err)
	}
}

// TestPaths checks the derived file paths.
func TestPaths(t *testing.T) {
	cat, err := Read(strings.NewReader(catText), "test", "/data")
	if err != nil {
		t.Fatal("reading catalog", err)
	}
	r, _ := cat.Lookup("GCGR")
	if got := cat.ConsvPath(r); got != filepath.Join("/data", "gcgr.tsv") {
		t.Fatal("consv path", got)
	}
	if got := cat.AlignmentPath(r); got != filepath.Join("/data", "ClassB_orthologs.fasta") {
		t.Fatal("alignment path", got)
	}
}

// TestBrokenReader checks an i/o failure comes back as the reader's
// own error, not a truncated catalog.
func TestBrokenReader(t *testing.T) {
	rdr := brokenio.NewReader(strings.NewReader(catText), 30, nil)
	_, err := Read(rdr, "broken", "/data")
	if err == nil {
		t.Fatal("broken reader should provoke an error")
	}
	if !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("wanted the reader's error, got", err)
	}
}

// TestBadCatalog checks duplicates and short rows are refused.
func TestBadCatalog(t *testing.T) {
	bad := []string{
		"HTR1A\tClassA\ta.tsv\nhtr1a\tClassA\tb.tsv\n", // duplicate, case aside
		"HTR1A\tClassA\n", // missing file column
		"",                // nothing at all
	}
	for _, s := range bad {
		if _, err := Read(strings.NewReader(s), "test", "/data"); err == nil {
			t.Fatalf("no error for %q", s)
		}
	}
}
