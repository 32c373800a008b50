// 18 Mar 2026

/*
Consdiff compares two receptors from the same class and says, for
every position of their shared ortholog alignment, whether the
position is conserved in a way common to both receptors or specific
to one of them.

The receptors are named by gene symbol and looked up in a catalog
file, which also says which class each belongs to and where its
conservation table lives. The class alignment is expected in the
data directory as <class>_orthologs.fasta.

Every alignment column where at least one receptor has a residue is
classified:

	common         conserved in both, identical or similar residue
	specific_both  conserved in both, but through different residues
	specific1      conserved only in the first receptor
	specific2      conserved only in the second receptor

Positions conserved in neither receptor are left out of the output.
A position counts as conserved when its conservation percent is at
least the threshold (-p, default 90).

The output is a csv file in alignment column order. Use -s to get it
sorted by category instead.

Usage:

	consdiff [flags] gene1 gene2 [outfile]

The flags are:

	-c catalog
		Receptor catalog file, default receptors.tsv
	-d dir
		Data directory with alignments and conservation tables.
		By default they are looked for next to the catalog.
	-p percent
		Conservation threshold, inclusive, from 0 to 100.
	-s
		Sort output rows by category priority.
	-t
		Print timing information.
	-v level
		Verbosity.
*/
package main
