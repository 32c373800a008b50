// 18 Mar 2026

/*
Constab reads a multiple sequence alignment and writes a per-residue
conservation table for a reference sequence. For every ungapped
position of the reference, the most common residue in that alignment
column and its frequency among the non-gap symbols are written out.
Residues tied for the top spot are joined with "/".

The table has one tab separated row per residue:

	residue_number  conservation_percent  conserved_aa  reference_aa  region  gpcrdb_number

Region and gpcrdb number cannot be derived from an alignment, so
they are written as "-". Other tools fill them in.

Usage:

	constab [flags] [infile [outfile]]

The flags are:

	-r symbol
		Gene symbol of the reference sequence. Without it, the
		first sequence in the file is the reference.
	-v level
		Verbosity.
*/
package main
