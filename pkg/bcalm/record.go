// Package bcalm reads and writes the textual record format produced by the
// BCALM2 assembler with per-position abundance output enabled.
//
// Each input record is a header line followed by a nucleotide sequence line:
//
//	>12 LN:i:35 ab:Z:5 5 6 7 L:+:13:- L:-:10:+
//	ACGTAC...
//
// The header carries the record id, the declared sequence length, one
// abundance value per k-mer position along the record, and a list of links.
// A link L:x:t:y states that end x of this record ('+' = last k-mer forward,
// '-' = first k-mer reverse complement) overlaps end y of record t.
//
// Output records are one header and one sequence line per closed unitig:
//
//	>0 sp:i:5
//	ACGTAC
package bcalm

// Link names one neighboring record reachable from an endpoint of a record.
type Link struct {
	FromPlus bool // true: leaves via the last k-mer forward; false: first k-mer reverse complement
	To       int  // target record id
	ToPlus   bool // true: enters the target's first k-mer forward; false: last k-mer reverse complement
}

// Record is one assembler unitig: a maximal non-branching walk with one
// abundance value per k-mer position and links to neighboring records.
// Counts has length len(Seq)-k+1 for the k the file was built with.
type Record struct {
	ID     int
	Seq    string
	Counts []uint32
	Links  []Link
}
