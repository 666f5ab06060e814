// Package kmer provides nucleotide-level primitives for k-mer handling:
// complementation, reverse complements, and strand-independent canonical forms.
//
// A canonical k-mer is the lexicographically smaller of a k-mer and its
// reverse complement. Using canonical forms as identities lets the rest of
// the system keep a single node per k-mer regardless of the strand an
// assembler happened to report it on.
package kmer

import (
	"github.com/dbgtools/closetig/pkg/errors"
)

// complements maps each nucleotide byte to its Watson-Crick complement.
// Zero entries mark invalid nucleotides.
var complements = [256]byte{
	'A': 'T',
	'C': 'G',
	'G': 'C',
	'T': 'A',
}

// Complement returns the Watson-Crick complement of a single nucleotide.
// The second return value is false if the byte is not one of A, C, G, T.
func Complement(b byte) (byte, bool) {
	c := complements[b]
	return c, c != 0
}

// Validate checks that seq consists only of A, C, G, T.
// It returns a FORMAT_ERROR naming the first offending byte otherwise.
func Validate(seq string) error {
	for i := 0; i < len(seq); i++ {
		if complements[seq[i]] == 0 {
			return errors.New(errors.ErrCodeFormat, "unknown nucleotide %q at position %d", string(seq[i]), i)
		}
	}
	return nil
}

// ReverseComplement returns the reverse complement of seq.
// Bytes without a defined complement are passed through unchanged; call
// Validate first when the input is untrusted.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := complements[seq[len(seq)-1-i]]
		if c == 0 {
			c = seq[len(seq)-1-i]
		}
		out[i] = c
	}
	return string(out)
}

// Canonical returns the lexicographically smaller of seq and its reverse
// complement, together with true when seq itself is the canonical form.
// Palindromic k-mers (equal to their own reverse complement) report true.
func Canonical(seq string) (string, bool) {
	rc := ReverseComplement(seq)
	if rc < seq {
		return rc, false
	}
	return seq, true
}

// IsCanonical reports whether seq is its own canonical form.
func IsCanonical(seq string) bool {
	_, fwd := Canonical(seq)
	return fwd
}
