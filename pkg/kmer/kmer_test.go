package kmer

import "testing"

func TestComplement(t *testing.T) {
	tests := []struct {
		in   byte
		want byte
		ok   bool
	}{
		{'A', 'T', true},
		{'C', 'G', true},
		{'G', 'C', true},
		{'T', 'A', true},
		{'N', 0, false},
		{'a', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, ok := Complement(tt.in)
			if ok != tt.ok {
				t.Fatalf("Complement(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Complement(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		seq     string
		wantErr bool
	}{
		{"valid", "ACGTACGT", false},
		{"empty", "", false},
		{"ambiguity code", "ACGNT", true},
		{"lowercase", "acgt", true},
		{"whitespace", "ACG T", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.seq)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.seq, err, tt.wantErr)
			}
		})
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"", ""},
		{"A", "T"},
		{"ACG", "CGT"},
		{"AACCAT", "ATGGTT"},
		{"GCATGC", "GCATGC"}, // palindrome
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			if got := ReverseComplement(tt.seq); got != tt.want {
				t.Errorf("ReverseComplement(%q) = %q, want %q", tt.seq, got, tt.want)
			}
		})
	}
}

func TestReverseComplementIsInvolution(t *testing.T) {
	seqs := []string{"A", "ACGT", "AACCATGGTT", "TTTTT"}
	for _, seq := range seqs {
		if got := ReverseComplement(ReverseComplement(seq)); got != seq {
			t.Errorf("double reverse complement of %q = %q, want original", seq, got)
		}
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		seq     string
		want    string
		wantFwd bool
	}{
		{"AAC", "AAC", true},  // already canonical (rc = GTT)
		{"GTT", "AAC", false}, // flipped occurrence
		{"CAT", "ATG", false},
		{"ATG", "ATG", true},
		{"GCATGC", "GCATGC", true}, // palindrome reports forward
	}

	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			got, fwd := Canonical(tt.seq)
			if got != tt.want || fwd != tt.wantFwd {
				t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.seq, got, fwd, tt.want, tt.wantFwd)
			}
		})
	}
}

func TestCanonicalMatchesReverseComplement(t *testing.T) {
	// A k-mer and its reverse complement must resolve to the same canonical form.
	pairs := [][2]string{
		{"AAC", "GTT"},
		{"CAT", "ATG"},
		{"AAGGA", "TCCTT"},
	}
	for _, p := range pairs {
		a, _ := Canonical(p[0])
		b, _ := Canonical(p[1])
		if a != b {
			t.Errorf("Canonical(%q) = %q, Canonical(%q) = %q, want equal", p[0], a, p[1], b)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	if !IsCanonical("AAC") {
		t.Error("IsCanonical(AAC) = false, want true")
	}
	if IsCanonical("GTT") {
		t.Error("IsCanonical(GTT) = true, want false")
	}
}
