package bcalm

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dbgtools/closetig/pkg/errors"
	"github.com/dbgtools/closetig/pkg/kmer"
)

// maxLineBytes bounds a single FASTA line. Assembler unitigs can span whole
// chromosomes, so the limit is generous.
const maxLineBytes = 512 * 1024 * 1024

var (
	idRe    = regexp.MustCompile(`^>(\d+)`)
	lenRe   = regexp.MustCompile(`LN:i:(\d+)`)
	countRe = regexp.MustCompile(`ab:Z:(\d+(?: \d+)*)`)
	linkRe  = regexp.MustCompile(`L:([+-]):(\d+):([+-])`)
)

// ReadFile reads a BCALM2 FASTA file from disk.
// See Read for the error contract.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a stream of BCALM2 records.
//
// Records are identified by their position in the file; an explicit numeric
// id in the header must agree with that position. Any malformed header,
// missing sequence line, invalid nucleotide, or declared-length mismatch
// returns a FORMAT_ERROR carrying the offending line number, and no records
// are returned.
func Read(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), maxLineBytes)

	var records []Record
	line := 0
	for sc.Scan() {
		line++
		header := sc.Text()
		if header == "" {
			continue
		}
		if !strings.HasPrefix(header, ">") {
			return nil, errors.New(errors.ErrCodeFormat, "line %d: expected header, got %q", line, truncate(header))
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeIO, err, "line %d: read sequence", line+1)
			}
			return nil, errors.New(errors.ErrCodeFormat, "line %d: header without sequence", line)
		}
		line++
		seq := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if seq == "" {
			return nil, errors.New(errors.ErrCodeFormat, "line %d: empty sequence", line)
		}
		if err := kmer.Validate(seq); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "line %d: invalid sequence", line)
		}

		rec, err := parseHeader(header, len(records), line-1)
		if err != nil {
			return nil, err
		}
		rec.Seq = seq

		if m := lenRe.FindStringSubmatch(header); m != nil {
			declared, _ := strconv.Atoi(m[1])
			if declared != len(seq) {
				return nil, errors.New(errors.ErrCodeFormat,
					"line %d: declared length %d but sequence has %d bases", line, declared, len(seq))
			}
		}

		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read input")
	}
	return records, nil
}

// parseHeader extracts the record id, abundance array, and links from a
// header line. index is the zero-based position of the record in the file.
func parseHeader(header string, index, line int) (Record, error) {
	rec := Record{ID: index}

	if m := idRe.FindStringSubmatch(header); m != nil {
		id, _ := strconv.Atoi(m[1])
		if id != index {
			return Record{}, errors.New(errors.ErrCodeFormat,
				"line %d: record id %d out of order (expected %d)", line, id, index)
		}
	}

	m := countRe.FindStringSubmatch(header)
	if m == nil {
		return Record{}, errors.New(errors.ErrCodeFormat,
			"line %d: missing ab:Z: abundance array (was the assembler run with -all-abundance-counts?)", line)
	}
	fields := strings.Split(m[1], " ")
	rec.Counts = make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return Record{}, errors.Wrap(errors.ErrCodeFormat, err, "line %d: abundance value %q", line, f)
		}
		rec.Counts[i] = uint32(v)
	}

	for _, g := range linkRe.FindAllStringSubmatch(header, -1) {
		to, err := strconv.Atoi(g[2])
		if err != nil {
			return Record{}, errors.Wrap(errors.ErrCodeFormat, err, "line %d: link target %q", line, g[2])
		}
		rec.Links = append(rec.Links, Link{
			FromPlus: g[1] == "+",
			To:       to,
			ToPlus:   g[3] == "+",
		})
	}

	return rec, nil
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
