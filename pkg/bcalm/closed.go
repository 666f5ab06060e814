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

// ClosedRecord is one emitted closed unitig read back from a previous run.
type ClosedRecord struct {
	ID      int
	Support uint32
	Seq     string
}

var supportRe = regexp.MustCompile(`sp:i:(\d+)`)

// ReadClosedFile reads a closed-unitig file from disk. See ReadClosed.
func ReadClosedFile(path string) ([]ClosedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadClosed(f)
}

// ReadClosed parses the output record format: a header with the assigned id
// and sp:i: support tag, followed by the sequence line.
func ReadClosed(r io.Reader) ([]ClosedRecord, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), maxLineBytes)

	var records []ClosedRecord
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
		m := supportRe.FindStringSubmatch(header)
		if m == nil {
			return nil, errors.New(errors.ErrCodeFormat, "line %d: missing sp:i: support tag", line)
		}
		support, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "line %d: support value", line)
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeIO, err, "line %d: read sequence", line+1)
			}
			return nil, errors.New(errors.ErrCodeFormat, "line %d: header without sequence", line)
		}
		line++
		seq := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if err := kmer.Validate(seq); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFormat, err, "line %d: invalid sequence", line)
		}

		records = append(records, ClosedRecord{
			ID:      len(records),
			Support: uint32(support),
			Seq:     seq,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read input")
	}
	return records, nil
}
