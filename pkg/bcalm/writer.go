package bcalm

import (
	"bufio"
	"fmt"
	"io"
)

// Writer emits closed-unitig records: a header with the assigned id and the
// support value, followed by the nucleotide sequence line.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w for record output. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteRecord writes one closed unitig.
func (w *Writer) WriteRecord(id int, support uint32, seq string) error {
	if _, err := fmt.Fprintf(w.w, ">%d sp:i:%d\n%s\n", id, support, seq); err != nil {
		return err
	}
	return nil
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
