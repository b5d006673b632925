package ingestion

import "bufio"

// lineReader yields newline-terminated lines from a bufio.Reader.
// The returned slice is backed by either the reader's buffer or a scratch slice
// and is only valid until the next call to next.
type lineReader struct {
	r       *bufio.Reader
	scratch []byte
}

func newLineReader(r *bufio.Reader) *lineReader {
	return &lineReader{r: r}
}

// next returns the next line including its trailing newline, if any.
// At end of input the final unterminated line (possibly empty) is returned with io.EOF.
func (lr *lineReader) next() ([]byte, error) {
	line, err := lr.r.ReadSlice('\n')
	if err != bufio.ErrBufferFull {
		return line, err
	}

	// Line longer than the buffer: accumulate into scratch, reusing its capacity.
	lr.scratch = append(lr.scratch[:0], line...)
	for {
		line, err = lr.r.ReadSlice('\n')
		lr.scratch = append(lr.scratch, line...)
		if err != bufio.ErrBufferFull {
			return lr.scratch, err
		}
	}
}
