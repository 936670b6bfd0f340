package ghibli

import (
	"errors"
	"io"
)

// ErrResponseTooLarge is returned once a response body grows past the allowed size.
var ErrResponseTooLarge = errors.New("response body too large")

// limitedReader reads from r and fails with ErrResponseTooLarge instead of silently
// truncating when more than remaining bytes are available.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func newLimitedReader(r io.Reader, limit int64) io.Reader {
	return &limitedReader{r: r, remaining: limit}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		// Probe one byte to distinguish an exact-size body from an oversized one.
		var probe [1]byte
		n, err := l.r.Read(probe[:])
		if n > 0 {
			return 0, ErrResponseTooLarge
		}
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
