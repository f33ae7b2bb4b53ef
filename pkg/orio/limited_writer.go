package orio

import (
	"errors"
	"io"
)

// ErrLimitExceeded is returned if writes exceed the capacity.
var ErrLimitExceeded = errors.New("size limit exceeded")

// LimitedWriter writes through to W until N bytes have been written,
// then fails. N is decremented as bytes are written, so a single budget
// can be carried across several LimitedWriters by threading the
// remaining N from one to the next.
//
// A write that crosses the limit writes the part that fits and returns
// ErrLimitExceeded with the short count, which makes io.Copy through a
// LimitedWriter stop with ErrLimitExceeded.
type LimitedWriter struct {
	W io.Writer
	N int64
}

func (l *LimitedWriter) Write(p []byte) (int, error) {
	var errOut error
	size := int64(len(p))
	if size > l.N {
		size = l.N
		errOut = ErrLimitExceeded
	}

	n, err := l.W.Write(p[:size])
	l.N -= int64(n)
	if err != nil {
		return n, err
	}
	return n, errOut
}
