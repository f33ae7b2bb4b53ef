// Package orio implements IO utilities for working with layered archive
// streams: combining readers and writers with the closers of the streams
// beneath them, and bounding how much may be written through a writer.
package orio

import "io"

// ReadCloser provides a simple way to create an io.ReadCloser by
// combining io.Reader and io.Closer
type ReadCloser struct {
	io.Reader
	io.Closer
}

// WriteCloser provides a simple way to create an io.WriteCloser by
// combining io.Writer and io.Closer
type WriteCloser struct {
	io.Writer
	io.Closer
}

// Error is a io.ReadWriteClose implementation that returns the
// underlying error for everything.
type Error struct {
	Err error
}

func (e Error) Read(p []byte) (int, error) {
	return 0, e.Err
}

func (e Error) Write(p []byte) (int, error) {
	return 0, e.Err
}

func (e Error) Close() error {
	return e.Err
}

// SequencedReadCloser is a ReadCloser that closes all the closers it
// contains in the order they were added when Close is called. Reads are
// served by the wrapped reader. Layered streams need this so the outer
// layer (e.g. a decompressor) is closed before the stream it reads from.
type SequencedReadCloser struct {
	io.Reader
	closers []io.Closer
}

// Close closes all of the contained closers in the order they were
// added. If one fails to close, its error is returned and the rest are
// NOT closed.
func (s *SequencedReadCloser) Close() error {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}

	return nil
}

// NewSequencedReadCloser returns a ReadCloser reading from r that closes
// r first (when it is itself a closer) and then each of closers in order.
func NewSequencedReadCloser(r io.Reader, closers ...io.Closer) *SequencedReadCloser {
	all := make([]io.Closer, 0, len(closers)+1)
	if c, ok := r.(io.Closer); ok {
		all = append(all, c)
	}
	all = append(all, closers...)

	return &SequencedReadCloser{r, all}
}
