package orio_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/getoutreach/arcbox/pkg/orio"
	"gotest.tools/v3/assert"
)

func TestLimitedWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &orio.LimitedWriter{W: &buf, N: 10}

	n, err := w.Write([]byte("hello"))
	assert.Equal(t, n, 5)
	assert.NilError(t, err)
	assert.Equal(t, "hello", buf.String())

	n, err = w.Write([]byte("world"))
	assert.Equal(t, n, 5)
	assert.NilError(t, err)
	assert.Equal(t, "helloworld", buf.String())

	n, err = w.Write([]byte("foo"))
	assert.Equal(t, n, 0)
	assert.Equal(t, err, orio.ErrLimitExceeded)
}

func TestLimitedWriterPartialWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &orio.LimitedWriter{W: &buf, N: 3}

	n, err := w.Write([]byte("hello"))
	assert.Equal(t, n, 3)
	assert.Equal(t, err, orio.ErrLimitExceeded)
	assert.Equal(t, "hel", buf.String())
	assert.Equal(t, w.N, int64(0))
}

func TestLimitedWriterCarriedBudget(t *testing.T) {
	var a, b bytes.Buffer

	w := &orio.LimitedWriter{W: &a, N: 8}
	_, err := w.Write([]byte("12345"))
	assert.NilError(t, err)

	// Thread the remaining budget into a writer over a second stream.
	w2 := &orio.LimitedWriter{W: &b, N: w.N}
	n, err := w2.Write([]byte("6789"))
	assert.Equal(t, n, 3)
	assert.Equal(t, err, orio.ErrLimitExceeded)
	assert.Equal(t, "678", b.String())
}

func TestLimitedWriterWithCopy(t *testing.T) {
	var buf bytes.Buffer
	w := &orio.LimitedWriter{W: &buf, N: 4}

	_, err := io.Copy(w, strings.NewReader("overflow"))
	assert.Equal(t, err, orio.ErrLimitExceeded)
	assert.Equal(t, "over", buf.String())
}
