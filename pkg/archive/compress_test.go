// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Tests for single-stream compressed sources.

package archive_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/getoutreach/arcbox/pkg/archive"
	"github.com/ulikunitz/xz"
	"gotest.tools/v3/assert"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(data)
	assert.NilError(t, err)
	assert.NilError(t, gw.Close())
	return buf.Bytes()
}

func TestUnpackGzStemNaming(t *testing.T) {
	src := archive.NewMemorySourceNamed(archive.TypeGz, "notes.txt.gz",
		gzipBytes(t, []byte("hello world")))

	s := mustUnpack(t, src)

	// The single output file is named after the source's stem.
	assert.Equal(t, s.FileCount(), 1)
	data, err := s.ReadFile("notes.txt")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "hello world")
}

func TestUnpackGzPlaceholderNaming(t *testing.T) {
	src := archive.NewMemorySource(archive.TypeGz, gzipBytes(t, []byte("anonymous")))

	s := mustUnpack(t, src)

	data, err := s.ReadFile("extracted")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "anonymous")
}

func TestUnpackBz2(t *testing.T) {
	var buf bytes.Buffer
	bw, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
	assert.NilError(t, err)
	_, err = bw.Write([]byte("compressed with bzip2"))
	assert.NilError(t, err)
	assert.NilError(t, bw.Close())

	src := archive.NewMemorySourceNamed(archive.TypeBz2, "notes.bz2", buf.Bytes())
	s := mustUnpack(t, src)

	data, err := s.ReadFile("notes")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "compressed with bzip2")
}

func TestUnpackXz(t *testing.T) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	assert.NilError(t, err)
	_, err = xw.Write([]byte("compressed with xz"))
	assert.NilError(t, err)
	assert.NilError(t, xw.Close())

	src := archive.NewMemorySourceNamed(archive.TypeXz, "notes.xz", buf.Bytes())
	s := mustUnpack(t, src)

	data, err := s.ReadFile("notes")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "compressed with xz")
}

func TestUnpackCorruptGz(t *testing.T) {
	src := archive.NewMemorySourceNamed(archive.TypeGz, "bad.gz",
		[]byte("not gzip at all"))

	_, err := archive.Unpack(context.Background(), src)
	assert.Equal(t, arcerr.KindOf(err), arcerr.Codec)
}

func TestUnpackTruncatedGz(t *testing.T) {
	full := gzipBytes(t, bytes.Repeat([]byte("abcdefgh"), 64))
	src := archive.NewMemorySourceNamed(archive.TypeGz, "cut.gz", full[:len(full)/2])

	_, err := archive.Unpack(context.Background(), src)
	assert.Equal(t, arcerr.KindOf(err), arcerr.Codec)
}
