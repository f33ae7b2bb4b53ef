// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Shared fixture helpers for the archive tests.

package archive_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/getoutreach/arcbox/pkg/archive"
	"gotest.tools/v3/assert"
)

// buildZip returns an in-memory zip source holding the canonical test
// tree: a.txt("hello"), dir/b.txt("world") and the empty directory
// dir/empty/.
func buildZip(t *testing.T) *archive.Source {
	t.Helper()

	var buf bytes.Buffer
	zb, err := archive.NewZipBuilder(&buf)
	assert.NilError(t, err)
	assert.NilError(t, zb.AddFile("a.txt", []byte("hello")))
	assert.NilError(t, zb.AddDir("dir"))
	assert.NilError(t, zb.AddFile("dir/b.txt", []byte("world")))
	assert.NilError(t, zb.AddDir("dir/empty"))
	assert.NilError(t, zb.Close())

	return archive.NewMemorySource(archive.TypeZip, buf.Bytes())
}

// buildTarVariant returns an in-memory source of the given tar variant
// holding the same tree as buildZip.
func buildTarVariant(t *testing.T, typ archive.Type) *archive.Source {
	t.Helper()

	var buf bytes.Buffer
	tb, err := archive.NewTarBuilder(&buf, typ)
	assert.NilError(t, err)
	assert.NilError(t, tb.AddFile("a.txt", 0o644, []byte("hello")))
	assert.NilError(t, tb.AddDir("dir"))
	assert.NilError(t, tb.AddFile("dir/b.txt", 0o644, []byte("world")))
	assert.NilError(t, tb.AddDir("dir/empty"))
	assert.NilError(t, tb.Close())

	return archive.NewMemorySource(typ, buf.Bytes())
}

// mustUnpack unpacks src and registers the session for cleanup.
func mustUnpack(t *testing.T, src *archive.Source) *archive.Session {
	t.Helper()

	s, err := archive.Unpack(context.Background(), src)
	assert.NilError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
