// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Tests for archive session operations.

package archive_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/getoutreach/arcbox/pkg/archive"
	"gotest.tools/v3/assert"
)

func TestSessionZipScenario(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	assert.Equal(t, s.FileCount(), 2)
	assert.Assert(t, !s.IsEmpty())
	assert.Equal(t, s.Type(), archive.TypeZip)
	assert.Assert(t, s.ID() != "")

	matches := s.FindFilesByExtension(".txt")
	assert.Equal(t, len(matches), 2)

	data, err := s.ReadFile("a.txt")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "hello")

	// Directories are never part of the tracked list.
	assert.Assert(t, s.ContainsFile("dir/b.txt"))
	assert.Assert(t, !s.ContainsFile("dir/empty"))
}

func TestSessionOriginalPath(t *testing.T) {
	src := buildZip(t)
	data, err := src.Bytes()
	assert.NilError(t, err)

	path := filepath.Join(t.TempDir(), "fixture.zip")
	assert.NilError(t, os.WriteFile(path, data, 0o644))

	onDisk, err := archive.NewSource(path)
	assert.NilError(t, err)

	s := mustUnpack(t, onDisk)
	orig, ok := s.OriginalPath()
	assert.Assert(t, ok)
	assert.Equal(t, orig, path)

	// Memory-backed sources have no original path.
	mem := mustUnpack(t, buildZip(t))
	_, ok = mem.OriginalPath()
	assert.Assert(t, !ok)
}

func TestSessionReadFileMissing(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	_, err := s.ReadFile("no/such/file.txt")
	assert.Equal(t, arcerr.KindOf(err), arcerr.EntryNotFound)
}

func TestSessionWriteFile(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	assert.NilError(t, s.WriteFile("new/c.txt", []byte("fresh")))
	assert.Equal(t, s.FileCount(), 3)
	assert.Assert(t, s.ContainsFile("new/c.txt"))

	data, err := s.ReadFile("new/c.txt")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "fresh")

	rel, err := s.RelativeFilePaths()
	assert.NilError(t, err)
	assert.DeepEqual(t, rel, []string{"a.txt", "dir/b.txt", "new/c.txt"})

	// Overwriting a tracked file does not duplicate it.
	assert.NilError(t, s.WriteFile("a.txt", []byte("replaced")))
	assert.Equal(t, s.FileCount(), 3)

	data, err = s.ReadFile("a.txt")
	assert.NilError(t, err)
	assert.Equal(t, string(data), "replaced")
}

func TestSessionWriteFileEscape(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	err := s.WriteFile("../outside.txt", []byte("nope"))
	assert.ErrorContains(t, err, "is outside of")
}

func TestSessionRefreshFileList(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	// A file dropped into the directory behind the session's back is
	// picked up on refresh.
	stray := filepath.Join(s.Dir(), "dir", "stray.log")
	assert.NilError(t, os.WriteFile(stray, []byte("x"), 0o644))

	assert.NilError(t, s.RefreshFileList())
	assert.Equal(t, s.FileCount(), 3)
	assert.Assert(t, s.ContainsFile("dir/stray.log"))

	// Refresh is idempotent.
	before := append([]string(nil), s.FilePaths()...)
	assert.NilError(t, s.RefreshFileList())
	assert.DeepEqual(t, s.FilePaths(), before)

	// Deletions are picked up as well.
	assert.NilError(t, os.Remove(stray))
	assert.NilError(t, s.RefreshFileList())
	assert.Equal(t, s.FileCount(), 2)
}

func TestSessionFindFiles(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	matches := s.FindFiles(func(path string) bool {
		return strings.Contains(filepath.Base(path), "b")
	})
	assert.Equal(t, len(matches), 1)
	assert.Equal(t, filepath.Base(matches[0]), "b.txt")

	// Extension lookup is case-insensitive and dot-optional.
	assert.Equal(t, len(s.FindFilesByExtension("TXT")), 2)
	assert.Equal(t, len(s.FindFilesByExtension(".txt")), 2)
	assert.Equal(t, len(s.FindFilesByExtension("log")), 0)
}

func TestSessionIteration(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	var got []string
	for f := range s.Files() {
		got = append(got, f)
	}
	assert.DeepEqual(t, got, s.FilePaths())

	// Early break stops the iteration cleanly.
	var first []string
	for f := range s.Files() {
		first = append(first, f)
		break
	}
	assert.Equal(t, len(first), 1)
}

func TestSessionTakeFilePaths(t *testing.T) {
	s := mustUnpack(t, buildZip(t))

	taken := s.TakeFilePaths()
	assert.Equal(t, len(taken), 2)
	assert.Assert(t, s.IsEmpty())

	// The files themselves stay on disk.
	for _, f := range taken {
		_, err := os.Stat(f)
		assert.NilError(t, err)
	}
}

func TestSessionClose(t *testing.T) {
	s, err := archive.Unpack(context.Background(), buildZip(t))
	assert.NilError(t, err)

	dir := s.Dir()
	assert.NilError(t, s.Close())

	_, err = os.Stat(dir)
	assert.Assert(t, os.IsNotExist(err))

	// Closing again is a no-op.
	assert.NilError(t, s.Close())
}
