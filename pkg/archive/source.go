// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the archive source representation.

package archive

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/pkg/errors"
)

// Source is a not-yet-extracted archive: a file path or an in-memory
// buffer, together with its archive type. Construct one with NewSource,
// NewSourceWithType, NewMemorySource or NewMemorySourceNamed.
type Source struct {
	typ Type

	// path is set for path-backed sources and empty otherwise.
	path string

	// name is an origin file name for memory-backed sources. It is
	// only used to derive output names when extracting single-stream
	// formats.
	name string

	data     []byte
	inMemory bool
}

// NewSource creates a source from a file path, inferring the archive
// type from the file name. A path without an extension fails with an
// invalid-archive error; an unrecognized extension fails with an
// unsupported-format error.
func NewSource(path string) (*Source, error) {
	if filepath.Ext(path) == "" {
		return nil, arcerr.Newf(arcerr.InvalidArchive, "no file extension on %q", path)
	}

	t, ok := TypeForName(path)
	if !ok {
		return nil, arcerr.Newf(arcerr.UnsupportedFormat, "unsupported archive type for %q", path)
	}

	return &Source{typ: t, path: path}, nil
}

// NewSourceWithType creates a path-backed source with an explicit type,
// bypassing extension inference. Useful for ambiguous file names.
func NewSourceWithType(path string, t Type) *Source {
	return &Source{typ: t, path: path}
}

// NewMemorySource creates a source from an in-memory buffer with an
// explicit type. The buffer is used as-is; callers must not mutate it
// afterwards.
func NewMemorySource(t Type, data []byte) *Source {
	return &Source{typ: t, data: data, inMemory: true}
}

// NewMemorySourceNamed is NewMemorySource with an origin file name,
// which single-stream extraction uses to name its one output file.
func NewMemorySourceNamed(t Type, name string, data []byte) *Source {
	return &Source{typ: t, name: name, data: data, inMemory: true}
}

// Type returns the source's archive type.
func (s *Source) Type() Type {
	return s.typ
}

// Path returns the file path for path-backed sources. The second return
// is false for memory-backed sources.
func (s *Source) Path() (string, bool) {
	if s.inMemory {
		return "", false
	}
	return s.path, true
}

// Name returns the file name associated with the source: the base of
// the path for path-backed sources, the origin name (possibly empty)
// for memory-backed ones.
func (s *Source) Name() string {
	if s.inMemory {
		return s.name
	}
	return filepath.Base(s.path)
}

// Bytes resolves the source to its raw bytes. Path-backed sources are
// re-read from disk on every call so the result always reflects current
// on-disk state; memory-backed sources return a copy.
func (s *Source) Bytes() ([]byte, error) {
	if s.inMemory {
		return append([]byte(nil), s.data...), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to read archive %q", s.path))
	}
	return data, nil
}

// Open returns a reader over the raw archive bytes. Unlike Bytes it
// streams path-backed sources instead of loading them, which is what
// entry listing uses to avoid holding whole archives in memory.
func (s *Source) Open() (io.ReadCloser, error) {
	if s.inMemory {
		return io.NopCloser(bytes.NewReader(s.data)), nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to open archive %q", s.path))
	}
	return f, nil
}

// Exists reports whether the archive data is available. Memory-backed
// sources always exist; path-backed sources query the filesystem.
func (s *Source) Exists() bool {
	if s.inMemory {
		return true
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// Size returns the size of the archive data in bytes. Path-backed
// sources query the filesystem.
func (s *Source) Size() (int64, error) {
	if s.inMemory {
		return int64(len(s.data)), nil
	}

	fi, err := os.Stat(s.path)
	if err != nil {
		return 0, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to stat archive %q", s.path))
	}
	return fi.Size(), nil
}

// stem returns the source's file name without its final extension, used
// to name the output of single-stream extraction. The second return is
// false when the source has no usable name.
func (s *Source) stem() (string, bool) {
	name := s.Name()
	if name == "" {
		return "", false
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || stem == "." {
		return "", false
	}
	return stem, true
}
