// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file implements the archive session, the handle to
// an unpacked archive's temporary directory and its tracked files.

package archive

import (
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/getoutreach/arcbox/pkg/tempdir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Session is the handle to an unpacked archive: an exclusively owned
// temporary directory plus the sorted list of files extracted into it.
// Sessions are created by Unpack and destroyed by Close or Pack.
//
// A Session is not safe for concurrent use. Independent sessions share
// no state and may be used from different goroutines freely.
type Session struct {
	id           string
	typ          Type
	originalPath string
	dir          *tempdir.Dir
	files        []string
	log          logrus.FieldLogger
}

// ID returns the identifier attached to this session for log
// correlation.
func (s *Session) ID() string { return s.id }

// Type returns the archive type the session was unpacked from.
func (s *Session) Type() Type { return s.typ }

// Dir returns the absolute path of the session's temporary directory.
func (s *Session) Dir() string { return s.dir.Path() }

// OriginalPath returns the path the archive was read from, when the
// source was path backed.
func (s *Session) OriginalPath() (string, bool) {
	return s.originalPath, s.originalPath != ""
}

// FilePaths returns the tracked absolute file paths, sorted. The
// returned slice must not be mutated.
func (s *Session) FilePaths() []string { return s.files }

// FileCount returns the number of tracked files.
func (s *Session) FileCount() int { return len(s.files) }

// IsEmpty reports whether the session tracks no files.
func (s *Session) IsEmpty() bool { return len(s.files) == 0 }

// FindFiles returns the tracked paths accepted by pred, in sorted
// order.
func (s *Session) FindFiles(pred func(string) bool) []string {
	var out []string
	for _, f := range s.files {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// FindFilesByExtension returns the tracked paths whose name carries
// the given extension. The comparison is case-insensitive, ext may be
// given with or without the leading dot, and compound suffixes such as
// "tar.gz" work as well.
func (s *Session) FindFilesByExtension(ext string) []string {
	suffix := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	return s.FindFiles(func(path string) bool {
		return strings.HasSuffix(strings.ToLower(filepath.Base(path)), suffix)
	})
}

// RefreshFileList re-scans the temporary directory and replaces the
// tracked list with every file currently present, sorted. Files added
// or removed on disk since the last scan are picked up.
func (s *Session) RefreshFileList() error {
	files, err := scanFiles(s.dir.Path())
	if err != nil {
		return err
	}
	sort.Strings(files)
	s.files = files
	return nil
}

// scanFiles recursively collects the files under dir. Symbolic links
// are resolved, so one pointing at a regular file counts as a file;
// unstatable entries, dangling links included, are skipped.
func scanFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to read directory %q", dir))
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			sub, err := scanFiles(path)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	return files, nil
}

// RelativeFilePaths returns the tracked paths relative to the session
// directory, sorted. A tracked path outside the directory violates the
// session invariant and fails with an invalid-archive kind.
func (s *Session) RelativeFilePaths() ([]string, error) {
	out := make([]string, 0, len(s.files))
	for _, f := range s.files {
		rel, err := s.dir.Rel(f)
		if err != nil {
			return nil, arcerr.New(arcerr.InvalidArchive, err)
		}
		out = append(out, rel)
	}
	return out, nil
}

// ContainsFile reports whether rel names a tracked file. The path is
// interpreted relative to the session directory.
func (s *Session) ContainsFile(rel string) bool {
	target := filepath.Join(s.dir.Path(), rel)
	i := sort.SearchStrings(s.files, target)
	return i < len(s.files) && s.files[i] == target
}

// ReadFile returns the contents of a tracked file. The path is
// interpreted relative to the session directory; a path not in the
// tracked list fails with an entry-not-found kind.
func (s *Session) ReadFile(rel string) ([]byte, error) {
	if !s.ContainsFile(rel) {
		return nil, arcerr.Newf(arcerr.EntryNotFound, "file %q is not part of this session", rel)
	}

	data, err := os.ReadFile(filepath.Join(s.dir.Path(), rel))
	if err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to read %q", rel))
	}
	return data, nil
}

// WriteFile writes data to rel inside the session directory, creating
// parent directories as needed, and inserts the path into the tracked
// list when it is new. The list stays sorted.
func (s *Session) WriteFile(rel string, data []byte) error {
	dest, err := s.dir.Join(rel)
	if err != nil {
		return arcerr.New(arcerr.Other, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create directory for %q", rel))
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write %q", rel))
	}

	if i := sort.SearchStrings(s.files, dest); i == len(s.files) || s.files[i] != dest {
		s.files = append(s.files, "")
		copy(s.files[i+1:], s.files[i:])
		s.files[i] = dest
	}
	return nil
}

// Files iterates over the tracked paths in sorted order.
func (s *Session) Files() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range s.files {
			if !yield(f) {
				return
			}
		}
	}
}

// TakeFilePaths returns the tracked paths and empties the tracked
// list. The files themselves stay on disk until Close.
func (s *Session) TakeFilePaths() []string {
	files := s.files
	s.files = nil
	return files
}

// Close removes the session's temporary directory and everything in
// it. It can be called multiple times safely.
func (s *Session) Close() error {
	if err := s.dir.Close(); err != nil {
		return arcerr.New(arcerr.IO, err)
	}
	return nil
}
