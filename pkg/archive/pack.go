// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file implements packing a session back into an
// archive file.

package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// entryWriter is the slice of the builder surface Pack needs.
type entryWriter interface {
	AddFileFromDisk(name, path string) error
	Close() error
}

// Pack writes the session's current directory tree into a new archive
// at dest and returns a Source for it. The target type is derived from
// dest's extension, falling back to the session's own type when the
// extension does not resolve. Only container types can be packed;
// single-stream targets fail with an unsupported-format kind.
//
// Pack consumes the session: its temporary directory is removed
// whether or not packing succeeds. A failed pack may leave a partial
// file at dest.
func (s *Session) Pack(ctx context.Context, dest string, optFns ...OptionFunc) (*Source, error) {
	defer func() {
		if err := s.Close(); err != nil {
			s.log.WithError(err).Warn("failed to remove session directory")
		}
	}()

	opts, err := apply(optFns)
	if err != nil {
		return nil, err
	}

	t, ok := TypeForName(dest)
	if !ok {
		t = s.typ
	}
	if !t.IsContainer() {
		return nil, arcerr.Newf(arcerr.UnsupportedFormat, "cannot pack files into a %q archive", t)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create directory for %q", dest))
	}

	// The directory tree is re-scanned so files written after the last
	// refresh are packed too.
	files, err := scanFiles(s.dir.Path())
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	f, err := os.Create(dest)
	if err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create %q", dest))
	}
	defer f.Close() //nolint:errcheck // Why: closed explicitly on the success path

	var w io.Writer = f
	if opts.Progress != nil {
		w = io.MultiWriter(f, opts.Progress)
	}

	var b entryWriter
	if t == TypeZip {
		b, err = NewZipBuilder(w, optFns...)
	} else {
		b, err = NewTarBuilder(w, t, optFns...)
	}
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := s.dir.Rel(path)
		if err != nil {
			return nil, arcerr.New(arcerr.InvalidArchive, err)
		}

		if err := b.AddFileFromDisk(filepath.ToSlash(rel), path); err != nil {
			return nil, err
		}
	}

	if err := b.Close(); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to close %q", dest))
	}

	s.log.WithFields(logrus.Fields{
		"archive.type":       t,
		"archive.session_id": s.id,
		"archive.dest":       dest,
		"archive.files":      len(files),
	}).Debug("packed archive")

	return NewSourceWithType(dest, t), nil
}
