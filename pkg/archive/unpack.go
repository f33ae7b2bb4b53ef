// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the unpack operation and the state
// shared by the per-format extractors.

package archive

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/getoutreach/arcbox/pkg/orio"
	"github.com/getoutreach/arcbox/pkg/tempdir"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Unpack extracts src into a freshly created, exclusively owned
// temporary directory and returns a Session over the result. On any
// extraction failure the directory is removed before the error is
// returned; partial results are never kept.
//
// Extraction is sequential. Callers may run any number of independent
// sessions concurrently, but a single Session must not be shared
// between goroutines without external serialization.
func Unpack(ctx context.Context, src *Source, optFns ...OptionFunc) (*Session, error) {
	opts, err := apply(optFns)
	if err != nil {
		return nil, err
	}
	log := opts.logger()

	dir, err := tempdir.New("arcbox-*")
	if err != nil {
		return nil, arcerr.New(arcerr.IO, err)
	}

	files, err := extractInto(ctx, src, dir.Path(), opts)
	if err != nil {
		if cerr := dir.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to remove temporary directory")
		}
		return nil, err
	}

	s := &Session{
		id:    uuid.New().String(),
		typ:   src.Type(),
		dir:   dir,
		files: files,
		log:   log,
	}
	if p, ok := src.Path(); ok {
		s.originalPath = p
	}

	log.WithFields(logrus.Fields{
		"archive.type":       src.Type(),
		"archive.session_id": s.id,
		"archive.files":      len(files),
	}).Debug("unpacked archive")

	return s, nil
}

// ExtractTo extracts src into destDir, creating the directory if
// needed. Unlike Unpack, destDir is owned by the caller and is not
// removed on failure. The returned paths are sorted.
func ExtractTo(ctx context.Context, src *Source, destDir string, optFns ...OptionFunc) ([]string, error) {
	opts, err := apply(optFns)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create %q", destDir))
	}

	return extractInto(ctx, src, destDir, opts)
}

// extractInto resolves src to bytes and dispatches on its type to the
// matching extractor. The compressed tar variants fully decompress the
// outer layer first so that a single plain-tar path handles all of
// them.
func extractInto(ctx context.Context, src *Source, root string, opts *Options) ([]string, error) {
	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}

	e := &extraction{
		root:      root,
		opts:      opts,
		log:       opts.logger(),
		remaining: opts.MaxExtractBytes,
	}

	var files []string
	switch src.Type() {
	case TypeZip:
		files, err = e.extractZip(ctx, data)
	case TypeTar:
		files, err = e.extractTar(ctx, data)
	case TypeTarGz, TypeTarBz2, TypeTarXz:
		var plain []byte
		if plain, err = decompressAll(src.Type(), data); err == nil {
			files, err = e.extractTar(ctx, plain)
		}
	case TypeGz, TypeBz2, TypeXz:
		files, err = e.extractStream(ctx, src.Type(), data, src)
	default:
		err = arcerr.Newf(arcerr.UnsupportedFormat, "unsupported archive type %q", src.Type())
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return dedupe(files), nil
}

// dedupe removes adjacent duplicates from a sorted slice in place.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for _, s := range sorted {
		if len(out) == 0 || out[len(out)-1] != s {
			out = append(out, s)
		}
	}
	return out
}

// extraction carries the state shared by the per-format extractors
// while they write into one target directory.
type extraction struct {
	root string
	opts *Options
	log  logrus.FieldLogger

	// remaining is the decompressed-byte budget, meaningful only when
	// opts.MaxExtractBytes > 0. It is charged as entries are buffered
	// and carried across the whole extraction.
	remaining int64
}

// join resolves an archive entry name inside the extraction root. An
// entry that escapes the root fails with a corrupted-archive kind.
func (e *extraction) join(name string) (string, error) {
	dest, err := tempdir.JoinUnder(e.root, name)
	if err != nil {
		return "", arcerr.New(arcerr.Corrupted, errors.Wrapf(err, "entry %q escapes the extraction root", name))
	}
	return dest, nil
}

// buffer reads all of r into memory, charging the decompressed-byte
// budget when one is configured.
func (e *extraction) buffer(r io.Reader, name string) ([]byte, error) {
	var buf bytes.Buffer

	var w io.Writer = &buf
	var lw *orio.LimitedWriter
	if e.opts.MaxExtractBytes > 0 {
		lw = &orio.LimitedWriter{W: &buf, N: e.remaining}
		w = lw
	}

	_, err := io.Copy(w, r)
	if lw != nil {
		e.remaining = lw.N
	}
	if errors.Is(err, orio.ErrLimitExceeded) {
		return nil, arcerr.New(arcerr.ResourceLimit,
			errors.Wrapf(err, "entry %q exceeds the %d byte extraction budget", name, e.opts.MaxExtractBytes))
	} else if err != nil {
		return nil, arcerr.New(arcerr.Codec, errors.Wrapf(err, "failed to read entry %q", name))
	}

	return buf.Bytes(), nil
}

// writeFile writes one extracted file, creating parent directories as
// needed and teeing bytes into the progress writer when one is set.
func (e *extraction) writeFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create directory for %q", dest))
	}

	f, err := os.Create(dest)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create %q", dest))
	}

	var w io.Writer = f
	if e.opts.Progress != nil {
		w = io.MultiWriter(f, e.opts.Progress)
	}

	if _, err := w.Write(data); err != nil {
		f.Close() //nolint:errcheck // Why: the write error is the one to report
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write %q", dest))
	}

	if err := f.Close(); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to close %q", dest))
	}
	return nil
}
