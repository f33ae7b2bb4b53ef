// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file implements extraction and entry listing for
// tar archives and their compressed variants.

package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// EntryKind classifies an archive entry.
type EntryKind string

// The entry kinds reported by ListTarEntries.
const (
	EntryRegular  EntryKind = "regular"
	EntryDir      EntryKind = "directory"
	EntrySymlink  EntryKind = "symlink"
	EntryHardlink EntryKind = "hardlink"
	EntryOther    EntryKind = "other"
)

// TarEntry describes one entry of a tar archive without extracting it.
type TarEntry struct {
	Path     string
	LinkName string
	Size     int64
	Kind     EntryKind
	Mode     os.FileMode
	UID      int
	GID      int
	ModTime  time.Time
}

// extractTar walks the entries of a plain (already decompressed) tar
// stream and materializes them under the extraction root, returning
// the files it wrote.
//
// Symbolic links are created but never tracked. Hard links are copied
// from their target when it has already been extracted and skipped
// otherwise. Entry kinds other than regular files, directories and
// links are skipped.
func (e *extraction) extractTar(ctx context.Context, data []byte) ([]string, error) {
	tr := tar.NewReader(bytes.NewReader(data))

	var files []string
	for ctx.Err() == nil {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, arcerr.New(arcerr.InvalidArchive, errors.Wrap(err, "failed to read tar entry"))
		}

		dest, err := e.join(header.Name)
		if err != nil {
			return nil, err
		}

		switch header.Typeflag {
		case tar.TypeReg:
			contents, err := e.buffer(tr, header.Name)
			if err != nil {
				return nil, err
			}
			if err := e.writeFile(dest, contents); err != nil {
				return nil, err
			}
			files = append(files, dest)
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create directory %q", dest))
			}
		case tar.TypeSymlink:
			if err := e.symlink(header.Linkname, dest); err != nil {
				return nil, err
			}
		case tar.TypeLink:
			copied, err := e.copyHardlink(header.Linkname, dest)
			if err != nil {
				return nil, err
			}
			if copied {
				files = append(files, dest)
			}
		default:
			e.log.WithField("archive.entry", header.Name).Debug("skipping unsupported tar entry")
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// symlink creates a symbolic link at dest. The link target is taken as
// recorded in the archive and is not resolved or validated.
func (e *extraction) symlink(target, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create directory for %q", dest))
	}

	if err := os.Symlink(target, dest); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create symlink %q", dest))
	}
	return nil
}

// copyHardlink materializes a tar hard link by copying the bytes of
// its target, which must resolve inside the extraction root. Links
// whose target has not been extracted are skipped, reported by the
// false return.
func (e *extraction) copyHardlink(target, dest string) (bool, error) {
	src, err := e.join(target)
	if err != nil {
		return false, err
	}

	contents, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		e.log.WithFields(logrus.Fields{
			"archive.entry":       dest,
			"archive.link_target": target,
		}).Debug("skipping hard link to missing target")
		return false, nil
	} else if err != nil {
		return false, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to read hard link target %q", target))
	}

	if err := e.writeFile(dest, contents); err != nil {
		return false, err
	}
	return true, nil
}

// ListTarEntries reads the entry metadata of a tar archive, or any of
// its compressed variants, without extracting it. The archive is
// streamed, not loaded into memory.
func ListTarEntries(ctx context.Context, src *Source) ([]TarEntry, error) {
	if !src.Type().isTarVariant() {
		return nil, arcerr.Newf(arcerr.UnsupportedFormat, "cannot list tar entries of %q archive", src.Type())
	}

	var r io.ReadCloser
	var err error
	if src.Type() == TypeTar {
		r, err = src.Open()
	} else {
		r, err = openDecompressed(src)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close() //nolint:errcheck // Why: read-only stream

	tr := tar.NewReader(r)

	var entries []TarEntry
	for ctx.Err() == nil {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, arcerr.New(arcerr.InvalidArchive, errors.Wrap(err, "failed to read tar entry"))
		}

		entries = append(entries, TarEntry{
			Path:     header.Name,
			LinkName: header.Linkname,
			Size:     header.Size,
			Kind:     entryKind(header.Typeflag),
			Mode:     header.FileInfo().Mode(),
			UID:      header.Uid,
			GID:      header.Gid,
			ModTime:  header.ModTime,
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// entryKind maps a tar type flag onto the exported entry kinds.
func entryKind(typeflag byte) EntryKind {
	switch typeflag {
	case tar.TypeReg:
		return EntryRegular
	case tar.TypeDir:
		return EntryDir
	case tar.TypeSymlink:
		return EntrySymlink
	case tar.TypeLink:
		return EntryHardlink
	}
	return EntryOther
}
