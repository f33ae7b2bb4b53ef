// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file implements extraction and entry listing for
// zip archives.

package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"time"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/pkg/errors"
)

// ZipEntry describes one entry of a zip archive without extracting it.
type ZipEntry struct {
	Name           string
	Size           uint64
	CompressedSize uint64
	Method         uint16
	Mode           os.FileMode
	ModTime        time.Time
	CRC32          uint32
	Extra          []byte
	Comment        string
	IsDir          bool
}

// extractZip walks the entries of a zip archive and materializes them
// under the extraction root, returning the files it wrote. File modes
// recorded in the archive are applied when present.
func (e *extraction) extractZip(ctx context.Context, data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, arcerr.New(arcerr.InvalidArchive, errors.Wrap(err, "failed to open zip archive"))
	}

	var files []string
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dest, err := e.join(f.Name)
		if err != nil {
			return nil, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create directory %q", dest))
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, arcerr.New(arcerr.InvalidArchive, errors.Wrapf(err, "failed to open zip entry %q", f.Name))
		}

		contents, err := e.buffer(rc, f.Name)
		rc.Close() //nolint:errcheck // Why: contents are already buffered
		if err != nil {
			return nil, err
		}

		if err := e.writeFile(dest, contents); err != nil {
			return nil, err
		}

		if mode := f.Mode() & os.ModePerm; mode != 0 {
			if err := os.Chmod(dest, mode); err != nil {
				return nil, arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to set mode on %q", dest))
			}
		}

		files = append(files, dest)
	}

	return files, nil
}

// ListZipEntries reads the entry metadata of a zip archive without
// extracting it.
func ListZipEntries(ctx context.Context, src *Source) ([]ZipEntry, error) {
	if src.Type() != TypeZip {
		return nil, arcerr.Newf(arcerr.UnsupportedFormat, "cannot list zip entries of %q archive", src.Type())
	}

	data, err := src.Bytes()
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, arcerr.New(arcerr.InvalidArchive, errors.Wrap(err, "failed to open zip archive"))
	}

	entries := make([]ZipEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries = append(entries, ZipEntry{
			Name:           f.Name,
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Method:         f.Method,
			Mode:           f.Mode(),
			ModTime:        f.Modified,
			CRC32:          f.CRC32,
			Extra:          f.Extra,
			Comment:        f.Comment,
			IsDir:          f.FileInfo().IsDir(),
		})
	}

	return entries, nil
}
