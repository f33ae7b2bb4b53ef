// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file implements the low-level archive writers used
// by Pack and usable on their own.

package archive

import (
	"archive/tar"
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

// TarBuilder writes a tar archive, optionally behind one of the
// supported compression layers. Entries are written in call order.
type TarBuilder struct {
	tw *tar.Writer

	// out is the compression layer, nil for plain tar.
	out io.WriteCloser
}

// NewTarBuilder returns a TarBuilder writing to w as the given tar
// variant. WithCompressionLevel is honored for the compressed
// variants.
func NewTarBuilder(w io.Writer, t Type, optFns ...OptionFunc) (*TarBuilder, error) {
	opts, err := apply(optFns)
	if err != nil {
		return nil, err
	}

	if !t.isTarVariant() {
		return nil, arcerr.Newf(arcerr.UnsupportedFormat, "cannot build a tar archive as %q", t)
	}

	b := &TarBuilder{}
	if stream, ok := tarCompression(t); ok {
		cw, err := newCompressor(stream, w, opts.CompressionLevel)
		if err != nil {
			return nil, err
		}
		b.out = cw
		w = cw
	}
	b.tw = tar.NewWriter(w)

	return b, nil
}

// tarCompression maps a compressed tar variant onto its single-stream
// codec type.
func tarCompression(t Type) (Type, bool) {
	switch t {
	case TypeTarGz:
		return TypeGz, true
	case TypeTarBz2:
		return TypeBz2, true
	case TypeTarXz:
		return TypeXz, true
	}
	return "", false
}

// AddFile writes a regular file entry with the given mode bits.
func (b *TarBuilder) AddFile(name string, mode os.FileMode, data []byte) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     filepath.ToSlash(name),
		Mode:     int64(mode.Perm()),
		Size:     int64(len(data)),
		ModTime:  time.Now(),
	}
	if err := b.tw.WriteHeader(hdr); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write tar header for %q", name))
	}
	if _, err := b.tw.Write(data); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write tar entry %q", name))
	}
	return nil
}

// AddDir writes a directory entry.
func (b *TarBuilder) AddDir(name string) error {
	hdr := &tar.Header{
		Typeflag: tar.TypeDir,
		Name:     strings.TrimSuffix(filepath.ToSlash(name), "/") + "/",
		Mode:     0o755,
		ModTime:  time.Now(),
	}
	if err := b.tw.WriteHeader(hdr); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write tar header for %q", name))
	}
	return nil
}

// AddFileFromDisk writes the file at path as a regular entry named
// name, carrying the on-disk mode bits.
func (b *TarBuilder) AddFileFromDisk(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to stat %q", path))
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to build tar header for %q", path))
	}
	hdr.Name = filepath.ToSlash(name)

	f, err := os.Open(path)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to open %q", path))
	}
	defer f.Close() //nolint:errcheck // Why: read-only file

	if err := b.tw.WriteHeader(hdr); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write tar header for %q", name))
	}
	if _, err := io.Copy(b.tw, f); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write tar entry %q", name))
	}
	return nil
}

// Close finalizes the tar stream and then the compression layer, in
// that order. The builder is unusable afterwards.
func (b *TarBuilder) Close() error {
	if err := b.tw.Close(); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrap(err, "failed to finalize tar stream"))
	}
	if b.out != nil {
		if err := b.out.Close(); err != nil {
			return arcerr.New(arcerr.Codec, errors.Wrap(err, "failed to finalize compression stream"))
		}
	}
	return nil
}

// ZipBuilder writes a zip archive. Entries are written in call order
// and deflate-compressed.
type ZipBuilder struct {
	zw *zip.Writer
}

// NewZipBuilder returns a ZipBuilder writing to w. When a compression
// level is set the deflate encoder runs at that level instead of its
// default.
func NewZipBuilder(w io.Writer, optFns ...OptionFunc) (*ZipBuilder, error) {
	opts, err := apply(optFns)
	if err != nil {
		return nil, err
	}

	zw := zip.NewWriter(w)
	if opts.CompressionLevel != 0 {
		level := opts.CompressionLevel
		zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(out, level)
		})
	}

	return &ZipBuilder{zw: zw}, nil
}

// AddFile writes a regular file entry with default mode bits.
func (b *ZipBuilder) AddFile(name string, data []byte) error {
	hdr := &zip.FileHeader{
		Name:     filepath.ToSlash(name),
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	hdr.SetMode(0o644)

	fw, err := b.zw.CreateHeader(hdr)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create zip entry %q", name))
	}
	if _, err := fw.Write(data); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write zip entry %q", name))
	}
	return nil
}

// AddDir writes a directory entry.
func (b *ZipBuilder) AddDir(name string) error {
	hdr := &zip.FileHeader{
		Name:     strings.TrimSuffix(filepath.ToSlash(name), "/") + "/",
		Modified: time.Now(),
	}
	hdr.SetMode(os.ModeDir | 0o755)

	if _, err := b.zw.CreateHeader(hdr); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create zip entry %q", name))
	}
	return nil
}

// AddFileFromDisk writes the file at path as a regular entry named
// name, carrying the on-disk mode bits.
func (b *ZipBuilder) AddFileFromDisk(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to stat %q", path))
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to build zip header for %q", path))
	}
	hdr.Name = filepath.ToSlash(name)
	hdr.Method = zip.Deflate

	f, err := os.Open(path)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to open %q", path))
	}
	defer f.Close() //nolint:errcheck // Why: read-only file

	fw, err := b.zw.CreateHeader(hdr)
	if err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to create zip entry %q", name))
	}
	if _, err := io.Copy(fw, f); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrapf(err, "failed to write zip entry %q", name))
	}
	return nil
}

// SetComment sets the archive-level comment.
func (b *ZipBuilder) SetComment(comment string) error {
	if err := b.zw.SetComment(comment); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrap(err, "failed to set zip comment"))
	}
	return nil
}

// Close finalizes the zip central directory. The builder is unusable
// afterwards.
func (b *ZipBuilder) Close() error {
	if err := b.zw.Close(); err != nil {
		return arcerr.New(arcerr.IO, errors.Wrap(err, "failed to finalize zip archive"))
	}
	return nil
}
