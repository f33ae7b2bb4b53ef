// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the compression codec layer: readers
// for decompression, writers for compression, and single-stream
// extraction.

package archive

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"io"

	dbzip2 "github.com/dsnet/compress/bzip2"
	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/getoutreach/arcbox/pkg/orio"
	kgzip "github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// newDecompressor returns a reader for the compression layer of t over
// r. Closing the returned reader does not close r.
func newDecompressor(t Type, r io.Reader) (io.ReadCloser, error) {
	switch t {
	case TypeGz, TypeTarGz:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, arcerr.New(arcerr.Codec, errors.Wrap(err, "failed to open gzip stream"))
		}
		return gzr, nil
	case TypeBz2, TypeTarBz2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case TypeXz, TypeTarXz:
		xzr, err := xz.NewReader(bufio.NewReader(r))
		if err != nil {
			return nil, arcerr.New(arcerr.Codec, errors.Wrap(err, "failed to open xz stream"))
		}
		return io.NopCloser(xzr), nil
	}

	return nil, arcerr.Newf(arcerr.UnsupportedFormat, "no decompressor for archive type %q", t)
}

// newCompressor returns a writer applying the compression layer of t
// over w. Closing the returned writer flushes the codec but does not
// close w. A level of zero keeps the codec default; xz ignores level.
func newCompressor(t Type, w io.Writer, level int) (io.WriteCloser, error) {
	switch t {
	case TypeGz, TypeTarGz:
		if level == 0 {
			return kgzip.NewWriter(w), nil
		}
		gzw, err := kgzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, arcerr.New(arcerr.Codec, errors.Wrapf(err, "invalid gzip level %d", level))
		}
		return gzw, nil
	case TypeBz2, TypeTarBz2:
		cfg := &dbzip2.WriterConfig{Level: dbzip2.DefaultCompression}
		if level != 0 {
			cfg.Level = level
		}
		bzw, err := dbzip2.NewWriter(w, cfg)
		if err != nil {
			return nil, arcerr.New(arcerr.Codec, errors.Wrapf(err, "invalid bzip2 level %d", level))
		}
		return bzw, nil
	case TypeXz, TypeTarXz:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return nil, arcerr.New(arcerr.Codec, errors.Wrap(err, "failed to create xz writer"))
		}
		return xzw, nil
	}

	return nil, arcerr.Newf(arcerr.UnsupportedFormat, "no compressor for archive type %q", t)
}

// openDecompressed opens src as a stream with its compression layer
// applied. The returned closer tears the layers down outermost first,
// so the decompressor is closed before the file it reads from.
func openDecompressed(src *Source) (io.ReadCloser, error) {
	raw, err := src.Open()
	if err != nil {
		return nil, err
	}

	dec, err := newDecompressor(src.Type(), raw)
	if err != nil {
		raw.Close() //nolint:errcheck // Why: the decompressor error is the one to report
		return nil, err
	}

	return orio.NewSequencedReadCloser(dec, raw), nil
}

// decompressAll decompresses the entire compression layer of t from
// data into memory. Used by the compressed tar variants so that a
// single plain-tar extraction path can run over the result.
func decompressAll(t Type, data []byte) ([]byte, error) {
	dec, err := newDecompressor(t, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close() //nolint:errcheck // Why: in-memory reader, nothing to flush

	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, arcerr.New(arcerr.Codec, errors.Wrapf(err, "failed to decompress %q layer", t))
	}
	return out, nil
}

// extractStream extracts a single-stream compressed source (gz, bz2 or
// xz) into the extraction root. Exactly one file is produced, named
// after the source's file stem or "extracted" when the source has no
// usable name.
func (e *extraction) extractStream(ctx context.Context, t Type, data []byte, src *Source) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dec, err := newDecompressor(t, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close() //nolint:errcheck // Why: in-memory reader, nothing to flush

	content, err := e.buffer(dec, src.Name())
	if err != nil {
		return nil, err
	}

	name := "extracted"
	if stem, ok := src.stem(); ok {
		name = stem
	}

	dest, err := e.join(name)
	if err != nil {
		return nil, err
	}
	if err := e.writeFile(dest, content); err != nil {
		return nil, err
	}

	return []string{dest}, nil
}
