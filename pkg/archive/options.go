// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains options for the archive package.

package archive

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options are the options for Unpack, ExtractTo and Session.Pack.
type Options struct {
	// Log receives structured progress and diagnostic logs. When nil,
	// logging is discarded.
	Log logrus.FieldLogger

	// MaxExtractBytes caps the total number of decompressed bytes an
	// extraction may produce across all entries. Zero means no limit.
	// Exceeding the cap fails the operation with a resource-limit
	// error kind.
	MaxExtractBytes int64

	// Progress, when non-nil, additionally receives every byte written
	// during extraction or read during packing. Wire a progress bar
	// here to render activity.
	Progress io.Writer

	// CompressionLevel overrides the compression level used when
	// packing, for the codecs that support one (gzip, bzip2 and zip's
	// deflate). Zero keeps each codec's default; xz has no level knob
	// and ignores this.
	CompressionLevel int
}

// OptionFunc is an option function that mutates an Options struct.
type OptionFunc func(*Options) error

// apply builds an Options from the given option functions.
func apply(optFns []OptionFunc) (*Options, error) {
	opts := &Options{}
	for _, fn := range optFns {
		if err := fn(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// logger returns the configured logger, or a discard logger when none
// was set.
func (o *Options) logger() logrus.FieldLogger {
	if o.Log != nil {
		return o.Log
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// WithLogger is an OptionFunc that sets the logger operations report
// progress to.
func WithLogger(log logrus.FieldLogger) OptionFunc {
	return func(opts *Options) error {
		opts.Log = log
		return nil
	}
}

// WithMaxExtractBytes is an OptionFunc that caps the total decompressed
// bytes an extraction may produce. See Options.MaxExtractBytes.
func WithMaxExtractBytes(n int64) OptionFunc {
	return func(opts *Options) error {
		opts.MaxExtractBytes = n
		return nil
	}
}

// WithProgressWriter is an OptionFunc that tees extracted or packed
// bytes into w. See Options.Progress.
func WithProgressWriter(w io.Writer) OptionFunc {
	return func(opts *Options) error {
		opts.Progress = w
		return nil
	}
}

// WithCompressionLevel is an OptionFunc that sets the compression level
// used when packing. See Options.CompressionLevel.
func WithCompressionLevel(level int) OptionFunc {
	return func(opts *Options) error {
		opts.CompressionLevel = level
		return nil
	}
}
