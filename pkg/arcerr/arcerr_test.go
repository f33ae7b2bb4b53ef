// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Tests for the arcerr package.

package arcerr_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/getoutreach/arcbox/pkg/arcerr"
	"github.com/pkg/errors"
	"gotest.tools/v3/assert"
)

func TestNewNil(t *testing.T) {
	assert.Assert(t, arcerr.New(arcerr.IO, nil) == nil)
}

func TestKindOf(t *testing.T) {
	err := arcerr.Newf(arcerr.UnsupportedFormat, "unsupported archive type %q", ".rar")
	assert.Equal(t, arcerr.UnsupportedFormat, arcerr.KindOf(err))
	assert.Equal(t, `unsupported archive type ".rar"`, err.Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := arcerr.New(arcerr.Codec, io.ErrUnexpectedEOF)
	wrapped := errors.Wrap(err, "failed to extract tar.gz")

	assert.Equal(t, arcerr.Codec, arcerr.KindOf(wrapped))
	assert.Assert(t, arcerr.IsKind(wrapped, arcerr.Codec))
	assert.Assert(t, !arcerr.IsKind(wrapped, arcerr.IO))
	assert.Assert(t, errors.Is(wrapped, io.ErrUnexpectedEOF))
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, arcerr.Other, arcerr.KindOf(fmt.Errorf("boom")))
	assert.Equal(t, arcerr.Kind(0), arcerr.KindOf(nil))
}

func TestSentinelError(t *testing.T) {
	const sentinel = arcerr.SentinelError("session is closed")
	wrapped := errors.Wrap(sentinel, "failed to pack")
	assert.Assert(t, errors.Is(wrapped, sentinel))
	assert.Equal(t, "session is closed", sentinel.Error())
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     arcerr.Kind
		expected string
	}{
		{arcerr.UnsupportedFormat, "unsupported_format"},
		{arcerr.InvalidArchive, "invalid_archive"},
		{arcerr.IO, "io"},
		{arcerr.Codec, "codec"},
		{arcerr.EntryNotFound, "entry_not_found"},
		{arcerr.Corrupted, "corrupted"},
		{arcerr.ResourceLimit, "resource_limit"},
		{arcerr.Other, "other"},
		{arcerr.Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}
