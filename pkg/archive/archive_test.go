// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Tests for archive type detection and classification.

package archive_test

import (
	"testing"

	"github.com/getoutreach/arcbox/pkg/archive"
	"gotest.tools/v3/assert"
)

func TestTypeForName(t *testing.T) {
	tests := []struct {
		name string
		typ  archive.Type
		ok   bool
	}{
		{"project.zip", archive.TypeZip, true},
		{"PROJECT.ZIP", archive.TypeZip, true},
		{"backup.tar", archive.TypeTar, true},
		{"release.tar.gz", archive.TypeTarGz, true},
		{"release.TAR.GZ", archive.TypeTarGz, true},
		{"release.tgz", archive.TypeTarGz, true},
		{"logs.tar.bz2", archive.TypeTarBz2, true},
		{"logs.tbz2", archive.TypeTarBz2, true},
		{"logs.tb2", archive.TypeTarBz2, true},
		{"data.tar.xz", archive.TypeTarXz, true},
		{"data.txz", archive.TypeTarXz, true},
		{"notes.gz", archive.TypeGz, true},
		{"notes.gzip", archive.TypeGz, true},
		{"notes.bz2", archive.TypeBz2, true},
		{"notes.bzip2", archive.TypeBz2, true},
		{"notes.xz", archive.TypeXz, true},
		{"v1.2.3.tar.gz", archive.TypeTarGz, true},
		{"/some/dir/release.tar.gz", archive.TypeTarGz, true},
		{"readme.txt", "", false},
		{"README", "", false},
		{"release.tar.gz.bak", "", false},
		{"release.tar.lz4", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := archive.TypeForName(tt.name)
			assert.Equal(t, ok, tt.ok)
			assert.Equal(t, typ, tt.typ)
		})
	}
}

func TestTypeExtensions(t *testing.T) {
	assert.DeepEqual(t, archive.TypeTarBz2.Extensions(), []string{"tar.bz2", "tbz2", "tb2"})
	assert.DeepEqual(t, archive.TypeGz.Extensions(), []string{"gz", "gzip"})
	assert.Equal(t, archive.TypeTarGz.Primary(), "tar.gz")
	assert.Equal(t, archive.TypeZip.Primary(), "zip")
}

func TestIsContainer(t *testing.T) {
	tests := []struct {
		typ       archive.Type
		container bool
	}{
		{archive.TypeZip, true},
		{archive.TypeTar, true},
		{archive.TypeTarGz, true},
		{archive.TypeTarBz2, true},
		{archive.TypeTarXz, true},
		{archive.TypeGz, false},
		{archive.TypeBz2, false},
		{archive.TypeXz, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.typ.IsContainer(), tt.container)
		})
	}
}
