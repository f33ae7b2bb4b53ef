// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Tests for the subcommand helpers.

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/getoutreach/arcbox/pkg/archive"
)

func Test_stripArchiveExt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		typ  archive.Type
		want string
	}{
		{"compound extension", "release.tar.gz", archive.TypeTarGz, "release"},
		{"alias extension", "release.tgz", archive.TypeTarGz, "release"},
		{"case preserved", "Release.TAR.GZ", archive.TypeTarGz, "Release"},
		{"plain zip", "bundle.zip", archive.TypeZip, "bundle"},
		{"unrecognized extension falls back", "bundle.bak", archive.TypeZip, "bundle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripArchiveExt(tt.in, tt.typ); got != tt.want {
				t.Errorf("stripArchiveExt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_collectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"b.txt", filepath.Join("sub", "a.txt")} {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := collectFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "a.txt"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("collectFiles() = %v, want %v", got, want)
	}
}
