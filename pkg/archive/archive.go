// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the archive type registry.

// Package archive extracts and repacks file archives so that downstream
// processing can operate on plain files in a scratch directory instead of
// packed binary containers. The archive types supported are:
//   - zip
//   - tar
//   - tar.gz
//   - tar.bz2
//   - tar.xz
//   - gz, bz2, xz (single-file compressed streams)
//
// The lifecycle is: build a Source (from a path, memory, or a consumed
// byte stream), Unpack it into a Session owning a temporary directory,
// inspect or mutate the extracted files through the Session, then Pack
// the Session back into an archive at a destination of any supported
// container format.
//
// The type set is closed. Every dispatch point is a switch over the Type
// constants below rather than a registry of pluggable handlers, which
// keeps behavior auditable and avoids runtime registration races.
package archive

import (
	"path/filepath"
	"strings"
)

// Type identifies a supported archive format. Its string value is the
// format's canonical extension.
type Type string

const (
	// TypeZip is a ZIP container.
	TypeZip Type = "zip"

	// TypeTar is an uncompressed TAR container.
	TypeTar Type = "tar"

	// TypeTarGz is a gzip-compressed TAR container.
	TypeTarGz Type = "tar.gz"

	// TypeTarBz2 is a bzip2-compressed TAR container.
	TypeTarBz2 Type = "tar.bz2"

	// TypeTarXz is an xz-compressed TAR container.
	TypeTarXz Type = "tar.xz"

	// TypeGz is a single gzip-compressed file.
	TypeGz Type = "gz"

	// TypeBz2 is a single bzip2-compressed file.
	TypeBz2 Type = "bz2"

	// TypeXz is a single xz-compressed file.
	TypeXz Type = "xz"
)

// typeForExtension maps a normalized (lowercase, no leading dot)
// extension to its archive type.
func typeForExtension(ext string) (Type, bool) {
	switch ext {
	case "zip":
		return TypeZip, true
	case "tar":
		return TypeTar, true
	case "tar.gz", "tgz":
		return TypeTarGz, true
	case "tar.bz2", "tbz2", "tb2":
		return TypeTarBz2, true
	case "tar.xz", "txz":
		return TypeTarXz, true
	case "gz", "gzip":
		return TypeGz, true
	case "bz2", "bzip2":
		return TypeBz2, true
	case "xz":
		return TypeXz, true
	}

	return "", false
}

// TypeForName returns the archive type for a file name, matching
// case-insensitively. Compound extensions are tried first whenever the
// name contains a ".tar." segment, so "release.tar.gz" resolves to
// TypeTarGz rather than TypeGz; otherwise the trailing extension decides.
// The second return is false when the extension is not recognized, which
// is a lookup miss rather than an error.
func TypeForName(name string) (Type, bool) {
	base := strings.ToLower(filepath.Base(name))

	if pos := strings.Index(base, ".tar."); pos >= 0 {
		if t, ok := typeForExtension(base[pos+1:]); ok {
			return t, true
		}
	}

	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	if ext == "" {
		return "", false
	}
	return typeForExtension(ext)
}

// Extensions returns the recognized extensions for the type, canonical
// extension first. It returns nil for values outside the supported set.
func (t Type) Extensions() []string {
	switch t {
	case TypeZip:
		return []string{"zip"}
	case TypeTar:
		return []string{"tar"}
	case TypeTarGz:
		return []string{"tar.gz", "tgz"}
	case TypeTarBz2:
		return []string{"tar.bz2", "tbz2", "tb2"}
	case TypeTarXz:
		return []string{"tar.xz", "txz"}
	case TypeGz:
		return []string{"gz", "gzip"}
	case TypeBz2:
		return []string{"bz2", "bzip2"}
	case TypeXz:
		return []string{"xz"}
	}

	return nil
}

// Primary returns the canonical extension for the type, which is also
// the type's string value.
func (t Type) Primary() string {
	return string(t)
}

// IsContainer reports whether the type can hold multiple named entries.
// Zip and the tar variants are containers; gz, bz2 and xz compress
// exactly one logical file.
func (t Type) IsContainer() bool {
	switch t {
	case TypeZip, TypeTar, TypeTarGz, TypeTarBz2, TypeTarXz:
		return true
	}
	return false
}

// isTarVariant reports whether the type is tar or a compressed tar.
func (t Type) isTarVariant() bool {
	switch t {
	case TypeTar, TypeTarGz, TypeTarBz2, TypeTarXz:
		return true
	}
	return false
}
