// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: Implements an exclusively owned temporary directory handle.

// Package tempdir manages a temporary directory as an exclusively owned
// resource: created eagerly, never shared, and removed exactly once on
// Close. All paths handed out by a Dir are guaranteed to stay inside it,
// which is what makes it safe to extract untrusted archive entries into
// one. The same containment checks are available for arbitrary roots via
// JoinUnder and RelUnder.
package tempdir

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// JoinUnder resolves rel inside root, rejecting anything that would
// escape it (absolute paths, ".." traversal).
func JoinUnder(root, rel string) (string, error) {
	joined := filepath.Join(root, rel)
	if _, err := RelUnder(root, joined); err != nil {
		return "", err
	}
	return joined, nil
}

// RelUnder returns target relative to root. It fails if target is not a
// descendant of root.
func RelUnder(root, target string) (string, error) {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", errors.Wrapf(err, "failed to relativize %q", target)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", errors.Errorf("path %q is outside of %q", target, root)
	}
	return rel, nil
}

// Dir is an exclusively owned temporary directory. The zero value is not
// usable; create one with New.
type Dir struct {
	path   string
	closed bool
}

// New creates a fresh temporary directory under the default location for
// temporary files. The pattern works as in os.MkdirTemp.
func New(pattern string) (*Dir, error) {
	path, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temporary directory")
	}
	return &Dir{path: path}, nil
}

// Path returns the directory's absolute path.
func (d *Dir) Path() string {
	return d.path
}

// Join resolves rel inside the directory, rejecting anything that would
// escape it. This is the only way paths under the directory should be
// constructed.
func (d *Dir) Join(rel string) (string, error) {
	return JoinUnder(d.path, rel)
}

// Rel returns target relative to the directory root. It fails if target
// is not a descendant of the root.
func (d *Dir) Rel(target string) (string, error) {
	return RelUnder(d.path, target)
}

// Close removes the directory and everything under it. It can be called
// multiple times safely. It is not go-routine safe.
func (d *Dir) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return errors.Wrap(os.RemoveAll(d.path), "failed to remove temporary directory")
}
