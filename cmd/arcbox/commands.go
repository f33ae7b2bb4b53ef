// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file implements the arcbox subcommands.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/getoutreach/arcbox/pkg/archive"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

// startSpinner begins a spinner when the run is interactive. The
// returned value may be nil; stop it with stopSpinner.
func (a *cliApp) startSpinner(c *cli.Context, suffix string) *spinner.Spinner {
	if !a.interactive(c) {
		return nil
	}

	spin := spinner.New(spinner.CharSets[9], 100*time.Millisecond,
		spinner.WithSuffix(suffix))
	spin.Start()
	return spin
}

func stopSpinner(spin *spinner.Spinner) {
	if spin != nil {
		spin.Stop()
	}
}

func (a *cliApp) inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "list the entries of an archive without extracting it",
		ArgsUsage: "<archive>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit entries as JSON",
			},
		},
		Action: a.inspect,
	}
}

func (a *cliApp) inspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("inspect takes exactly one archive", 1)
	}

	path, err := expandPath(c.Args().First())
	if err != nil {
		return err
	}

	src, err := archive.NewSource(path)
	if err != nil {
		return err
	}
	if !src.Type().IsContainer() {
		return errors.Errorf("%q archives hold a single compressed stream, nothing to list", src.Type())
	}

	spin := a.startSpinner(c, " Reading archive...")

	var entries any
	if src.Type() == archive.TypeZip {
		entries, err = archive.ListZipEntries(c.Context, src)
	} else {
		entries, err = archive.ListTarEntries(c.Context, src)
	}
	stopSpinner(spin)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		out, err := jsoniter.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode entries")
		}
		fmt.Fprintln(c.App.Writer, string(out))
		return nil
	}

	switch list := entries.(type) {
	case []archive.ZipEntry:
		for _, e := range list {
			kind := archive.EntryRegular
			if e.IsDir {
				kind = archive.EntryDir
			}
			fmt.Fprintf(c.App.Writer, "%-9s  %10d  %s  %s  %s\n",
				kind, e.Size, e.Mode, e.ModTime.Format(time.RFC3339), e.Name)
		}
	case []archive.TarEntry:
		for _, e := range list {
			fmt.Fprintf(c.App.Writer, "%-9s  %10d  %s  %s  %s\n",
				e.Kind, e.Size, e.Mode, e.ModTime.Format(time.RFC3339), e.Path)
		}
	}

	return nil
}

func (a *cliApp) unpackCommand() *cli.Command {
	return &cli.Command{
		Name:      "unpack",
		Usage:     "extract an archive into a directory",
		ArgsUsage: "<archive>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"C"},
				Usage:   "directory to extract into (default: the archive's stem)",
			},
		},
		Action: a.unpack,
	}
}

func (a *cliApp) unpack(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("unpack takes exactly one archive", 1)
	}

	path, err := expandPath(c.Args().First())
	if err != nil {
		return err
	}

	src, err := archive.NewSource(path)
	if err != nil {
		return err
	}

	dir := c.String("directory")
	if dir == "" {
		dir = stripArchiveExt(filepath.Base(path), src.Type())
		if a.conf.OutputDir != "" {
			dir = filepath.Join(a.conf.OutputDir, dir)
		}
	} else if dir, err = expandPath(dir); err != nil {
		return err
	}

	opts := []archive.OptionFunc{
		archive.WithLogger(a.log),
		archive.WithMaxExtractBytes(a.maxExtractBytes(c)),
	}

	if a.interactive(c) {
		pb := progressbar.DefaultBytes(-1, "Extracting ")
		defer pb.Close() //nolint:errcheck // Why: terminal cleanup
		opts = append(opts, archive.WithProgressWriter(pb))
	}

	files, err := archive.ExtractTo(c.Context, src, dir, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "unpacked %d files into %s\n", len(files), dir)
	return nil
}

func (a *cliApp) packCommand() *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "build an archive from a directory",
		ArgsUsage: "<dir> <dest>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite the destination without asking",
			},
		},
		Action: a.pack,
	}
}

func (a *cliApp) pack(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("pack takes a source directory and a destination archive", 1)
	}

	dir, err := expandPath(c.Args().Get(0))
	if err != nil {
		return err
	}
	dest, err := expandPath(c.Args().Get(1))
	if err != nil {
		return err
	}

	t, ok := archive.TypeForName(dest)
	if !ok || !t.IsContainer() {
		return errors.Errorf("cannot determine a container format for %q", dest)
	}

	if _, err := os.Stat(dest); err == nil && !c.Bool("force") {
		if !a.confirmOverwrite(c, dest) {
			return cli.Exit("aborted", 1)
		}
	}

	files, err := collectFiles(dir)
	if err != nil {
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", dest)
	}
	defer f.Close() //nolint:errcheck // Why: closed explicitly on the success path

	level := a.conf.CompressionLevel
	var b interface {
		AddFileFromDisk(name, path string) error
		Close() error
	}
	if t == archive.TypeZip {
		b, err = archive.NewZipBuilder(f, archive.WithCompressionLevel(level))
	} else {
		b, err = archive.NewTarBuilder(f, t, archive.WithCompressionLevel(level))
	}
	if err != nil {
		return err
	}

	var pb *progressbar.ProgressBar
	if a.interactive(c) {
		pb = progressbar.Default(int64(len(files)), "Packing ")
		defer pb.Close() //nolint:errcheck // Why: terminal cleanup
	}

	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return errors.Wrapf(err, "failed to relativize %q", file)
		}
		if err := b.AddFileFromDisk(filepath.ToSlash(rel), file); err != nil {
			return err
		}
		if pb != nil {
			_ = pb.Add(1)
		}
	}

	if err := b.Close(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %q", dest)
	}

	fmt.Fprintf(c.App.Writer, "packed %d files into %s\n", len(files), dest)
	return nil
}

// confirmOverwrite prompts before clobbering dest. Non-interactive runs
// refuse instead of overwriting silently.
func (a *cliApp) confirmOverwrite(c *cli.Context, dest string) bool {
	if !a.interactive(c) {
		a.log.WithField("dest", dest).Warn("destination exists; use --force to overwrite")
		return false
	}

	ok := false
	if err := survey.AskOne(&survey.Confirm{
		Message: fmt.Sprintf("%s already exists, overwrite?", dest),
	}, &ok); err != nil {
		return false
	}
	return ok
}

func (a *cliApp) repackCommand() *cli.Command {
	return &cli.Command{
		Name:      "repack",
		Usage:     "convert archives to another container format",
		ArgsUsage: "<archive>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "target container extension (tar, tar.gz, tbz2, zip, ...)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory for converted archives (default: next to each input)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "how many archives to convert at once",
				Value: 4,
			},
		},
		Action: a.repack,
	}
}

func (a *cliApp) repack(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("repack takes at least one archive", 1)
	}

	ext := strings.TrimPrefix(c.String("type"), ".")
	target, ok := archive.TypeForName("out." + ext)
	if !ok || !target.IsContainer() {
		return errors.Errorf("%q is not a packable archive type", c.String("type"))
	}

	outDir := c.String("output")
	if outDir == "" {
		outDir = a.conf.OutputDir
	}
	if outDir != "" {
		var err error
		if outDir, err = expandPath(outDir); err != nil {
			return err
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %q", outDir)
		}
	}

	limit := a.maxExtractBytes(c)

	// One goroutine per archive, each with its own session. Sessions
	// are never shared between goroutines.
	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(c.Int("concurrency"))

	for _, arg := range c.Args().Slice() {
		g.Go(func() error {
			return a.repackOne(ctx, arg, target, outDir, limit)
		})
	}

	return g.Wait()
}

// repackOne converts a single archive to the target container type.
func (a *cliApp) repackOne(ctx context.Context, path string, target archive.Type, outDir string, limit int64) error {
	path, err := expandPath(path)
	if err != nil {
		return err
	}

	src, err := archive.NewSource(path)
	if err != nil {
		return err
	}

	s, err := archive.Unpack(ctx, src,
		archive.WithLogger(a.log),
		archive.WithMaxExtractBytes(limit))
	if err != nil {
		return errors.Wrapf(err, "failed to unpack %q", path)
	}

	base := stripArchiveExt(filepath.Base(path), src.Type()) + "." + target.Primary()
	dest := filepath.Join(filepath.Dir(path), base)
	if outDir != "" {
		dest = filepath.Join(outDir, base)
	}

	if _, err := s.Pack(ctx, dest,
		archive.WithLogger(a.log),
		archive.WithCompressionLevel(a.conf.CompressionLevel)); err != nil {
		return errors.Wrapf(err, "failed to pack %q", dest)
	}

	a.log.WithFields(logrus.Fields{
		"from": path,
		"to":   dest,
	}).Info("repacked archive")

	return nil
}

// stripArchiveExt removes the recognized archive extension of type t
// from name, for deriving output names.
func stripArchiveExt(name string, t archive.Type) string {
	lower := strings.ToLower(name)
	for _, ext := range t.Extensions() {
		if strings.HasSuffix(lower, "."+ext) {
			return name[:len(name)-len(ext)-1]
		}
	}

	return strings.TrimSuffix(name, filepath.Ext(name))
}

// collectFiles returns the regular files under dir, sorted.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %q", dir)
	}

	sort.Strings(files)
	return files, nil
}
