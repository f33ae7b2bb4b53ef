// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file contains the entrypoint and app wiring for the
// arcbox command line tool.

// Command arcbox inspects, unpacks, packs and repacks archives.
package main

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Version is the version of arcbox, set at build time.
var Version = "dev"

// cliApp carries the state shared by the subcommands.
type cliApp struct {
	log  *logrus.Logger
	conf *config
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := newApp(log).Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

// newApp assembles the urfave/cli application.
func newApp(log *logrus.Logger) *cli.App {
	a := &cliApp{log: log, conf: &config{Version: ConfigVersion}}

	return &cli.App{
		Name:    "arcbox",
		Usage:   "inspect, unpack, pack and repack archives",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a config file (default: ~/" + ConfigFile + ")",
			},
			&cli.Int64Flag{
				Name:  "max-extract-bytes",
				Usage: "cap on decompressed bytes per extraction (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress progress output",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.inspectCommand(),
			a.unpackCommand(),
			a.packCommand(),
			a.repackCommand(),
		},
	}
}

// setup loads the config file and applies the global flags.
func (a *cliApp) setup(c *cli.Context) error {
	if c.Bool("debug") {
		a.log.SetLevel(logrus.DebugLevel)
	}

	conf, err := readConfig(c.String("config"))
	if err != nil {
		// An explicitly named config file has to load; the default one
		// is best effort.
		if c.IsSet("config") {
			return errors.Wrap(err, "failed to read config file")
		}
		a.log.WithError(err).Warn("failed to read default config file")
		conf = &config{Version: ConfigVersion}
	}
	a.conf = conf

	return nil
}

// maxExtractBytes resolves the extraction cap: the flag wins over the
// config file.
func (a *cliApp) maxExtractBytes(c *cli.Context) int64 {
	if c.IsSet("max-extract-bytes") {
		return c.Int64("max-extract-bytes")
	}
	return a.conf.MaxExtractBytes
}

// quiet reports whether progress output is suppressed.
func (a *cliApp) quiet(c *cli.Context) bool {
	return c.Bool("quiet") || a.conf.Quiet
}

// interactive reports whether progress bars and prompts may be shown.
func (a *cliApp) interactive(c *cli.Context) bool {
	return !a.quiet(c) && term.IsTerminal(int(os.Stdout.Fd()))
}

// expandPath expands a leading ~ in path arguments.
func expandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand %q", path)
	}
	return expanded, nil
}
