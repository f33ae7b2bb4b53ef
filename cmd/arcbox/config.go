// Copyright 2026 Outreach Corporation. All Rights Reserved.

// Description: This file defines the user configuration for arcbox that
// is stored on the user's machine. Flags override anything set here.

package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// This block contains constants for arcbox's configuration file.
var (
	// ConfigVersion is the current version of the configuration schema.
	ConfigVersion = 1

	// ConfigFile is the HOME-relative path to the config file.
	ConfigFile = filepath.Join(".config", "arcbox", "config.yaml")
)

// config is the on-disk configuration for arcbox.
type config struct {
	Version int `yaml:"version"`

	// OutputDir is the default directory unpack and repack write into.
	OutputDir string `yaml:"outputDir,omitempty"`

	// CompressionLevel is passed to the codecs when packing. Zero keeps
	// each codec's default.
	CompressionLevel int `yaml:"compressionLevel,omitempty"`

	// MaxExtractBytes caps the decompressed size of a single extraction.
	// Zero means unlimited.
	MaxExtractBytes int64 `yaml:"maxExtractBytes,omitempty"`

	// Quiet suppresses progress output.
	Quiet bool `yaml:"quiet,omitempty"`
}

// readConfig returns the configuration at path, or the one from the
// default location when path is empty. A missing file yields defaults.
func readConfig(path string) (*config, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(homeDir, ConfigFile)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &config{Version: ConfigVersion}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var conf config
	if err := yaml.NewDecoder(f).Decode(&conf); err != nil {
		return nil, err
	}

	return &conf, nil
}
