package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	cppctx "cppmir/internal/context"
	"cppmir/internal/layout"
)

// fileConfig is the decoded shape of cppmir.toml, the way
// internal/project's moduleManifest mirrors surge.toml's [package]
// section: a plain struct with `toml` tags, decoded with
// toml.DecodeFile and checked with meta.IsDefined for the fields whose
// absence should fall back to a default rather than a zero value.
type fileConfig struct {
	Target struct {
		Triple string `toml:"triple"`
	} `toml:"target"`
	Diagnostics struct {
		MaxDiagnostics   int  `toml:"max"`
		WarningsAsErrors bool `toml:"warnings_as_errors"`
	} `toml:"diagnostics"`
}

// runConfig is fileConfig turned into the values the lower command
// actually consumes.
type runConfig struct {
	Options          cppctx.Options
	WarningsAsErrors bool
}

// loadConfig reads path (if it exists) and turns it into a runConfig. A
// missing config file is not an error: cmd/cppmirc runs with the same
// x86_64-linux-gnu/100-diagnostic defaults context.Options.withDefaults
// already picks.
func loadConfig(path string) (runConfig, error) {
	var cfg fileConfig
	if path == "" {
		return runConfig{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return runConfig{}, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return runConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	var rc runConfig
	target := layout.X86_64LinuxGNU()
	if meta.IsDefined("target", "triple") {
		switch cfg.Target.Triple {
		case "x86_64-linux-gnu", "":
			target = layout.X86_64LinuxGNU()
		case "aarch64-linux-gnu":
			target = layout.AArch64LinuxGNU()
		default:
			return runConfig{}, fmt.Errorf("%s: unsupported target triple %q", path, cfg.Target.Triple)
		}
	}
	rc.Options.Target = target

	if meta.IsDefined("diagnostics", "max") {
		rc.Options.MaxDiagnostics = cfg.Diagnostics.MaxDiagnostics
	}
	rc.WarningsAsErrors = meta.IsDefined("diagnostics", "warnings_as_errors") && cfg.Diagnostics.WarningsAsErrors

	return rc, nil
}
