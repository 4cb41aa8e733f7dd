package main

import (
	"os"
	"path/filepath"
	"testing"

	"cppmir/internal/layout"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	rc, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("loadConfig(missing) error: %v", err)
	}
	if rc.Options.Target.PtrSize != 0 {
		t.Fatalf("expected zero-value Options for a missing config, got %+v", rc.Options)
	}
	if rc.WarningsAsErrors {
		t.Fatalf("expected WarningsAsErrors=false by default")
	}
}

func TestLoadConfigEmptyPathIsNoop(t *testing.T) {
	rc, err := loadConfig("")
	if err != nil || rc.Options.Target.PtrSize != 0 {
		t.Fatalf("loadConfig(\"\") = %+v, %v; want zero value, nil", rc, err)
	}
}

func TestLoadConfigParsesTargetAndDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cppmir.toml")
	data := `
[target]
triple = "aarch64-linux-gnu"

[diagnostics]
max = 50
warnings_as_errors = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rc, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig(%q) error: %v", path, err)
	}
	want := layout.AArch64LinuxGNU()
	if rc.Options.Target != want {
		t.Fatalf("Target = %+v, want %+v", rc.Options.Target, want)
	}
	if rc.Options.MaxDiagnostics != 50 {
		t.Fatalf("MaxDiagnostics = %d, want 50", rc.Options.MaxDiagnostics)
	}
	if !rc.WarningsAsErrors {
		t.Fatalf("expected WarningsAsErrors=true")
	}
}

func TestLoadConfigRejectsUnknownTriple(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cppmir.toml")
	data := "[target]\ntriple = \"riscv64-unknown-elf\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Fatalf("expected loadConfig to reject an unsupported triple")
	}
}
