package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linkpy/neolang/internal/project"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nl.toml")
	content := `
[package]
name = "demo"

[compiler]
max-diagnostics = 25
color = "off"
cache = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Package.Name != "demo" {
		t.Errorf("name: %q", m.Package.Name)
	}
	if m.Compiler.MaxDiagnostics != 25 || m.Compiler.Color != "off" || m.Compiler.Cache {
		t.Errorf("compiler section: %+v", m.Compiler)
	}
}

func TestDefaultsWhenMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nl.toml")
	if err := os.WriteFile(path, []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Compiler.MaxDiagnostics != 100 || m.Compiler.Color != "auto" || !m.Compiler.Cache {
		t.Errorf("defaults lost: %+v", m.Compiler)
	}
}

func TestLoadNearestWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "nl.toml")
	if err := os.WriteFile(manifest, []byte("[package]\nname = \"up\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, path, err := project.LoadNearest(nested)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if path != manifest {
		t.Errorf("got %q, want %q", path, manifest)
	}
	if m.Package.Name != "up" {
		t.Errorf("name: %q", m.Package.Name)
	}
}

func TestLoadNearestDefaultsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, path, err := project.LoadNearest(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if path != "" {
		t.Errorf("no manifest expected, got %q", path)
	}
	if m.Compiler.MaxDiagnostics != 100 {
		t.Errorf("defaults lost: %+v", m.Compiler)
	}
}

func TestLoadNearestBrokenManifestErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nl.toml")
	if err := os.WriteFile(path, []byte("[compiler\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	// a manifest that exists but does not parse is an error, not a
	// silent fallback to defaults
	if _, gotPath, err := project.LoadNearest(dir); err == nil || gotPath != path {
		t.Fatalf("expected parse error at %q, got %q %v", path, gotPath, err)
	}
}

func TestWriteStarterRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nl.toml")
	if err := project.WriteStarter(path, "demo"); err != nil {
		t.Fatal(err)
	}
	if err := project.WriteStarter(path, "demo"); err == nil {
		t.Error("must refuse to overwrite")
	}
	m, err := project.LoadManifest(path)
	if err != nil || m.Package.Name != "demo" {
		t.Errorf("starter not parseable: %+v %v", m, err)
	}
}
