// Package project locates and parses the optional nl.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file LoadNearest searches for, starting at the
// working directory and moving outward.
const ManifestName = "nl.toml"

// Manifest is the parsed nl.toml. Compiler defaults live under
// [compiler]; CLI flags override whatever the manifest says.
type Manifest struct {
	Package  PackageSection  `toml:"package"`
	Compiler CompilerSection `toml:"compiler"`
}

// PackageSection names the project.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// CompilerSection holds compiler defaults.
type CompilerSection struct {
	MaxDiagnostics int    `toml:"max-diagnostics"`
	Color          string `toml:"color"`
	Cache          bool   `toml:"cache"`
}

// DefaultManifest returns the manifest used when no nl.toml exists.
func DefaultManifest() Manifest {
	return Manifest{
		Compiler: CompilerSection{
			MaxDiagnostics: 100,
			Color:          "auto",
			Cache:          true,
		},
	}
}

// LoadManifest parses an nl.toml file. Missing keys keep their defaults.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return m, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return m, nil
}

// LoadNearest parses the closest nl.toml at or above startDir. With no
// manifest anywhere on the ancestor chain it falls back to defaults; a
// manifest that exists but cannot be read or parsed is an error, never a
// silent default.
func LoadNearest(startDir string) (Manifest, string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return DefaultManifest(), "", fmt.Errorf("failed to resolve start directory: %w", err)
	}

	for _, candidate := range ancestors(dir) {
		path := filepath.Join(candidate, ManifestName)
		m, err := LoadManifest(path)
		switch {
		case err == nil:
			return m, path, nil
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			return DefaultManifest(), path, err
		}
	}
	return DefaultManifest(), "", nil
}

// ancestors lists dir and every parent up to the filesystem root,
// innermost first.
func ancestors(dir string) []string {
	chain := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return chain
		}
		chain = append(chain, parent)
		dir = parent
	}
}

// WriteStarter writes a starter manifest for 'nl init'. It refuses to
// overwrite an existing file.
func WriteStarter(path, name string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%q already exists", path)
	}
	content := fmt.Sprintf(`[package]
name = %q
version = "0.1.0"

[compiler]
max-diagnostics = 100
color = "auto"
cache = true
`, name)
	return os.WriteFile(path, []byte(content), 0o644) // #nosec G306 -- manifest is not sensitive
}
