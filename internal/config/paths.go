// Package config manages themereset configuration and filesystem paths.
//
// The data root defaults to ~/.themereset and holds the reset journal and
// the optional config.yaml. THEMERESET_ROOT overrides the root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// RootEnv names the environment variable that overrides the data root.
const RootEnv = "THEMERESET_ROOT"

// Paths contains all the filesystem paths used by themereset.
type Paths struct {
	// Root is the base directory for all themereset data (default: ~/.themereset)
	Root string

	// Journal is the directory holding one JSON record per applied reset
	Journal string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths, honoring THEMERESET_ROOT.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".themereset")
	}
	return NewPaths(root), nil
}

// NewPaths lays out the paths under root.
func NewPaths(root string) *Paths {
	return &Paths{
		Root:    root,
		Journal: filepath.Join(root, "journal"),
		Config:  filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Journal} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
