package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("defaults to home directory", func(t *testing.T) {
		t.Setenv(RootEnv, "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}
		if filepath.Base(paths.Root) != ".themereset" {
			t.Errorf("Root should end with .themereset, got %s", paths.Root)
		}
		if paths.Journal != filepath.Join(paths.Root, "journal") {
			t.Errorf("Journal path incorrect: %s", paths.Journal)
		}
		if paths.Config != filepath.Join(paths.Root, "config.yaml") {
			t.Errorf("Config path incorrect: %s", paths.Config)
		}
	})

	t.Run("respects THEMERESET_ROOT", func(t *testing.T) {
		custom := filepath.Join(t.TempDir(), "custom")
		t.Setenv(RootEnv, custom)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}
		if paths.Root != custom {
			t.Errorf("Root = %s, want %s", paths.Root, custom)
		}
		if paths.Journal != filepath.Join(custom, "journal") {
			t.Errorf("Journal should be under custom root, got %s", paths.Journal)
		}
	})
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths := NewPaths(filepath.Join(t.TempDir(), "themereset"))

	for i := 0; i < 2; i++ {
		if err := paths.EnsureDirectories(); err != nil {
			t.Fatalf("EnsureDirectories (pass %d) failed: %v", i+1, err)
		}
	}

	for _, dir := range []string{paths.Root, paths.Journal} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s was not created", dir)
		}
	}
}
