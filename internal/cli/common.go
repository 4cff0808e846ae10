package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/themereset/internal/clock"
	"github.com/danieljhkim/themereset/internal/config"
	"github.com/danieljhkim/themereset/internal/engine"
	"github.com/danieljhkim/themereset/internal/fsops"
	"github.com/danieljhkim/themereset/internal/hash"
	"github.com/danieljhkim/themereset/internal/persist"
	"github.com/danieljhkim/themereset/internal/planner"
	"github.com/danieljhkim/themereset/internal/state"
	"github.com/danieljhkim/themereset/internal/theme"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = paths.Config
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.PlannerOptions()
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	store := state.NewFileSnapshotStore(fs, hash.NewBlake3Hasher(), cfg.RootSchemaKey)
	journal := persist.NewJournal(fs, paths.Journal)
	plan := planner.NewPlanner(nil, nil, opts)

	return engine.New(store, journal, plan, clock.NewRealClock(), newLogger(os.Stderr, verbose)), nil
}

// newLogger logs to w at debug level when verbose, and only warnings
// otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// themeFlags are shared by commands that read a theme.
type themeFlags struct {
	path      string
	published bool
}

func (f *themeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "theme", "t", "", "Theme, theme stylesheet or application export (required)")
	cmd.Flags().BoolVar(&f.published, "published", false, "Use publishedTheme from an application export (default: editModeTheme)")
	_ = cmd.MarkFlagRequired("theme")
}

func (f *themeFlags) variant() string {
	if f.published {
		return theme.ThemePublished
	}
	return theme.ThemeEditMode
}

// formatValue renders a property value compactly, as JSON.
func formatValue(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
