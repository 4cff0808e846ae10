// Package engine provides the core business logic for themereset operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It loads the widget snapshot and the theme, asks
// the planner for the reset, applies the resulting update commands to the
// snapshot and records every applied reset in the journal.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Plan: Computes the reset without side effects
//   - Reset: Applies the reset and writes the snapshot back
//   - History: Lists journal entries
package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/danieljhkim/themereset/internal/clock"
	"github.com/danieljhkim/themereset/internal/persist"
	"github.com/danieljhkim/themereset/internal/planner"
	"github.com/danieljhkim/themereset/internal/state"
	"github.com/danieljhkim/themereset/internal/theme"
)

// Engine orchestrates all themereset operations.
// It is the main API surface called by the CLI.
type Engine struct {
	store   state.SnapshotStore
	journal *persist.Journal
	planner *planner.Planner
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new Engine with the given dependencies. A nil journal
// disables journaling and a nil logger discards log output.
func New(
	store state.SnapshotStore,
	journal *persist.Journal,
	plan *planner.Planner,
	clk clock.Clock,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		store:   store,
		journal: journal,
		planner: plan,
		clock:   clk,
		logger:  logger,
	}
}

// executeCommand writes one command's modifications into the snapshot.
func (e *Engine) executeCommand(instances *theme.Collection, cmd planner.UpdateCommand) error {
	inst, ok := instances.Get(cmd.InstanceID)
	if !ok {
		return fmt.Errorf("%w: widget %s is not in the snapshot", ErrNotFound, cmd.InstanceID)
	}

	for _, path := range cmd.Modifications.Paths() {
		value, _ := cmd.Modifications.Get(path)
		inst.SetPath(path, value)
	}

	e.logger.Debug("reset widget",
		"widget", cmd.InstanceID,
		"name", inst.Name,
		"modifications", cmd.Modifications.Len())
	return nil
}
