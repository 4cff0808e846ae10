package engine

import (
	"github.com/danieljhkim/themereset/internal/persist"
	"github.com/danieljhkim/themereset/internal/planner"
	"github.com/danieljhkim/themereset/internal/state"
	"github.com/danieljhkim/themereset/internal/theme"
)

// PlanResult represents a computed reset.
type PlanResult struct {
	// Snapshot is the loaded widget snapshot
	Snapshot *state.Snapshot

	// Theme is the theme the snapshot was compared against
	Theme *theme.Theme

	// Plan holds the update commands and skipped lookups
	Plan *planner.ResetPlan
}

// ResetResult represents the outcome of a reset.
type ResetResult struct {
	PlanResult

	// Applied is true when the reset snapshot was written
	Applied bool

	// OutputPath is where the snapshot was written (empty if not applied)
	OutputPath string

	// AfterHash fingerprints the written snapshot (empty if not applied)
	AfterHash string

	// Entry is the journal record of the reset (nil if not applied)
	Entry *persist.Entry
}

// HistoryResult represents the journal listing.
type HistoryResult struct {
	Entries []*persist.Entry
}
