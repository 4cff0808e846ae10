package engine

// PlanRequest represents a request to compute a reset without applying it.
type PlanRequest struct {
	// SnapshotPath is the widget snapshot to reset
	SnapshotPath string

	// ThemePath is the theme, theme stylesheet or application export
	ThemePath string

	// Variant selects editModeTheme or publishedTheme from an application export
	Variant string

	// Check makes pending changes an error (ErrPendingChanges)
	Check bool
}

// ResetRequest represents a request to reset widgets to theme defaults.
type ResetRequest struct {
	// SnapshotPath is the widget snapshot to reset
	SnapshotPath string

	// ThemePath is the theme, theme stylesheet or application export
	ThemePath string

	// Variant selects editModeTheme or publishedTheme from an application export
	Variant string

	// OutputPath is where the reset snapshot is written (default: SnapshotPath)
	OutputPath string

	// DryRun performs planning only without writing anything
	DryRun bool
}

// HistoryRequest represents a request to list journal entries.
type HistoryRequest struct {
	// Limit caps the number of entries returned (0 = all)
	Limit int

	// ID selects a single entry
	ID string
}
