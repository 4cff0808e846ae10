package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/themereset/internal/persist"
)

// Reset resets every widget in a snapshot to its theme defaults.
// Steps:
// 1. Load the snapshot and the theme, build the plan
// 2. Stop here on DryRun or when nothing differs
// 3. Apply the update commands to the loaded snapshot
// 4. Refuse to write if the snapshot changed on disk since step 1 (ErrDrift)
// 5. Write the snapshot atomically and record a journal entry
func (e *Engine) Reset(ctx context.Context, req *ResetRequest) (*ResetResult, error) {
	planned, err := e.plan(ctx, req.SnapshotPath, req.ThemePath, req.Variant)
	if err != nil {
		return nil, err
	}

	result := &ResetResult{PlanResult: *planned}
	if req.DryRun || !planned.Plan.HasCommands() {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	instances := planned.Snapshot.Instances
	for _, cmd := range planned.Plan.Commands {
		if err := e.executeCommand(instances, cmd); err != nil {
			return nil, fmt.Errorf("failed to apply reset: %w", err)
		}
	}

	current, err := e.store.SnapshotHash(req.SnapshotPath)
	if err != nil {
		return nil, loadError(err)
	}
	if current != planned.Snapshot.Hash {
		return nil, fmt.Errorf("%w: %s changed since it was read", ErrDrift, req.SnapshotPath)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = req.SnapshotPath
	}
	afterHash, err := e.store.SaveSnapshot(outputPath, instances)
	if err != nil {
		return nil, err
	}
	result.Applied = true
	result.OutputPath = outputPath
	result.AfterHash = afterHash

	e.logger.Info("wrote snapshot",
		"path", outputPath,
		"widgets", len(planned.Plan.Commands),
		"hash", afterHash)

	if e.journal == nil {
		return result, nil
	}

	entry := &persist.Entry{
		Timestamp:  e.clock.Now(),
		Snapshot:   outputPath,
		Theme:      req.ThemePath,
		Variant:    req.Variant,
		BeforeHash: planned.Snapshot.Hash,
		AfterHash:  afterHash,
		Commands:   planned.Plan.Commands,
	}
	if err := e.journal.Record(entry); err != nil {
		// Snapshot already written.
		return result, fmt.Errorf("snapshot written but failed to record journal entry: %w", err)
	}
	result.Entry = entry
	e.logger.Debug("recorded journal entry", "id", entry.ID)

	return result, nil
}
