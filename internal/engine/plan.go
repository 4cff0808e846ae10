package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Plan computes the reset for a snapshot without writing anything.
func (e *Engine) Plan(ctx context.Context, req *PlanRequest) (*PlanResult, error) {
	result, err := e.plan(ctx, req.SnapshotPath, req.ThemePath, req.Variant)
	if err != nil {
		return nil, err
	}

	if req.Check && result.Plan.HasCommands() {
		return result, fmt.Errorf("%w: %d widget(s) to reset", ErrPendingChanges, len(result.Plan.Commands))
	}
	return result, nil
}

// plan loads both inputs and builds the reset plan.
func (e *Engine) plan(ctx context.Context, snapshotPath, themePath, variant string) (*PlanResult, error) {
	if snapshotPath == "" {
		return nil, fmt.Errorf("%w: snapshot path is required", ErrValidation)
	}
	if themePath == "" {
		return nil, fmt.Errorf("%w: theme path is required", ErrValidation)
	}

	snap, err := e.store.LoadSnapshot(snapshotPath)
	if err != nil {
		return nil, loadError(err)
	}
	e.logger.Debug("loaded snapshot",
		"path", snapshotPath,
		"widgets", snap.Instances.Len(),
		"hash", snap.Hash)

	th, err := e.store.LoadTheme(themePath, variant)
	if err != nil {
		return nil, loadError(err)
	}
	e.logger.Debug("loaded theme",
		"path", themePath,
		"name", th.Name,
		"widgetTypes", len(th.Stylesheet))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan := e.planner.BuildResetPlan(snap.Instances, th.Stylesheet)
	for _, skip := range plan.Skipped {
		e.logger.Debug("skipped", "widget", skip.InstanceID, "path", skip.Path, "reason", skip.Reason)
	}
	e.logger.Info("planned reset",
		"widgets", len(plan.Commands),
		"modifications", plan.ModificationCount(),
		"skipped", len(plan.Skipped))

	return &PlanResult{Snapshot: snap, Theme: th, Plan: plan}, nil
}

// loadError maps missing files to ErrNotFound and undecodable documents to
// ErrValidation. Other I/O errors pass through.
func loadError(err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, os.ErrPermission):
		return err
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
