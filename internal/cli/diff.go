package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/themereset/internal/engine"
	"github.com/danieljhkim/themereset/internal/planner"
)

var (
	diffTheme themeFlags
	diffCheck bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <snapshot>",
	Short: "Show which widget properties differ from the theme",
	Long: `Compare every widget in a snapshot against the theme stylesheet and list the
properties a reset would change, with their current and theme values.

With --check the command exits non-zero when any widget would change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.PlanRequest{
			SnapshotPath: args[0],
			ThemePath:    diffTheme.path,
			Variant:      diffTheme.variant(),
			Check:        diffCheck,
		}

		result, err := eng.Plan(context.Background(), req)
		if err != nil && !errors.Is(err, engine.ErrPendingChanges) {
			return err
		}

		if jsonOutput {
			if jerr := outputJSON(newPlanOutput(result)); jerr != nil {
				return jerr
			}
			return err
		}

		formatPlan(result)
		return err
	},
}

func init() {
	diffTheme.register(diffCmd)
	diffCmd.Flags().BoolVar(&diffCheck, "check", false, "Exit with an error if any widget differs from the theme")
}

// planOutput is the JSON shape of a computed reset.
type planOutput struct {
	Snapshot     string                  `json:"snapshot"`
	SnapshotHash string                  `json:"snapshotHash"`
	Theme        string                  `json:"theme,omitempty"`
	Commands     []planner.UpdateCommand `json:"commands"`
	Skipped      []planner.Skip          `json:"skipped"`
}

func newPlanOutput(result *engine.PlanResult) *planOutput {
	return &planOutput{
		Snapshot:     result.Snapshot.Path,
		SnapshotHash: result.Snapshot.Hash,
		Theme:        result.Theme.Name,
		Commands:     result.Plan.Commands,
		Skipped:      result.Plan.Skipped,
	}
}

// formatPlan prints each widget to reset with its current and target values,
// followed by skipped lookups and a summary.
func formatPlan(result *engine.PlanResult) {
	title := "Reset plan"
	if result.Theme.Name != "" {
		title = fmt.Sprintf("Reset plan: %s", result.Theme.Name)
	}
	PrintSection(title)

	plan := result.Plan
	if !plan.HasCommands() {
		PrintEmptyState("All widgets match the theme")
	}

	for _, cmd := range plan.Commands {
		inst, _ := result.Snapshot.Instances.Get(cmd.InstanceID)

		_, _ = warningColor.Print("  ~ ")
		_, _ = headerColor.Print(inst.Name)
		_, _ = dimColor.Printf("  %s  %s\n", cmd.InstanceID, inst.Type)

		for _, path := range cmd.Modifications.Paths() {
			target, _ := cmd.Modifications.Get(path)
			current := "(unset)"
			if v, ok := inst.GetPath(path); ok {
				current = formatValue(v)
			}

			_, _ = labelColor.Printf("      %s  ", path)
			_, _ = errorColor.Print(current)
			_, _ = dimColor.Print(" → ")
			_, _ = successColor.Println(formatValue(target))
		}
	}

	if len(plan.Skipped) > 0 {
		fmt.Println()
		for _, skip := range plan.Skipped {
			location := skip.InstanceID
			if skip.Path != "" {
				location += " " + skip.Path
			}
			_, _ = dimColor.Printf("  - %s: %s\n", location, skip.Reason)
		}
	}

	fmt.Println()
	_, _ = dimColor.Print("  ")
	fmt.Printf("%s, %s to reset",
		PrintCount(len(plan.Commands), "widget", "widgets"),
		PrintCount(plan.ModificationCount(), "property", "properties"))
	if len(plan.Skipped) > 0 {
		_, _ = dimColor.Printf(", %d skipped", len(plan.Skipped))
	}
	fmt.Println()
}
