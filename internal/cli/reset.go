package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/themereset/internal/engine"
	"github.com/danieljhkim/themereset/internal/hash"
)

var (
	resetTheme      themeFlags
	resetDryRun     bool
	resetOutputPath string
)

var resetCmd = &cobra.Command{
	Use:   "reset <snapshot>",
	Short: "Reset widget styling to the theme defaults",
	Long: `Reset every widget in a snapshot to the defaults of the theme stylesheet and
write the snapshot back. Each applied reset is recorded in the journal.

The write is refused if the snapshot changes on disk while the reset runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.ResetRequest{
			SnapshotPath: args[0],
			ThemePath:    resetTheme.path,
			Variant:      resetTheme.variant(),
			OutputPath:   resetOutputPath,
			DryRun:       resetDryRun,
		}

		result, err := eng.Reset(context.Background(), req)
		if err != nil {
			if result != nil && result.Applied {
				PrintWarning(fmt.Sprintf("Snapshot written to %s", result.OutputPath))
			}
			return err
		}

		if jsonOutput {
			return outputJSON(newResetOutput(result))
		}

		formatReset(result)
		return nil
	},
}

func init() {
	resetTheme.register(resetCmd)
	resetCmd.Flags().BoolVar(&resetDryRun, "dry-run", false, "Show the plan without writing the snapshot")
	resetCmd.Flags().StringVarP(&resetOutputPath, "output", "o", "", "Write the reset snapshot here instead of in place")
}

// resetOutput is the JSON shape of a reset.
type resetOutput struct {
	*planOutput
	Applied    bool   `json:"applied"`
	OutputPath string `json:"outputPath,omitempty"`
	AfterHash  string `json:"afterHash,omitempty"`
	JournalID  string `json:"journalId,omitempty"`
}

func newResetOutput(result *engine.ResetResult) *resetOutput {
	out := &resetOutput{
		planOutput: newPlanOutput(&result.PlanResult),
		Applied:    result.Applied,
		OutputPath: result.OutputPath,
		AfterHash:  result.AfterHash,
	}
	if result.Entry != nil {
		out.JournalID = result.Entry.ID
	}
	return out
}

func formatReset(result *engine.ResetResult) {
	formatPlan(&result.PlanResult)
	fmt.Println()

	switch {
	case !result.Plan.HasCommands():
		PrintSuccess("Nothing to reset")
	case !result.Applied:
		PrintWarning("Dry run: snapshot not written")
	default:
		PrintSuccess(fmt.Sprintf("Reset %s in %s",
			PrintCount(len(result.Plan.Commands), "widget", "widgets"), result.OutputPath))
		PrintLabelValue("Snapshot", hash.Short(result.AfterHash, 12))
		if result.Entry != nil {
			PrintLabelValue("Journal", result.Entry.ID)
		}
	}
}
