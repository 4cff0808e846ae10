package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/themereset/internal/engine"
	"github.com/danieljhkim/themereset/internal/hash"
	"github.com/danieljhkim/themereset/internal/persist"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [entry-id]",
	Short: "List applied resets",
	Long: `List the resets recorded in the journal, newest first. Pass an entry ID to
show the update commands of a single reset.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}

		req := &engine.HistoryRequest{Limit: historyLimit}
		if len(args) == 1 {
			req.ID = args[0]
		}

		result, err := eng.History(context.Background(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result.Entries)
		}

		if req.ID != "" && len(result.Entries) == 1 {
			formatEntry(result.Entries[0])
			return nil
		}
		formatHistory(result.Entries)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to list (0 = all)")
}

func formatHistory(entries []*persist.Entry) {
	PrintSection("Reset history")

	if len(entries) == 0 {
		PrintEmptyState("No resets recorded")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(len(e.Commands)),
			strconv.Itoa(e.ModificationCount()),
			e.Snapshot,
		})
	}
	PrintTable([]string{"ID", "TIME", "WIDGETS", "PROPERTIES", "SNAPSHOT"}, rows)
}

func formatEntry(e *persist.Entry) {
	PrintSection(fmt.Sprintf("Reset %s", e.ID))

	PrintLabelValue("Time", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	PrintLabelValue("Snapshot", e.Snapshot)
	PrintLabelValue("Theme", e.Theme)
	if e.Variant != "" {
		PrintLabelValue("Variant", e.Variant)
	}
	PrintLabelValue("Before", hash.Short(e.BeforeHash, 12))
	PrintLabelValue("After", hash.Short(e.AfterHash, 12))
	fmt.Println()

	if len(e.Commands) == 0 {
		PrintEmptyState("No update commands")
		return
	}
	for _, cmd := range e.Commands {
		_, _ = headerColor.Printf("  %s\n", cmd.InstanceID)
		for _, path := range cmd.Modifications.Paths() {
			value, _ := cmd.Modifications.Get(path)
			_, _ = labelColor.Printf("      %s  ", path)
			_, _ = successColor.Println(formatValue(value))
		}
	}
}
