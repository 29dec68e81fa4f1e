package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent search runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer store.Close()

	records, err := store.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No search runs recorded yet.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %q in %s\n", rec.StartedAt.Format("2006-01-02 15:04"), rec.Query, rec.Root)
		cmd.Printf("    scanned %d, matched %d, skipped %d -> %s\n",
			rec.Scanned, rec.Matched, rec.Skipped, rec.ReportPath)
	}
	return nil
}
