package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List a table's recent rolls, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum rolls to list (default server limit)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	rolls, err := newAPIClient(serverAddr, tableID).listRolls(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list rolls: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(rolls) == 0 {
		_, _ = fmt.Fprintln(w, "No rolls recorded")
		return nil
	}

	for _, r := range rolls {
		doubles := ""
		if r.DoublesTriggered {
			doubles = " doubles"
		}
		_, _ = fmt.Fprintf(w, "%s  %-10s total %2d  %v%s\n",
			r.RolledAt.Format("15:04:05"), r.Phase, r.Total, r.OutcomeLines, doubles)
	}
	return nil
}
