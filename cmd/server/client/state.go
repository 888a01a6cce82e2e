package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show a table's phase, status and last result",
	Args:  cobra.NoArgs,
	RunE:  runState,
}

func runState(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	state, err := newAPIClient(serverAddr, tableID).getTable(ctx)
	if err != nil {
		return fmt.Errorf("failed to get table: %w", err)
	}

	printState(cmd.OutOrStdout(), state)
	return nil
}

func printState(out io.Writer, state *tableState) {
	_, _ = fmt.Fprintf(out, "Table: %s\n", state.TableID)
	_, _ = fmt.Fprintf(out, "Phase: %s (dice %s)\n", state.PhaseName, joinInts(state.ActiveDice))
	_, _ = fmt.Fprintf(out, "Status: %s\n", state.Status)
	if len(state.ResultLines) == 0 {
		_, _ = fmt.Fprintln(out, "No roll yet")
		return
	}
	_, _ = fmt.Fprintln(out)
	for _, line := range state.ResultLines {
		_, _ = fmt.Fprintln(out, line)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
