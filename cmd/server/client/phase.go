package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var phaseCmd = &cobra.Command{
	Use:   "phase [phase]",
	Short: "Select the game phase for the next roll",
	Long: `Select which dice the next roll uses. Examples:

  phase start_game
  phase mid_game
  phase "End Game"`,
	Args: cobra.ExactArgs(1),
	RunE: runPhase,
}

func runPhase(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out, err := newAPIClient(serverAddr, tableID).selectPhase(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to select phase: %w", err)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Phase: %s (dice %s)\n", out.PhaseName, joinInts(out.ActiveDice))
	if out.RollInFlight {
		_, _ = fmt.Fprintln(w, "A roll is still in flight; the new phase applies to the next roll")
	}
	return nil
}
