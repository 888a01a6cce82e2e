package client

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Stream event names sent by the server
const (
	eventDieRolling    = "dice.die.rolling"
	eventDieSettled    = "dice.die.settled"
	eventRollPublished = "dice.roll.published"
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll the dice on a table and wait for the result",
	Args:  cobra.NoArgs,
	RunE:  runRoll,
}

func runRoll(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return rollAndFollow(ctx, newAPIClient(serverAddr, tableID), cmd.OutOrStdout())
}

// rollAndFollow listens to the table before rolling so no event is missed
func rollAndFollow(ctx context.Context, c *apiClient, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state, events, err := c.openStream(ctx)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	started, err := c.startRoll(ctx)
	if err != nil {
		return fmt.Errorf("failed to start roll: %w", err)
	}
	if !started.Started {
		return fmt.Errorf("table %s is busy (%s)", state.TableID, started.Status)
	}

	_, _ = fmt.Fprintf(out, "Rolling %s on table %s...\n", state.PhaseName, state.TableID)

	for event := range events {
		if event.RollID != started.RollID {
			continue
		}
		switch event.Name {
		case eventDieRolling:
			_, _ = fmt.Fprintf(out, "  die %d tumbling (%s)\n", event.Die.Die, event.Die.Token)
		case eventDieSettled:
			_, _ = fmt.Fprintf(out, "  die %d shows %d %s\n", event.Die.Die, event.Die.Face, event.Die.ImagePath)
		case eventRollPublished:
			_, _ = fmt.Fprintln(out)
			for _, line := range event.Lines {
				_, _ = fmt.Fprintln(out, line)
			}
			return nil
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("timed out waiting for the result: %w", err)
	}
	return fmt.Errorf("stream closed before the result was published")
}
