package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-companion/internal/config"
	"github.com/KirkDiggler/dice-companion/internal/entities/monopoly"
	"github.com/KirkDiggler/dice-companion/internal/orchestrators/roll"
	"github.com/KirkDiggler/dice-companion/internal/rules"
	"github.com/KirkDiggler/dice-companion/internal/services/table"
)

const localTableID = "local"

var rollPhase string

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll the dice once locally",
	Long: `Roll the dice for a phase without starting the server. Each die is shown
as it tumbles and settles, then the result lines are printed. Examples:

  roll --phase start_game
  roll --phase "End Game"`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().StringVar(&rollPhase, "phase", "start_game", "Game phase (start_game, mid_game, end_game)")
}

func runRoll(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// only warnings, so the roll output stays readable
	cfg.LogLevel = "warn"
	slog.SetDefault(cfg.NewLogger(cmd.ErrOrStderr()))

	phase, err := rules.ParsePhase(rollPhase)
	if err != nil {
		return err
	}

	tables, cleanup, err := buildTables(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RevealDelay+5*time.Second)
	defer cancel()

	return rollOnce(ctx, tables, phase, cmd.OutOrStdout())
}

// rollOnce starts a roll on the local table and prints its events until
// the result is published
func rollOnce(ctx context.Context, tables table.Service, phase monopoly.GamePhase, out io.Writer) error {
	session, err := tables.Table(ctx, localTableID)
	if err != nil {
		return err
	}

	if _, err := session.SelectPhase(ctx, &roll.SelectPhaseInput{Phase: phase}); err != nil {
		return err
	}

	sub, err := tables.Subscribe(ctx, &table.SubscribeInput{TableID: localTableID})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	started, err := session.StartRoll(ctx, &roll.StartRollInput{})
	if err != nil {
		return err
	}
	if !started.Started {
		return fmt.Errorf("roll already in progress")
	}

	_, _ = fmt.Fprintf(out, "Rolling %s...\n", phase.DisplayName())

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for the result: %w", ctx.Err())
		case update, ok := <-sub.Updates:
			if !ok {
				return fmt.Errorf("table closed before the result was published")
			}
			if done := printUpdate(out, update); done {
				return nil
			}
		}
	}
}

func printUpdate(out io.Writer, update table.Update) bool {
	switch update.Type {
	case roll.EventDieRolling:
		_, _ = fmt.Fprintf(out, "  die %d tumbling (%s)\n", update.Die.Die, update.Die.Token)
	case roll.EventDieSettled:
		path, _ := rules.ImagePath(update.Die.Die, update.Die.Face)
		_, _ = fmt.Fprintf(out, "  die %d shows %d %s\n", update.Die.Die, update.Die.Face, path)
	case roll.EventRollPublished:
		_, _ = fmt.Fprintln(out)
		for _, line := range update.Lines {
			_, _ = fmt.Fprintln(out, line)
		}
		return true
	}
	return false
}
