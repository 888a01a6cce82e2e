// Package main is the entry point for the dice companion server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dice-companion/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "dice-companion",
	Short: "Themed dice companion for the board game",
	Long: `Dice companion rolls the phase dice for a table, reveals the result after
the dice settle, and streams every step to connected renderers.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
