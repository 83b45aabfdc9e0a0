package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/guessr/internal/game"
)

func graphCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the state machine",
		Long: `Prints every step and transition of the engine.

Examples:
  guessr graph | dot -Tsvg > guessr.svg
  guessr graph --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch format {
			case "dot":
				return game.WriteDOT(out)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(game.Transitions())
			default:
				return fmt.Errorf("unknown format %q (want dot or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or json")
	return cmd
}
