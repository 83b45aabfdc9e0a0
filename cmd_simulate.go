package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/oracle"
	"github.com/robalobadob/guessr/internal/present"
)

func (a *app) simulateCmd() *cobra.Command {
	var (
		rounds  int
		seed    string
		games   []string
		verbose bool
		trace   bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Let a simulated player play against the engine",
		Long: `Plays --rounds rounds against a simulated player that picks secrets
deterministically from --seed and always answers truthfully. The same seed
replays the same session.

Examples:
  guessr simulate --rounds 20
  guessr simulate --games word --seed demo --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Seed
			}
			schedule, err := parseSchedule(games)
			if err != nil {
				return err
			}
			return a.simulate(cmd.Context(), cmd.OutOrStdout(), seed, rounds, schedule, verbose, trace)
		},
	}
	f := cmd.Flags()
	f.IntVar(&rounds, "rounds", 10, "rounds to play")
	f.StringVar(&seed, "seed", "", "secret selection seed (default from GUESSR_SEED)")
	f.StringSliceVar(&games, "games", []string{string(game.KindNumeric), string(game.KindWord), string(game.KindGuess)}, "games to cycle through")
	f.BoolVarP(&verbose, "verbose", "v", false, "print every question and answer")
	f.BoolVar(&trace, "trace", false, "print the execution trace at the end")
	return cmd
}

func parseSchedule(names []string) ([]game.Kind, error) {
	known := []game.Kind{game.KindNumeric, game.KindWord, game.KindGuess}
	out := make([]game.Kind, 0, len(names))
	for _, n := range names {
		k := game.Kind(n)
		if !slices.Contains(known, k) {
			return nil, fmt.Errorf("unknown game %q (want numeric, word or guess)", n)
		}
		out = append(out, k)
	}
	return out, nil
}

func (a *app) simulate(ctx context.Context, out io.Writer, seed string, rounds int, schedule []game.Kind, verbose, trace bool) error {
	if rounds < 0 {
		return fmt.Errorf("--rounds must not be negative")
	}
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}
	player, err := oracle.NewPlayer(seed, rounds, schedule, a.cfg.Game(), tbl.All())
	if err != nil {
		return err
	}
	var p game.Presenter = player
	if verbose {
		p = present.NewTranscript(player, out)
	}
	sess, err := a.newSession(tbl, p, seed)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.ctrl.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, renderSummary(sess.ctrl.State(), sess.rounds.results))
	if trace {
		fmt.Fprintln(out, renderTrace(sess.tracker))
	}

	secrets := player.Secrets()
	for i, r := range sess.rounds.results {
		if i >= len(secrets) {
			break
		}
		want := secrets[i]
		if r.Game == game.KindGuess {
			want = r.Secret
		}
		if r.Guess != want {
			return fmt.Errorf("round %d: guessed %q, secret was %q", i+1, r.Guess, want)
		}
	}
	return nil
}
