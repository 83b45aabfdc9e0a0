// main.go
//
// Entry point for the guessr CLI.
// Responsibilities:
//   - Load configuration (.env, environment, then flags).
//   - Configure zerolog (console writer on stderr, level from LOG_LEVEL).
//   - Dispatch to the play / simulate / replay / graph / inspect commands.
//
// A fault in the state machine (an unknown routing target, or a step no
// strategy owns) is fatal; every other error exits with status 1.

package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessr/internal/config"
	"github.com/robalobadob/guessr/internal/game"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if isFatal(err) {
			log.Fatal().Err(err).Msg("state machine fault")
		}
		os.Exit(1)
	}
}

// isFatal reports whether err is a fault in the state machine itself.
func isFatal(err error) bool {
	return errors.Is(err, game.ErrUnknownStep) || errors.Is(err, game.ErrNoStrategy)
}

// app carries what every command shares.
type app struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "guessr",
		Short: "A turn-based guessing game that guesses your number or your word",
		Long: `guessr plays two guessing games against you:

  numeric  think of a number in a range; it finds it by halving the range
  word     think of a word from its list; it narrows the list with yes/no clues

Configuration comes from a .env file, the environment (LOG_LEVEL,
GUESSR_NUMERIC_MIN, GUESSR_NUMERIC_MAX, GUESSR_WORDS_FILE, GUESSR_AUDIT_DB,
GUESSR_INSPECT_ADDR, GUESSR_SEED) and the flags below, in that order.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.init(cmd) },
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL)")
	pf.Int("min", 0, "lowest number for the numeric game (default from GUESSR_NUMERIC_MIN)")
	pf.Int("max", 0, "highest number for the numeric game (default from GUESSR_NUMERIC_MAX)")
	pf.String("words", "", "YAML word/clue table (default: embedded table)")
	pf.String("audit-db", "", "SQLite file to record steps and rounds in (default: off)")

	root.AddCommand(
		a.playCmd(),
		a.simulateCmd(),
		a.replayCmd(),
		graphCmd(),
		a.inspectCmd(),
	)
	return root
}

// init loads configuration, applies flag overrides and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("min") {
		cfg.NumericMin, _ = f.GetInt("min")
	}
	if f.Changed("max") {
		cfg.NumericMax, _ = f.GetInt("max")
	}
	if f.Changed("words") {
		cfg.WordsFile, _ = f.GetString("words")
	}
	if f.Changed("audit-db") {
		cfg.AuditDB, _ = f.GetString("audit-db")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	setupLogging(cfg.Level(), cmd.ErrOrStderr())
	return nil
}

func setupLogging(lvl zerolog.Level, w io.Writer) {
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
}
