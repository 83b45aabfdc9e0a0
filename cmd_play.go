package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/httpserver"
	"github.com/robalobadob/guessr/internal/present"
)

// After-session choices.
const (
	choiceRestart    = "restart"
	choiceNewSession = "new session"
	choiceExit       = "exit"
)

func (a *app) playCmd() *cobra.Command {
	var inspectAddr string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Long: `Play in the terminal. Pick a game from the menu, answer the questions,
and choose "quit" to end the session. Afterwards you can restart (round
counters kept), start a new session (counters reset) or exit.

With --inspect (or GUESSR_INSPECT_ADDR) a read-only HTTP inspector serves the
live trace, the state graph and metrics while you play.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("inspect") {
				a.cfg.InspectAddr = inspectAddr
			}
			return a.play(cmd)
		},
	}
	cmd.Flags().StringVar(&inspectAddr, "inspect", "", "serve the live inspector on this address, e.g. 127.0.0.1:8080")
	return cmd
}

func (a *app) play(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	term := present.NewTerminal(cmd.InOrStdin(), out)
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}
	sess, err := a.newSession(tbl, term, "")
	if err != nil {
		return err
	}
	defer sess.Close()

	if addr := a.cfg.InspectAddr; addr != "" {
		stopInspector := startInspector(ctx, sess.inspector(), addr)
		defer stopInspector()
		fmt.Fprintln(out, present.Styles.Muted.Render("inspector on http://"+addr))
	}

	fmt.Fprintln(out, present.Styles.Title.Render("guessr"))
	for {
		err := sess.ctrl.Run(ctx)
		if present.IsAbort(err) {
			fmt.Fprintln(out, renderSummary(sess.ctrl.State(), sess.rounds.results))
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, renderSummary(sess.ctrl.State(), sess.rounds.results))
		choice, err := nextChoice(ctx, term)
		if present.IsAbort(err) {
			return nil
		}
		if err != nil {
			return err
		}
		switch choice {
		case choiceRestart:
			sess.ctrl.Restart()
		case choiceNewSession:
			if err := sess.ctrl.NewSession(); err != nil {
				return err
			}
			sess.rounds.results = nil
		default:
			return nil
		}
	}
}

// nextChoice asks what to do after a session until a known choice is given.
func nextChoice(ctx context.Context, p game.Presenter) (string, error) {
	prompt := game.Prompt{
		Kind:    game.PromptMenu,
		Text:    "What next?",
		Allowed: []string{choiceRestart, choiceNewSession, choiceExit},
	}
	for {
		raw, ok, err := p.Present(ctx, prompt)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		choice := strings.ToLower(strings.TrimSpace(raw))
		if slices.Contains(prompt.Allowed, choice) {
			return choice, nil
		}
		p.Notify(ctx, game.Notice{Level: game.LevelWarning, Text: "Please answer one of: " + strings.Join(prompt.Allowed, ", ")})
	}
}

// startInspector serves srv in the background. The returned stop function
// shuts the server down and waits for it to finish.
func startInspector(ctx context.Context, srv *httpserver.Server, addr string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Start(ctx, addr); err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("inspector stopped")
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
