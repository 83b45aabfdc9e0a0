package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/guessr/internal/present"
)

func (a *app) replayCmd() *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a session from a file of answers",
		Long: `Feeds the answers in FILE, one per line, to the engine and prints the
transcript. Blank lines and lines starting with # are skipped; "-" reads
standard input. When the answers run out before the session ends, the
replay stops at the pending question. Free-guess secrets are drawn from
GUESSR_SEED, so a file meets the same secrets on every run.

Example file:
  numeric
  yes
  no
  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := readAnswers(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return a.replay(cmd.Context(), cmd.OutOrStdout(), answers, trace)
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", true, "print the execution trace at the end")
	return cmd
}

func readAnswers(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var answers []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		answers = append(answers, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return answers, nil
}

func (a *app) replay(ctx context.Context, out io.Writer, answers []string, trace bool) error {
	tbl, err := a.loadTable()
	if err != nil {
		return err
	}
	script := present.NewScript(answers...)
	sess, err := a.newSession(tbl, present.NewTranscript(script, out), a.cfg.Seed)
	if err != nil {
		return err
	}
	defer sess.Close()

	// A rejected answer suspends the turn too, so keep turning while answers
	// are left.
	for {
		done, err := sess.ctrl.Turn(ctx)
		if err != nil {
			return err
		}
		if done {
			break
		}
		if script.Pending() == 0 {
			st := sess.ctrl.State()
			waiting := st.Target.String()
			if prompts := script.Prompts(); len(prompts) > 0 {
				waiting = prompts[len(prompts)-1].Text
			}
			fmt.Fprintln(out, present.Styles.Muted.Render("answers ran out at: "+waiting))
			break
		}
	}

	fmt.Fprintln(out, renderSummary(sess.ctrl.State(), sess.rounds.results))
	if trace {
		fmt.Fprintln(out, renderTrace(sess.tracker))
	}
	return nil
}
