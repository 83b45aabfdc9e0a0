package main

import (
	"fmt"
	"strings"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/present"
)

// renderSummary boxes the session counters and the finished rounds.
func renderSummary(st *game.State, rounds []game.RoundResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", present.Styles.Title.Render("Session "+shortID(st.SessionID)))
	fmt.Fprintf(&b, "numeric rounds: %d   word rounds: %d   guess rounds: %d\n", st.NumericRounds, st.WordRounds, st.GuessRounds)
	if len(st.History) > 0 {
		names := make([]string, len(st.History))
		for i, k := range st.History {
			names[i] = string(k)
		}
		fmt.Fprintf(&b, "history: %s\n", strings.Join(names, ", "))
	}

	for i, r := range rounds {
		line := fmt.Sprintf("%2d. %-7s %-8s", i+1, r.Game, r.Outcome)
		if r.Guess != "" {
			line += " guess=" + r.Guess
		}
		line += fmt.Sprintf(" questions=%d", r.Questions)
		if r.Retries > 0 {
			line += fmt.Sprintf(" retries=%d", r.Retries)
		}
		style := present.Styles.Success
		if r.Outcome == game.OutcomeLost || r.Outcome == game.OutcomeAborted {
			style = present.Styles.Warning
		}
		b.WriteString(style.Render(line))
		b.WriteByte('\n')
	}
	if len(rounds) == 0 {
		b.WriteString(present.Styles.Muted.Render("no rounds played"))
		b.WriteByte('\n')
	}
	return present.Styles.Box.Render(strings.TrimRight(b.String(), "\n"))
}

// renderTrace lists tracker records, one per line.
func renderTrace(tr *game.Tracker) string {
	var b strings.Builder
	b.WriteString(present.Styles.Title.Render("Trace"))
	b.WriteByte('\n')
	for rec := range tr.Steps() {
		fmt.Fprintf(&b, "%4d  %-24s → %-24s %s\n", rec.Seq, rec.Step, rec.Next, present.Styles.Muted.Render(rec.Action))
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
