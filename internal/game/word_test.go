package game_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guessr/internal/game"
	"github.com/robalobadob/guessr/internal/present"
	"github.com/robalobadob/guessr/internal/words"
)

func TestWordElephantNarrowsOnThirdClue(t *testing.T) {
	c, sc, rl := newScripted(t, game.DefaultConfig(), "word", "elephant", "yes", "yes")

	turn(t, c)
	s := c.State()
	assert.Equal(t, []string{"elephant", "tiger"}, s.Word.Candidates)
	assert.Equal(t, 2, s.Word.ClueIndex)
	assert.Equal(t, game.StepWordAwait, s.Target)
	require.NotNil(t, s.Prompt)
	assert.Equal(t, "Does it have a trunk?", s.Prompt.Text)

	sc.Push("yes")
	turn(t, c)
	assert.Equal(t, []string{"elephant"}, s.Word.Candidates)
	assert.Equal(t, game.StepWordPropose, s.Target)
	prompts := sc.Prompts()
	last := prompts[len(prompts)-1]
	assert.Equal(t, game.PromptConfirm, last.Kind)
	assert.Equal(t, "elephant", last.Guess)

	sc.Push("yes")
	turn(t, c)
	require.Len(t, rl.rounds, 1)
	assert.Equal(t, game.OutcomeWon, rl.rounds[0].Outcome)
	assert.Equal(t, "elephant", rl.rounds[0].Guess)
	assert.Equal(t, 3, rl.rounds[0].Questions)
	assert.Equal(t, 1, c.State().WordRounds)
	assert.Equal(t, []game.Kind{game.KindWord}, c.State().History)
	assert.Empty(t, c.State().Word.Candidates, "round state cleared")
}

// Answers that rule out every word reset the round instead of failing.
func TestWordEmptyCandidateSetResets(t *testing.T) {
	c, sc, _ := newScripted(t, game.DefaultConfig(), "word", "pizza", "no", "yes")

	turn(t, c)

	tbl, err := words.Default()
	require.NoError(t, err)
	s := c.State()
	assert.Equal(t, tbl.All(), s.Word.Candidates)
	assert.Equal(t, 0, s.Word.ClueIndex)
	assert.Equal(t, 1, s.Word.Retries)
	assert.Equal(t, game.KindWord, s.Game)
	assert.Equal(t, game.StepWordAwait, s.Target)
	require.NotNil(t, s.Prompt)
	assert.Equal(t, "Is it a living thing?", s.Prompt.Text)

	var warned bool
	for _, n := range sc.Notices() {
		warned = warned || (n.Level == game.LevelWarning && n.Text != "")
	}
	assert.True(t, warned)
}

func TestWordRejectedGuessRetries(t *testing.T) {
	// apple is the only living thing that is not an animal; "no" at the
	// confirmation sends the round back to clue one.
	c, sc, rl := newScripted(t, game.DefaultConfig(), "word", "apple", "yes", "no")

	turn(t, c)
	s := c.State()
	require.Equal(t, game.StepWordPropose, s.Target)
	assert.Equal(t, []string{"apple"}, s.Word.Candidates)

	sc.Push("no")
	turn(t, c)
	assert.Equal(t, 1, s.Word.Retries)
	assert.Equal(t, 0, s.Word.ClueIndex)
	assert.Len(t, s.Word.Candidates, 8)
	assert.Empty(t, rl.rounds)
	assert.Equal(t, "Oops! Let me try again.", sc.Notices()[len(sc.Notices())-1].Text)
}

func TestWordBestEffortLostRevealsSecret(t *testing.T) {
	tbl, err := words.NewTable([]string{"cat", "dog"}, []words.Clue{
		{Question: "Is it a pet?", Predicate: words.NewOneOf("cat", "dog")},
	})
	require.NoError(t, err)
	s, err := game.NewState(game.DefaultConfig())
	require.NoError(t, err)
	sc := present.NewScript("word", "dog", "yes", "no")
	rl := &roundLog{}
	c := game.NewController(s, sc, game.WithStrategies(game.NewWord(tbl)), game.WithObserver(rl))

	turn(t, c)

	require.Len(t, rl.rounds, 1)
	r := rl.rounds[0]
	assert.Equal(t, game.OutcomeLost, r.Outcome)
	assert.Equal(t, "cat", r.Guess)
	assert.Equal(t, "dog", r.Secret)
	assert.Equal(t, 1, s.WordRounds, "a lost round still counts")
	notices := sc.Notices()
	assert.Contains(t, notices[len(notices)-1].Text, `"dog"`)
}

func TestWordSecretMustBeInList(t *testing.T) {
	c, sc, _ := newScripted(t, game.DefaultConfig(), "word", "banana")

	turn(t, c)
	s := c.State()
	assert.Equal(t, game.StepWordBegin, s.Target)
	assert.Empty(t, s.Word.Candidates)
	require.Len(t, sc.Notices(), 1)
	assert.Contains(t, sc.Notices()[0].Text, `"banana" is not in the list`)

	sc.Push("   ") // blank is no answer
	turn(t, c)
	assert.Equal(t, game.StepWordBegin, s.Target)
	assert.Len(t, sc.Notices(), 1)

	sc.Push(" Tiger ")
	turn(t, c)
	assert.Equal(t, "tiger", s.Word.Secret)
	assert.Equal(t, game.StepWordAwait, s.Target)
}

// A predicate that faults drops only the word it faulted on.
func TestWordPredicateFaultDropsWord(t *testing.T) {
	boom := errors.New("boom")
	tbl, err := words.NewTable([]string{"ant", "bee", "cow"}, []words.Clue{
		{Question: "Does it fly?", Predicate: words.PredicateFunc(func(w string) (bool, error) {
			if w == "ant" {
				return false, boom
			}
			return w == "bee", nil
		})},
		{Question: "Does it moo?", Predicate: words.NewOneOf("cow")},
	})
	require.NoError(t, err)
	s, err := game.NewState(game.DefaultConfig())
	require.NoError(t, err)
	sc := present.NewScript("word", "cow", "no")
	c := game.NewController(s, sc, game.WithStrategies(game.NewWord(tbl)))

	turn(t, c)

	assert.Equal(t, []string{"cow"}, s.Word.Candidates)
	assert.Equal(t, game.StepWordPropose, s.Target)
	require.NotEmpty(t, sc.Notices())
	assert.Equal(t, game.LevelWarning, sc.Notices()[0].Level)
}

// clueAnswerer answers clue prompts truthfully for secret and records the
// candidate set each time a clue is asked.
func clueAnswerer(t *testing.T, secret string, c **game.Controller, sizes *[]int, confirmSeen *[]string) *player {
	played := false
	return &player{answer: func(pr game.Prompt) (string, error) {
		switch pr.Kind {
		case game.PromptMenu:
			if played {
				return game.MenuQuit, nil
			}
			played = true
			return string(game.KindWord), nil
		case game.PromptSecret:
			return secret, nil
		case game.PromptClue:
			*sizes = append(*sizes, len((*c).State().Word.Candidates))
			ok, err := pr.Clue.Predicate.Eval(secret)
			require.NoError(t, err)
			return yesNo(ok), nil
		case game.PromptConfirm:
			*confirmSeen = append(*confirmSeen, (*c).State().Word.Candidates...)
			return yesNo(pr.Guess == secret), nil
		}
		return "", unexpected(pr)
	}}
}

// Truthful answers always leave exactly the secret before the confirmation,
// and the candidate set never grows along the way.
func TestWordTruthfulAnswersIsolateSecret(t *testing.T) {
	tbl, err := words.Default()
	require.NoError(t, err)
	for _, secret := range tbl.All() {
		t.Run(secret, func(t *testing.T) {
			var (
				c       *game.Controller
				sizes   []int
				atFinal []string
			)
			p := clueAnswerer(t, secret, &c, &sizes, &atFinal)
			s, err := game.NewState(game.DefaultConfig())
			require.NoError(t, err)
			rl := &roundLog{}
			c = game.NewController(s, p, game.WithStrategies(game.NewWord(tbl)), game.WithObserver(rl))

			require.NoError(t, c.Run(context.Background()))

			assert.Equal(t, []string{secret}, atFinal)
			for i := 1; i < len(sizes); i++ {
				assert.LessOrEqual(t, sizes[i], sizes[i-1], "candidate set grew at clue %d", i+1)
			}
			require.Len(t, rl.rounds, 1)
			assert.Equal(t, game.OutcomeWon, rl.rounds[0].Outcome)
			assert.Equal(t, 0, rl.rounds[0].Retries)
			assert.Empty(t, p.notices[:len(p.notices)-1], "only the win is announced")
		})
	}
}

func TestWordExecRejectsForeignStep(t *testing.T) {
	tbl, err := words.Default()
	require.NoError(t, err)
	s, err := game.NewState(game.DefaultConfig())
	require.NoError(t, err)
	_, err = game.NewWord(tbl).Exec(context.Background(), game.StepNumericApply, s, &player{})
	assert.ErrorIs(t, err, game.ErrUnknownStep)
}
