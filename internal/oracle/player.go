// internal/oracle/player.go
//
// Simulated player for self-play.
//
// Responsibilities:
//   - Choose a game per round from a fixed schedule and a secret per round
//     from the seed, so a seed always replays the same session.
//   - Answer every prompt truthfully for the current secret.
//   - In the free-guess game, where the engine holds the secret, guess the
//     middle of the hinted range.
//   - Quit from the menu once the requested number of rounds is played.

package oracle

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessr/internal/game"
)

// Player is a game.Presenter that never lies and never hesitates.
type Player struct {
	seed     string
	rounds   int
	schedule []game.Kind
	cfg      game.Config
	list     []string

	mu      sync.Mutex
	played  int
	number  int
	word    string
	secrets []string
	notices []game.Notice
}

// NewPlayer returns a player that plays rounds rounds, cycling through
// schedule, with numbers drawn from cfg's range and words from list.
func NewPlayer(seed string, rounds int, schedule []game.Kind, cfg game.Config, list []string) (*Player, error) {
	if len(schedule) == 0 && rounds > 0 {
		return nil, fmt.Errorf("oracle: empty game schedule")
	}
	for _, k := range schedule {
		if k == game.KindWord && len(list) == 0 {
			return nil, fmt.Errorf("oracle: word rounds scheduled without a word list")
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Player{
		seed:     seed,
		rounds:   rounds,
		schedule: slices.Clone(schedule),
		cfg:      cfg,
		list:     slices.Clone(list),
	}, nil
}

// Present implements game.Presenter.
func (p *Player) Present(_ context.Context, pr game.Prompt) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch pr.Kind {
	case game.PromptMenu:
		return p.chooseLocked(pr.Allowed)
	case game.PromptGreater:
		return yesNo(p.number > pr.Mid), true, nil
	case game.PromptClue:
		if pr.Clue == nil {
			return "", false, fmt.Errorf("oracle: clue prompt %q without a clue", pr.Text)
		}
		holds, err := pr.Clue.Predicate.Eval(p.word)
		if err != nil {
			// The engine drops words it cannot evaluate; any answer will do.
			log.Debug().Err(err).Str("word", p.word).Msg("oracle could not evaluate clue")
		}
		return yesNo(holds), true, nil
	case game.PromptConfirm:
		return yesNo(pr.Guess == p.word), true, nil
	}
	return "", false, fmt.Errorf("oracle: cannot answer %s prompt %q", pr.Kind, pr.Text)
}

// PresentText implements game.Presenter.
func (p *Player) PresentText(_ context.Context, pr game.Prompt) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch pr.Kind {
	case game.PromptSecret:
		return p.word, true, nil
	case game.PromptGuess:
		if pr.Lower > pr.Upper {
			return "", false, fmt.Errorf("oracle: empty hint range %d..%d", pr.Lower, pr.Upper)
		}
		return strconv.Itoa(game.Midpoint(pr.Lower, pr.Upper)), true, nil
	}
	return "", false, fmt.Errorf("oracle: cannot type an answer to %s prompt %q", pr.Kind, pr.Text)
}

// Notify implements game.Presenter.
func (p *Player) Notify(_ context.Context, n game.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, n)
}

// Secrets returns the secret of every round started so far, in order. Free
// guess rounds have an empty entry: the engine holds that secret.
func (p *Player) Secrets() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.secrets)
}

// Notices returns the notices received so far.
func (p *Player) Notices() []game.Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.notices)
}

func (p *Player) chooseLocked(allowed []string) (string, bool, error) {
	if p.played >= p.rounds {
		return game.MenuQuit, true, nil
	}
	round := p.played
	kind := p.schedule[round%len(p.schedule)]
	if !slices.Contains(allowed, string(kind)) {
		return "", false, fmt.Errorf("oracle: game %q is not on the menu %v", kind, allowed)
	}

	switch kind {
	case game.KindNumeric:
		p.number = p.cfg.Min + Pick(p.seed, round, p.cfg.Size())
		p.secrets = append(p.secrets, strconv.Itoa(p.number))
	case game.KindWord:
		p.word = p.list[Pick(p.seed, round, len(p.list))]
		p.secrets = append(p.secrets, p.word)
	case game.KindGuess:
		p.secrets = append(p.secrets, "")
	}
	p.played++
	log.Debug().Int("round", round+1).Str("game", string(kind)).Msg("oracle picked a round")
	return string(kind), true, nil
}

func yesNo(b bool) string {
	if b {
		return game.Yes
	}
	return game.No
}
