package wordle

import (
	"errors"
	"fmt"
	"strings"

	"crosswarped.com/wordle/pkg/primitives"
)

// DefaultMaxTries is the number of guesses in a standard game.
const DefaultMaxTries = 6

// ErrGameOver is returned by Guess once the game is won or lost.
var ErrGameOver = errors.New("game is over")

// Status is the state of a Game.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "playing"
	}
}

// Turn is one guess and the feedback it received.
type Turn struct {
	Guess   primitives.Word
	Pattern primitives.Pattern
}

// Game holds a secret and scores guesses against it.
//
// Solvers only ever see the feedback returned by Guess.
type Game struct {
	secret   primitives.Word
	maxTries int
	history  []Turn
	status   Status
}

// NewGame starts a game for secret. A maxTries of zero or less means DefaultMaxTries.
func NewGame(secret string, maxTries int) (*Game, error) {
	w, err := primitives.ParseWord(secret)
	if err != nil {
		return nil, err
	}
	if maxTries <= 0 {
		maxTries = DefaultMaxTries
	}
	return &Game{secret: w, maxTries: maxTries}, nil
}

// Guess scores w against the secret.
func (g *Game) Guess(w primitives.Word) (primitives.Pattern, error) {
	if g.status != StatusPlaying {
		return primitives.Pattern{}, ErrGameOver
	}
	if w.IsZero() {
		return primitives.Pattern{}, &primitives.InvalidWordError{Input: "", Reason: "empty guess"}
	}

	p := primitives.Encode(w, g.secret)
	g.history = append(g.history, Turn{Guess: w, Pattern: p})
	switch {
	case p.Solved():
		g.status = StatusWon
	case len(g.history) >= g.maxTries:
		g.status = StatusLost
	}
	return p, nil
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Tries() int {
	return len(g.history)
}

func (g *Game) MaxTries() int {
	return g.maxTries
}

func (g *Game) TriesLeft() int {
	return g.maxTries - len(g.history)
}

// History returns a copy of the turns played so far.
func (g *Game) History() []Turn {
	out := make([]Turn, len(g.history))
	copy(out, g.history)
	return out
}

// Secret is for reporting once the game is over.
func (g *Game) Secret() primitives.Word {
	return g.secret
}

// Repr renders the board as one emoji row per guess, followed by the guess.
func (g *Game) Repr() string {
	lines := make([]string, len(g.history))
	for i, t := range g.history {
		lines[i] = t.Pattern.Emoji() + " " + t.Guess.Upper()
	}
	return strings.Join(lines, "\n")
}

func (g *Game) DebugString() string {
	return fmt.Sprintf("Game{secret: %s, status: %s, tries: %d/%d, history: %v}",
		g.secret, g.status, len(g.history), g.maxTries, g.history)
}
