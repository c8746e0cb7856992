package wordle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"crosswarped.com/wordle/pkg/primitives"
)

// Source says how a guess was chosen.
type Source int

const (
	// SourceOpener is the fixed first guess.
	SourceOpener Source = iota
	// SourceSoleCandidate is the only word left; the oracle is not consulted.
	SourceSoleCandidate
	// SourceOracle is a validated oracle reply.
	SourceOracle
	// SourceFallback is the top-ranked candidate, used once the oracle's attempts run out.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceOpener:
		return "opener"
	case SourceSoleCandidate:
		return "sole_candidate"
	case SourceOracle:
		return "oracle"
	case SourceFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// State is a step of a Session.
type State int

const (
	StateAwaitFirstGuess State = iota
	StateHasCandidates
	StateSoleCandidate
	StateMultiCandidate
	StateAskOracle
	StateValidateReply
	StateAccepted
	StateRejected
	StateGuessChosen
	StateGameWon
	StateGameLost
)

var stateNames = [...]string{
	StateAwaitFirstGuess: "await_first_guess",
	StateHasCandidates:   "has_candidates",
	StateSoleCandidate:   "sole_candidate",
	StateMultiCandidate:  "multi_candidate",
	StateAskOracle:       "ask_oracle",
	StateValidateReply:   "validate_reply",
	StateAccepted:        "accepted",
	StateRejected:        "rejected",
	StateGuessChosen:     "guess_chosen",
	StateGameWon:         "game_won",
	StateGameLost:        "game_lost",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// GuessAttempt records how one guess was chosen.
type GuessAttempt struct {
	Word   primitives.Word
	Source Source

	// Candidates is the size of the candidate set the guess was chosen from. Zero for the opener.
	Candidates     int
	OracleCalls    int
	InvalidReplies int
	// Failures counts oracle calls that errored or timed out.
	Failures int
	// Valid is false when the oracle never produced an acceptable word and the guess fell back.
	Valid   bool
	Latency time.Duration
}

// Result summarizes a played game.
type Result struct {
	Secret   primitives.Word
	Won      bool
	Tries    int
	Attempts []GuessAttempt
	History  []Turn

	OracleCalls    int
	InvalidReplies int
	Failures       int
	Fallbacks      int
	Latency        time.Duration
}

func (r *Result) add(a GuessAttempt, t Turn) {
	r.Attempts = append(r.Attempts, a)
	r.History = append(r.History, t)
	r.OracleCalls += a.OracleCalls
	r.InvalidReplies += a.InvalidReplies
	r.Failures += a.Failures
	if a.Source == SourceFallback {
		r.Fallbacks++
	}
}

// Completion scores the last guess: 1 per green letter, 0.5 per yellow.
func (r Result) Completion() float64 {
	if len(r.History) == 0 {
		return 0
	}
	return r.History[len(r.History)-1].Pattern.Completion()
}

const (
	DefaultOpener              = "salet"
	DefaultMaxAttempts         = 3
	DefaultPromptFullListLimit = 15
	DefaultPromptTopN          = 10
)

type SolverParams struct {
	// Opener is always the first guess.
	Opener string
	// MaxAttempts bounds oracle calls per turn, failed calls included.
	MaxAttempts int
	MaxTries    int
	// PromptFullListLimit is the largest candidate set listed in full; larger sets are cut to
	// PromptTopN.
	PromptFullListLimit int
	PromptTopN          int
	// OracleTimeout bounds each oracle call. Zero means no per-call timeout.
	OracleTimeout time.Duration
}

func DefaultSolverParams() SolverParams {
	return SolverParams{
		Opener:              DefaultOpener,
		MaxAttempts:         DefaultMaxAttempts,
		MaxTries:            DefaultMaxTries,
		PromptFullListLimit: DefaultPromptFullListLimit,
		PromptTopN:          DefaultPromptTopN,
	}
}

func (p SolverParams) withDefaults() SolverParams {
	d := DefaultSolverParams()
	if p.Opener == "" {
		p.Opener = d.Opener
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = d.MaxAttempts
	}
	if p.MaxTries <= 0 {
		p.MaxTries = d.MaxTries
	}
	if p.PromptFullListLimit <= 0 {
		p.PromptFullListLimit = d.PromptFullListLimit
	}
	if p.PromptTopN <= 0 {
		p.PromptTopN = d.PromptTopN
	}
	return p
}

// Solver chooses guesses over a fixed word list. It holds no per-game state and is safe for
// concurrent use as long as its Oracle is.
type Solver struct {
	words  *primitives.WordList
	oracle Oracle
	params SolverParams
	opener primitives.Word
	logger *zap.Logger
}

type Option func(*Solver)

func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		s.logger = l
	}
}

// CreateSolver returns a solver over words. Zero fields of params take their defaults. A nil
// oracle makes every multi-candidate turn fall back to the top-ranked candidate.
func CreateSolver(words *primitives.WordList, oracle Oracle, params SolverParams, opts ...Option) (*Solver, error) {
	if words == nil || words.Len() == 0 {
		return nil, errors.New("word list is empty")
	}
	params = params.withDefaults()
	opener, err := primitives.ParseWord(params.Opener)
	if err != nil {
		return nil, fmt.Errorf("opener: %w", err)
	}

	s := &Solver{
		words:  words,
		oracle: oracle,
		params: params,
		opener: opener,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Solver) Params() SolverParams {
	return s.params
}

func (s *Solver) Words() *primitives.WordList {
	return s.words
}

// WithParams returns a solver sharing s's words, oracle and logger but playing with params.
func (s *Solver) WithParams(params SolverParams) (*Solver, error) {
	return CreateSolver(s.words, s.oracle, params, WithLogger(s.logger))
}

// Play drives g to the end. A loss is a normal Result; errors are reserved for cancellation,
// inconsistent feedback and an exhausted candidate set.
func (s *Solver) Play(ctx context.Context, g *Game) (Result, error) {
	start := time.Now()
	ss := s.newSession(g.MaxTries())
	res := Result{Secret: g.Secret()}
	logger := s.logger.With(zap.Stringer("secret", g.Secret()))
	logger.Debug("game started", zap.Int("max_tries", g.MaxTries()))

	for g.Status() == StatusPlaying {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		attempt, err := ss.NextGuess(ctx)
		if err != nil {
			return res, err
		}
		p, err := g.Guess(attempt.Word)
		if err != nil {
			return res, err
		}
		res.add(attempt, Turn{Guess: attempt.Word, Pattern: p})

		logger.Debug("guess",
			zap.Int("try", g.Tries()),
			zap.String("row", p.Emoji()+" "+attempt.Word.Upper()),
			zap.Stringer("source", attempt.Source),
			zap.Int("candidates", attempt.Candidates),
			zap.Int("oracle_calls", attempt.OracleCalls),
		)

		if err := ss.Observe(attempt.Word, p); err != nil {
			return res, err
		}
	}

	res.Won = g.Status() == StatusWon
	res.Tries = g.Tries()
	res.Latency = time.Since(start)
	logger.Info("game over",
		zap.Bool("won", res.Won),
		zap.Int("tries", res.Tries),
		zap.Int("oracle_calls", res.OracleCalls),
		zap.Int("invalid_replies", res.InvalidReplies),
	)
	return res, nil
}

// Session is the solver's side of one game: the constraints proven so far and the candidates
// that satisfy them. It is not safe for concurrent use.
type Session struct {
	solver   *Solver
	maxTries int
	logger   *zap.Logger

	constraints primitives.Constraints
	history     []Turn
	candidates  []primitives.Word
	state       State
}

// NewSession starts a session for a game of SolverParams.MaxTries guesses.
func (s *Solver) NewSession() *Session {
	return s.newSession(s.params.MaxTries)
}

func (s *Solver) newSession(maxTries int) *Session {
	return &Session{
		solver:      s,
		maxTries:    maxTries,
		logger:      s.logger,
		constraints: primitives.NewConstraints(),
		state:       StateAwaitFirstGuess,
	}
}

func (ss *Session) State() State {
	return ss.state
}

// Candidates returns the words still consistent with the feedback. The slice must not be
// modified. It is nil before the first Observe.
func (ss *Session) Candidates() []primitives.Word {
	return ss.candidates
}

func (ss *Session) Constraints() primitives.Constraints {
	return ss.constraints
}

func (ss *Session) History() []Turn {
	out := make([]Turn, len(ss.history))
	copy(out, ss.history)
	return out
}

func (ss *Session) TriesLeft() int {
	return ss.maxTries - len(ss.history)
}

func (ss *Session) enter(st State) {
	ss.state = st
	ss.logger.Debug("state", zap.Stringer("state", st), zap.Int("turn", len(ss.history)+1))
}

// Observe folds the feedback for guess into the session and recomputes the candidates.
func (ss *Session) Observe(guess primitives.Word, p primitives.Pattern) error {
	if ss.state == StateGameWon || ss.state == StateGameLost {
		return ErrGameOver
	}
	next, err := ss.constraints.Update(guess, p)
	if err != nil {
		return err
	}
	ss.constraints = next
	ss.history = append(ss.history, Turn{Guess: guess, Pattern: p})

	switch {
	case p.Solved():
		ss.enter(StateGameWon)
		return nil
	case len(ss.history) >= ss.maxTries:
		ss.enter(StateGameLost)
		return nil
	}

	ss.candidates = ss.solver.words.Filter(next)
	if len(ss.candidates) == 0 {
		return &NoCandidatesError{History: ss.History()}
	}
	ss.enter(StateHasCandidates)
	return nil
}

// NextGuess chooses the next guess. Only the oracle path blocks.
func (ss *Session) NextGuess(ctx context.Context) (GuessAttempt, error) {
	start := time.Now()
	var attempt GuessAttempt

	switch ss.state {
	case StateGameWon, StateGameLost:
		return attempt, ErrGameOver
	case StateAwaitFirstGuess:
		attempt = GuessAttempt{Word: ss.solver.opener, Source: SourceOpener, Valid: true}
	default:
		switch len(ss.candidates) {
		case 0:
			return attempt, &NoCandidatesError{History: ss.History()}
		case 1:
			ss.enter(StateSoleCandidate)
			attempt = GuessAttempt{Word: ss.candidates[0], Source: SourceSoleCandidate, Candidates: 1, Valid: true}
		default:
			ss.enter(StateMultiCandidate)
			var err error
			if attempt, err = ss.askOracle(ctx); err != nil {
				return attempt, err
			}
		}
	}

	attempt.Latency = time.Since(start)
	ss.enter(StateGuessChosen)
	return attempt, nil
}

func (ss *Session) askOracle(ctx context.Context) (GuessAttempt, error) {
	s := ss.solver
	attempt := GuessAttempt{Candidates: len(ss.candidates)}
	prompt := newPrompt(ss.history, ss.candidates, ss.TriesLeft(), s.params)

	for s.oracle != nil && attempt.OracleCalls < s.params.MaxAttempts {
		ss.enter(StateAskOracle)
		reply, err := ss.ask(ctx, prompt.String())
		attempt.OracleCalls++
		if err != nil {
			if ctx.Err() != nil {
				return attempt, ctx.Err()
			}
			attempt.Failures++
			ss.logger.Warn("oracle call failed", zap.Int("attempt", attempt.OracleCalls), zap.Error(err))

			var ue *OracleUnavailableError
			if errors.As(err, &ue) {
				err = ue.Err
			}
			prompt.correct(failureCorrection(err))
			continue
		}

		ss.enter(StateValidateReply)
		cw, err := ValidateReply(reply, ss.candidates, ss.constraints)
		if err != nil {
			attempt.InvalidReplies++
			ss.enter(StateRejected)
			ss.logger.Warn("oracle reply rejected",
				zap.Int("attempt", attempt.OracleCalls),
				zap.String("reply", reply),
				zap.Error(err),
			)

			var ire *InvalidOracleReplyError
			if errors.As(err, &ire) {
				prompt.correct(ire.Correction())
			}
			continue
		}

		ss.enter(StateAccepted)
		attempt.Word = cw.Word()
		attempt.Source = SourceOracle
		attempt.Valid = true
		return attempt, nil
	}

	attempt.Word = ss.candidates[0]
	attempt.Source = SourceFallback
	// Without an oracle the top candidate is the intended pick, not a failure.
	attempt.Valid = s.oracle == nil
	if s.oracle != nil {
		ss.logger.Warn("oracle attempts exhausted, falling back to top candidate",
			zap.Stringer("guess", attempt.Word),
			zap.Int("oracle_calls", attempt.OracleCalls),
		)
	}
	return attempt, nil
}

// ask makes one oracle call under the per-call timeout.
func (ss *Session) ask(ctx context.Context, prompt string) (string, error) {
	if t := ss.solver.params.OracleTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	reply, err := ss.solver.oracle.Ask(ctx, prompt)
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		// The oracle ignored the deadline; a late reply still counts as a timeout.
		return "", &OracleUnavailableError{Err: ctx.Err()}
	}
	return reply, nil
}
