package wordle

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"crosswarped.com/wordle/pkg/primitives"
)

// Oracle picks a word given a prompt. Implementations live in the oracle package and wrap
// transport failures and timeouts as *OracleUnavailableError.
type Oracle interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, prompt string) (string, error)

func (f OracleFunc) Ask(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// OracleUnavailableError is a failed or timed out oracle call. The solver retries it within the
// turn's attempt budget.
type OracleUnavailableError struct {
	Err error
}

func (e *OracleUnavailableError) Error() string {
	return fmt.Sprintf("oracle unavailable: %v", e.Err)
}

func (e *OracleUnavailableError) Unwrap() error {
	return e.Err
}

// Rejection says why a reply did not pass ValidateReply.
type Rejection int

const (
	// NotAWord means the reply is not five ASCII letters.
	NotAWord Rejection = iota
	// BreaksConstraints means the word contradicts earlier feedback.
	BreaksConstraints
	// NotACandidate means the word satisfies the feedback but is not in the word list.
	NotACandidate
)

// InvalidOracleReplyError is an oracle reply that was rejected by ValidateReply.
type InvalidOracleReplyError struct {
	Reply  string
	Reason Rejection

	// Violations holds the broken constraints when Reason is BreaksConstraints.
	Violations []string
	// Suggestions holds the top candidates when Reason is NotACandidate.
	Suggestions []primitives.Word
}

func (e *InvalidOracleReplyError) Error() string {
	switch e.Reason {
	case BreaksConstraints:
		return fmt.Sprintf("reply %q breaks %d constraint(s)", e.Reply, len(e.Violations))
	case NotACandidate:
		return fmt.Sprintf("reply %q is not a candidate", e.Reply)
	default:
		return fmt.Sprintf("reply %q is not a %d-letter word", e.Reply, primitives.WordLength)
	}
}

// maxReasons caps how many violated constraints a correction lists.
const maxReasons = 3

// Correction is the line appended to the prompt before asking again.
func (e *InvalidOracleReplyError) Correction() string {
	switch e.Reason {
	case BreaksConstraints:
		reasons := e.Violations[:min(len(e.Violations), maxReasons)]
		return fmt.Sprintf("'%s' is invalid: %s", strings.ToUpper(e.Reply), strings.Join(reasons, "; "))
	case NotACandidate:
		return fmt.Sprintf("'%s' not in word list. Pick from: %s", strings.ToUpper(e.Reply), joinWords(e.Suggestions))
	default:
		return fmt.Sprintf("'%s' is not a %d-letter word.", e.Reply, primitives.WordLength)
	}
}

// NoCandidatesError means no word in the list is consistent with the feedback so far. It points
// at inconsistent feedback or a word list that does not contain the secret.
type NoCandidatesError struct {
	History []Turn
}

func (e *NoCandidatesError) Error() string {
	guesses := make([]string, len(e.History))
	for i, t := range e.History {
		guesses[i] = t.Guess.Upper() + ":" + t.Pattern.Compact()
	}
	return fmt.Sprintf("no candidates left after %d guess(es) [%s]", len(e.History), strings.Join(guesses, " "))
}

// CandidateWord is an oracle reply that passed ValidateReply. It is always a member of the
// candidate set it was validated against.
type CandidateWord struct {
	word primitives.Word
}

func (c CandidateWord) Word() primitives.Word {
	return c.word
}

func (c CandidateWord) String() string {
	return c.word.String()
}

// suggestions is how many candidates a NotACandidate correction offers.
const suggestions = 5

// ValidateReply turns raw oracle text into a CandidateWord.
//
// Surrounding whitespace, quotes and punctuation are trimmed and case is folded. The rest must be
// exactly five ASCII letters naming a word in candidates; anything else is an
// *InvalidOracleReplyError.
func ValidateReply(reply string, candidates []primitives.Word, c primitives.Constraints) (CandidateWord, error) {
	normalized := normalizeReply(reply)

	w, err := primitives.ParseWord(normalized)
	if err != nil {
		return CandidateWord{}, &InvalidOracleReplyError{Reply: truncate(normalized), Reason: NotAWord}
	}
	for _, cand := range candidates {
		if cand == w {
			return CandidateWord{word: w}, nil
		}
	}
	if v := c.Violations(w); len(v) > 0 {
		return CandidateWord{}, &InvalidOracleReplyError{Reply: w.String(), Reason: BreaksConstraints, Violations: v}
	}
	return CandidateWord{}, &InvalidOracleReplyError{
		Reply:       w.String(),
		Reason:      NotACandidate,
		Suggestions: candidates[:min(len(candidates), suggestions)],
	}
}

func normalizeReply(reply string) string {
	return strings.TrimFunc(reply, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

const maxEchoedReply = 20

// truncate shortens long replies before they are echoed back to the oracle.
func truncate(s string) string {
	if len(s) <= maxEchoedReply {
		return s
	}
	return s[:maxEchoedReply] + "..."
}

func joinWords(words []primitives.Word) string {
	ss := make([]string, len(words))
	for i, w := range words {
		ss[i] = w.String()
	}
	return strings.Join(ss, ",")
}
