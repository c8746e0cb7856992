package wordle

import (
	"fmt"
	"strings"

	"crosswarped.com/wordle/pkg/primitives"
)

// promptBuilder accumulates the prompt for one turn. Corrections are appended to the same prompt
// so the oracle sees every rejected reply of the turn.
type promptBuilder struct {
	sb strings.Builder
}

func newPrompt(history []Turn, candidates []primitives.Word, triesLeft int, p SolverParams) *promptBuilder {
	b := &promptBuilder{}
	b.sb.WriteString("You are playing Wordle. Guess a 5-letter word.\n")

	if len(history) > 0 {
		b.sb.WriteString("\nPrevious guesses:\n")
		for _, t := range history {
			fmt.Fprintf(&b.sb, "  %s -> %s\n", t.Guess.Upper(), labels(t))
		}
	}

	if len(candidates) <= p.PromptFullListLimit {
		fmt.Fprintf(&b.sb, "\nValid words: %s\n", joinWords(candidates))
	} else {
		fmt.Fprintf(&b.sb, "\nTop candidates: %s\n", joinWords(candidates[:min(len(candidates), p.PromptTopN)]))
	}

	fmt.Fprintf(&b.sb, "Tries left: %d\n", triesLeft)
	b.sb.WriteString("Reply with ONLY a 5-letter word:")
	return b
}

// correct appends a correction and asks again.
func (b *promptBuilder) correct(correction string) {
	fmt.Fprintf(&b.sb, "\n%s\nTry again:", correction)
}

func (b *promptBuilder) String() string {
	return b.sb.String()
}

// labels renders a turn as "S:GRAY, A:YELLOW, ...".
func labels(t Turn) string {
	parts := make([]string, primitives.WordLength)
	upper := t.Guess.Upper()
	for i, f := range t.Pattern {
		parts[i] = fmt.Sprintf("%c:%s", upper[i], f.Label())
	}
	return strings.Join(parts, ", ")
}

// failureCorrection is appended after a failed oracle call.
func failureCorrection(err error) string {
	return fmt.Sprintf("The previous request failed (%v).", err)
}
