package primitives

import (
	"fmt"
	"strings"
)

// Feedback is the result for a single letter of a guess.
type Feedback uint8

const (
	// Absent means the letter is not in the secret, or every occurrence is already accounted for.
	Absent Feedback = iota
	// Present means the letter is in the secret at a different position.
	Present
	// Correct means the letter is in the secret at this position.
	Correct
)

// Label returns the label used in oracle prompts.
func (f Feedback) Label() string {
	switch f {
	case Correct:
		return "GREEN"
	case Present:
		return "YELLOW"
	default:
		return "GRAY"
	}
}

func (f Feedback) String() string {
	switch f {
	case Correct:
		return "Correct"
	case Present:
		return "Present"
	case Absent:
		return "Absent"
	default:
		return fmt.Sprintf("Feedback(%d)", uint8(f))
	}
}

// Pattern is the feedback for every position of a guess.
type Pattern [WordLength]Feedback

// Solved reports whether every letter is Correct.
func (p Pattern) Solved() bool {
	return p == Pattern{Correct, Correct, Correct, Correct, Correct}
}

// Emoji renders the pattern as a row of colored squares.
func (p Pattern) Emoji() string {
	var sb strings.Builder
	for _, f := range p {
		switch f {
		case Correct:
			sb.WriteString("🟩")
		case Present:
			sb.WriteString("🟨")
		default:
			sb.WriteString("⬛")
		}
	}
	return sb.String()
}

// Compact renders the pattern as g/y/b characters, the format accepted by ParsePattern.
func (p Pattern) Compact() string {
	b := make([]byte, WordLength)
	for i, f := range p {
		switch f {
		case Correct:
			b[i] = 'g'
		case Present:
			b[i] = 'y'
		default:
			b[i] = 'b'
		}
	}
	return string(b)
}

// Completion scores the pattern with 1 per Correct letter and 0.5 per Present letter.
func (p Pattern) Completion() float64 {
	score := 0.0
	for _, f := range p {
		switch f {
		case Correct:
			score += 1
		case Present:
			score += 0.5
		}
	}
	return score
}

// ParsePattern parses a compact pattern such as "gyybb" (g = Correct, y = Present, b or - = Absent).
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	if len(s) != WordLength {
		return p, fmt.Errorf("pattern %q: want %d symbols, got %d", s, WordLength, len(s))
	}
	for i := range WordLength {
		switch s[i] {
		case 'g', 'G':
			p[i] = Correct
		case 'y', 'Y':
			p[i] = Present
		case 'b', 'B', '-', '.':
			p[i] = Absent
		default:
			return p, fmt.Errorf("pattern %q: unknown symbol %q at position %d", s, s[i], i+1)
		}
	}
	return p, nil
}

// Encode compares guess against secret.
//
// Correct positions are marked first and consume the secret's letters; the remaining positions
// are then marked left to right, Present while an unconsumed copy of the letter is left and
// Absent afterwards.
func Encode(guess, secret Word) Pattern {
	var p Pattern
	pool := secret.letterCounts()

	for i := range WordLength {
		if guess[i] == secret[i] {
			p[i] = Correct
			pool[guess[i]-minLetter]--
		}
	}

	for i := range WordLength {
		if p[i] == Correct {
			continue
		}
		if idx := guess[i] - minLetter; pool[idx] > 0 {
			p[i] = Present
			pool[idx]--
		}
	}
	return p
}

// EncodeStrings parses both words and encodes the guess against the secret.
func EncodeStrings(guess, secret string) (Pattern, error) {
	g, err := ParseWord(guess)
	if err != nil {
		return Pattern{}, err
	}
	s, err := ParseWord(secret)
	if err != nil {
		return Pattern{}, err
	}
	return Encode(g, s), nil
}
