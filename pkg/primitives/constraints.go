package primitives

import (
	"errors"
	"fmt"
)

// unbounded marks a letter whose maximum count has not been proven.
const unbounded int8 = WordLength

// ErrContradictoryFeedback is returned when feedback conflicts with what earlier feedback proved.
// A correct encoder never produces it.
var ErrContradictoryFeedback = errors.New("contradictory feedback")

// Constraints is everything proven about the secret by the feedback seen so far.
//
// The zero value is not ready for use; start from NewConstraints. Constraints is a comparable
// value and Update never mutates its receiver, so earlier states stay valid for inspection.
type Constraints struct {
	fixed    [WordLength]byte
	excluded [WordLength]LetterSet
	minCount [numLetters]int8
	maxCount [numLetters]int8
}

// NewConstraints returns a constraint set that every word satisfies.
func NewConstraints() Constraints {
	var c Constraints
	for i := range c.maxCount {
		c.maxCount[i] = unbounded
	}
	return c
}

// Fixed returns the letter proven at position i, if any.
func (c Constraints) Fixed(i int) (byte, bool) {
	return c.fixed[i], c.fixed[i] != 0
}

// Excluded returns the letters proven not to be at position i.
func (c Constraints) Excluded(i int) LetterSet {
	return c.excluded[i]
}

// MinCount returns the minimum number of times l must occur.
func (c Constraints) MinCount(l byte) int {
	return int(c.minCount[l-minLetter])
}

// MaxCount returns the maximum number of times l may occur, if one has been proven.
func (c Constraints) MaxCount(l byte) (int, bool) {
	m := c.maxCount[l-minLetter]
	return int(m), m != unbounded
}

// Update returns the constraints tightened by the feedback p for guess.
//
// Constraints only ever tighten: minimum counts never decrease, maximum counts never increase and
// a fixed letter is never unset or replaced.
func (c Constraints) Update(guess Word, p Pattern) (Constraints, error) {
	next := c

	// Correct and Present marks per letter in this guess.
	var seen [numLetters]int8
	for i, f := range p {
		if f == Correct || f == Present {
			seen[guess[i]-minLetter]++
		}
	}

	for i, f := range p {
		l := guess[i]
		idx := l - minLetter
		switch f {
		case Correct:
			if prev := next.fixed[i]; prev != 0 && prev != l {
				return c, fmt.Errorf("%w: position %d fixed to %q, got %q", ErrContradictoryFeedback, i+1, prev, l)
			}
			next.fixed[i] = l
		case Present:
			_ = next.excluded[i].Add(l)
		case Absent:
			_ = next.excluded[i].Add(l)
			next.maxCount[idx] = min(next.maxCount[idx], seen[idx])
		default:
			return c, fmt.Errorf("unknown feedback %v at position %d", f, i+1)
		}
	}

	for idx, n := range seen {
		next.minCount[idx] = max(next.minCount[idx], n)
	}

	for idx := range next.minCount {
		if next.minCount[idx] > next.maxCount[idx] {
			return c, fmt.Errorf("%w: letter %q needs at least %d but at most %d",
				ErrContradictoryFeedback, byte(minLetter+idx), next.minCount[idx], next.maxCount[idx])
		}
	}
	for i, l := range next.fixed {
		if l != 0 && next.excluded[i].Contains(l) {
			return c, fmt.Errorf("%w: %q is both fixed and excluded at position %d", ErrContradictoryFeedback, l, i+1)
		}
	}
	return next, nil
}

// Tightens reports whether next is at least as strict as c on every constraint.
func (c Constraints) Tightens(next Constraints) bool {
	for i := range WordLength {
		if c.fixed[i] != 0 && next.fixed[i] != c.fixed[i] {
			return false
		}
		if !next.excluded[i].ContainsAll(c.excluded[i]) {
			return false
		}
	}
	for idx := range numLetters {
		if next.minCount[idx] < c.minCount[idx] || next.maxCount[idx] > c.maxCount[idx] {
			return false
		}
	}
	return true
}

// Matches reports whether w satisfies every constraint.
func (c Constraints) Matches(w Word) bool {
	for i, l := range w {
		if f := c.fixed[i]; f != 0 && f != l {
			return false
		}
		if c.excluded[i].Contains(l) {
			return false
		}
	}
	counts := w.letterCounts()
	for idx, n := range counts {
		if n < c.minCount[idx] || n > c.maxCount[idx] {
			return false
		}
	}
	return true
}

// Violations describes, in position order, every constraint w breaks. It returns nil when w
// satisfies all constraints.
func (c Constraints) Violations(w Word) []string {
	var reasons []string
	for i, l := range w {
		if f := c.fixed[i]; f != 0 && f != l {
			reasons = append(reasons, fmt.Sprintf("Position %d must be '%c'", i+1, upper(f)))
		}
		if c.excluded[i].Contains(l) {
			reasons = append(reasons, fmt.Sprintf("'%c' cannot be in position %d", upper(l), i+1))
		}
	}
	counts := w.letterCounts()
	for idx, n := range counts {
		l := upper(byte(minLetter + idx))
		switch {
		case n < c.minCount[idx]:
			reasons = append(reasons, fmt.Sprintf("'%c' must appear at least %d time(s)", l, c.minCount[idx]))
		case n > c.maxCount[idx] && c.maxCount[idx] == 0:
			reasons = append(reasons, fmt.Sprintf("'%c' is not in the word", l))
		case n > c.maxCount[idx]:
			reasons = append(reasons, fmt.Sprintf("'%c' can appear at most %d time(s)", l, c.maxCount[idx]))
		}
	}
	return reasons
}

func upper(l byte) byte {
	return l - 'a' + 'A'
}
