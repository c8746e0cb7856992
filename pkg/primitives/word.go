package primitives

import (
	"fmt"
	"strings"
)

// WordLength is the fixed number of letters in every guess and secret.
const WordLength = 5

// Word is a normalized, lowercase five letter word.
//
// The zero value is not a valid word; use ParseWord or MustParseWord.
type Word [WordLength]byte

// InvalidWordError reports a guess or secret that is not five ASCII letters.
type InvalidWordError struct {
	Input  string
	Reason string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word %q: %s", e.Input, e.Reason)
}

// ParseWord validates s and returns it as a Word. Case is folded to lowercase; surrounding
// whitespace is not trimmed.
func ParseWord(s string) (Word, error) {
	if len(s) != WordLength {
		return Word{}, &InvalidWordError{Input: s, Reason: fmt.Sprintf("want %d letters, got %d bytes", WordLength, len(s))}
	}
	var w Word
	for i := range WordLength {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < minLetter || c > maxLetter {
			return Word{}, &InvalidWordError{Input: s, Reason: fmt.Sprintf("non-letter %q at position %d", s[i], i+1)}
		}
		w[i] = c
	}
	return w, nil
}

// MustParseWord is like ParseWord but panics on invalid input. Intended for constants and tests.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// IsZero reports whether w is the zero Word.
func (w Word) IsZero() bool {
	return w == Word{}
}

// String returns the lowercase word.
func (w Word) String() string {
	return string(w[:])
}

// Upper returns the uppercase form used in prompts and logs.
func (w Word) Upper() string {
	return strings.ToUpper(w.String())
}

// Count returns how many times l occurs in w.
func (w Word) Count(l byte) int {
	n := 0
	for _, c := range w {
		if c == l {
			n++
		}
	}
	return n
}

// letterCounts returns the multiset of letters in w indexed by letter offset.
func (w Word) letterCounts() [numLetters]int8 {
	var counts [numLetters]int8
	for _, c := range w {
		counts[c-minLetter]++
	}
	return counts
}
