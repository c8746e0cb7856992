package primitives

import (
	"fmt"
	"math/bits"
	"strings"
)

const (
	minLetter = 'a'
	maxLetter = 'z'

	numLetters = 26
)

// LetterSet efficiently represents a set of lowercase ASCII letters.
//
// It is a plain value: copying a LetterSet copies the set, which lets Constraints stay comparable
// and be updated without aliasing.
type LetterSet struct {
	bits uint32
}

// NewLetterSet returns a set holding the given letters.
func NewLetterSet(letters ...byte) (LetterSet, error) {
	var s LetterSet
	for _, l := range letters {
		if err := s.Add(l); err != nil {
			return LetterSet{}, err
		}
	}
	return s, nil
}

// Add adds a letter to the set.
func (s *LetterSet) Add(l byte) error {
	if l < minLetter || l > maxLetter {
		return fmt.Errorf("letter %q is out of range", l)
	}
	s.bits |= 1 << (l - minLetter)
	return nil
}

// AddAll adds all letters from another set to this set.
func (s *LetterSet) AddAll(other LetterSet) {
	s.bits |= other.bits
}

// Contains checks if a letter is in the set.
func (s LetterSet) Contains(l byte) bool {
	if l < minLetter || l > maxLetter {
		return false
	}
	return s.bits&(1<<(l-minLetter)) != 0
}

// ContainsAll reports whether every letter of other is also in s.
func (s LetterSet) ContainsAll(other LetterSet) bool {
	return s.bits&other.bits == other.bits
}

// IsFull checks if the set holds every letter.
func (s LetterSet) IsFull() bool {
	return s.bits == 1<<numLetters-1
}

// Count returns the number of letters in the set.
func (s LetterSet) Count() int {
	return bits.OnesCount32(s.bits)
}

// Letters returns the letters of the set in alphabetical order.
func (s LetterSet) Letters() []byte {
	out := make([]byte, 0, s.Count())
	b := s.bits
	for b != 0 {
		tz := bits.TrailingZeros32(b)
		out = append(out, byte(minLetter+tz))
		b &= b - 1
	}
	return out
}

func (s LetterSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	sb.Write(s.Letters())
	sb.WriteByte('}')
	return sb.String()
}
