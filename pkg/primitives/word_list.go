package primitives

import (
	"fmt"
	"iter"
	"slices"
)

// WordList is the static, ordered dictionary a game is played over.
//
// Order is significant: earlier words rank higher, and every filtered result keeps that order. A
// WordList is immutable after construction and safe for concurrent use.
type WordList struct {
	words []Word
	index map[Word]int
}

// NewWordList parses and deduplicates words, keeping the first occurrence of each.
func NewWordList(words []string) (*WordList, error) {
	wl := &WordList{
		words: make([]Word, 0, len(words)),
		index: make(map[Word]int, len(words)),
	}
	for _, s := range words {
		w, err := ParseWord(s)
		if err != nil {
			return nil, fmt.Errorf("word list entry %d: %w", len(wl.words), err)
		}
		if _, ok := wl.index[w]; ok {
			continue
		}
		wl.index[w] = len(wl.words)
		wl.words = append(wl.words, w)
	}
	if len(wl.words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return wl, nil
}

// MustWordList is like NewWordList but panics on error. Intended for fixtures.
func MustWordList(words ...string) *WordList {
	wl, err := NewWordList(words)
	if err != nil {
		panic(err)
	}
	return wl
}

// Len returns the number of words.
func (wl *WordList) Len() int {
	return len(wl.words)
}

// At returns the word ranked i.
func (wl *WordList) At(i int) Word {
	return wl.words[i]
}

// Contains reports whether w is in the list.
func (wl *WordList) Contains(w Word) bool {
	_, ok := wl.index[w]
	return ok
}

// Rank returns the position of w in the list, or -1.
func (wl *WordList) Rank(w Word) int {
	if i, ok := wl.index[w]; ok {
		return i
	}
	return -1
}

// All iterates the words in rank order.
func (wl *WordList) All() iter.Seq[Word] {
	return slices.Values(wl.words)
}

// Filter returns, in rank order, every word that satisfies c.
//
// The full list is rescanned on every call; callers never narrow a previous result.
func (wl *WordList) Filter(c Constraints) []Word {
	var out []Word
	for _, w := range wl.words {
		if c.Matches(w) {
			out = append(out, w)
		}
	}
	return out
}
