package internal

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"crosswarped.com/wordle/pkg/primitives"
)

//go:embed words.txt
var defaultWords string

// DefaultWords returns the embedded dictionary, highest-ranked words first.
func DefaultWords() []string {
	return strings.Fields(defaultWords)
}

type WordListParams struct {
	Words         []string
	ExcludedWords []string
}

// PrepareWords normalizes a raw word source into a ranked word list: words are lowercased, anything
// that is not five letters long or is excluded is dropped, and the first occurrence of a duplicate
// keeps its rank.
func PrepareWords(p WordListParams) (*primitives.WordList, error) {
	excluded := make(map[string]bool, len(p.ExcludedWords))
	for _, word := range p.ExcludedWords {
		excluded[strings.ToLower(strings.TrimSpace(word))] = true
	}

	words := make([]string, 0, len(p.Words))
	for _, word := range p.Words {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) != primitives.WordLength {
			continue
		}
		if excluded[word] {
			continue
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no %d-letter words left out of %d", primitives.WordLength, len(p.Words))
	}
	return primitives.NewWordList(words)
}

// LoadFromFile reads one word per line. Blank lines and lines starting with '#' are skipped.
func LoadFromFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for _, r := range word {
			if r < 'a' || r > 'z' {
				return nil, fmt.Errorf("word %s contains non-lowercase letter %q", word, r)
			}
		}
		words = append(words, word)
	}
	return words, scanner.Err()
}
