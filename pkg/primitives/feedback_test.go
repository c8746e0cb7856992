package primitives

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		guess, secret string
		want          Pattern
	}{
		{"salet", "trial", Pattern{Absent, Present, Present, Absent, Present}},
		{"allot", "loyal", Pattern{Present, Present, Present, Present, Absent}},
		{"error", "robot", Pattern{Absent, Present, Absent, Correct, Absent}},
		{"trial", "trial", Pattern{Correct, Correct, Correct, Correct, Correct}},
		// Only one 'e' in the secret: the green consumes it, so the earlier 'e' is gray.
		{"geese", "those", Pattern{Absent, Absent, Absent, Correct, Correct}},
		// Two 'l' in the secret, three in the guess: the leftmost non-green ones win.
		{"lolly", "llama", Pattern{Correct, Absent, Present, Absent, Absent}},
		{"speed", "abide", Pattern{Absent, Absent, Present, Absent, Present}},
	}

	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.secret, func(t *testing.T) {
			got := Encode(MustParseWord(tt.guess), MustParseWord(tt.secret))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Encode(%s, %s) mismatch (-want +got):\n%s", tt.guess, tt.secret, diff)
			}
		})
	}
}

// Correct+Present marks for a letter never exceed its count in the secret.
func TestEncode_NeverOvercounts(t *testing.T) {
	words := fixtureWords()
	for _, g := range words {
		for _, s := range words {
			p := Encode(g, s)
			var marked [numLetters]int
			for i, f := range p {
				if f != Absent {
					marked[g[i]-'a']++
				}
				if (f == Correct) != (g[i] == s[i]) {
					t.Fatalf("Encode(%s, %s)[%d] = %v", g, s, i, f)
				}
			}
			for idx, n := range marked {
				if want := s.Count(byte('a' + idx)); n > want {
					t.Fatalf("Encode(%s, %s) marks %c %d times, secret has %d", g, s, 'a'+idx, n, want)
				}
			}
		}
	}
}

func TestEncodeStrings_InvalidWord(t *testing.T) {
	for _, tt := range []struct{ guess, secret string }{
		{"abc", "trial"},
		{"trial", "trials"},
		{"tr1al", "trial"},
		{"trial", "tri l"},
	} {
		_, err := EncodeStrings(tt.guess, tt.secret)
		var iwe *InvalidWordError
		if !errors.As(err, &iwe) {
			t.Errorf("EncodeStrings(%q, %q) error = %v, want *InvalidWordError", tt.guess, tt.secret, err)
		}
	}

	p, err := EncodeStrings("SALET", "Trial")
	if err != nil {
		t.Fatalf("EncodeStrings: %v", err)
	}
	if p.Compact() != "byyby" {
		t.Errorf("Compact() = %q, want %q", p.Compact(), "byyby")
	}
}

func TestPattern_Rendering(t *testing.T) {
	p := Pattern{Correct, Present, Absent, Absent, Correct}
	if got, want := p.Emoji(), "🟩🟨⬛⬛🟩"; got != want {
		t.Errorf("Emoji() = %q, want %q", got, want)
	}
	if got := p.Completion(); got != 2.5 {
		t.Errorf("Completion() = %v, want 2.5", got)
	}
	if p.Solved() {
		t.Error("Solved() = true for a partial pattern")
	}

	parsed, err := ParsePattern("GY--g")
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	if parsed != p {
		t.Errorf("ParsePattern(GY--g) = %v, want %v", parsed, p)
	}
	if _, err := ParsePattern("gyx.."); err == nil {
		t.Error("ParsePattern accepted an unknown symbol")
	}
}
