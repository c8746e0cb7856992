package primitives

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func words(ss ...string) []Word {
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = MustParseWord(s)
	}
	return out
}

func TestNewWordList(t *testing.T) {
	wl, err := NewWordList([]string{"Trial", "tidal", "TRIAL", "trail"})
	if err != nil {
		t.Fatalf("NewWordList: %v", err)
	}
	if diff := cmp.Diff(words("trial", "tidal", "trail"), slices.Collect(wl.All())); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if got := wl.Rank(MustParseWord("trail")); got != 2 {
		t.Errorf("Rank(trail) = %d, want 2", got)
	}
	if got := wl.Rank(MustParseWord("tolls")); got != -1 {
		t.Errorf("Rank(tolls) = %d, want -1", got)
	}

	if _, err := NewWordList(nil); err == nil {
		t.Error("NewWordList(nil) should fail")
	}
	if _, err := NewWordList([]string{"trial", "toolong"}); err == nil {
		t.Error("NewWordList with a six letter word should fail")
	}
}

func TestWordList_Filter(t *testing.T) {
	for _, tc := range []struct {
		name   string
		list   []string
		guess  string
		secret string
		want   []Word
	}{
		{
			// TIDAL and TRAIL give SALET the same pattern as TRIAL, so all three survive.
			name:   "ambiguous",
			list:   []string{"tidal", "trail", "trial", "tolls"},
			guess:  "salet",
			secret: "trial",
			want:   words("tidal", "trail", "trial"),
		},
		{
			name:   "single",
			list:   []string{"salet", "tolls", "trial", "steal"},
			guess:  "salet",
			secret: "trial",
			want:   words("trial"),
		},
		{
			name:   "order kept",
			list:   []string{"trial", "tolls", "trail", "tidal"},
			guess:  "salet",
			secret: "trial",
			want:   words("trial", "trail", "tidal"),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			wl := MustWordList(tc.list...)
			g := MustParseWord(tc.guess)
			c, err := NewConstraints().Update(g, Encode(g, MustParseWord(tc.secret)))
			if err != nil {
				t.Fatalf("Update: %v", err)
			}

			got := wl.Filter(c)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(got, wl.Filter(c)); diff != "" {
				t.Errorf("second Filter() differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestWordList_FilterUnconstrained(t *testing.T) {
	wl := MustWordList(fixture...)
	if diff := cmp.Diff(fixtureWords(), wl.Filter(NewConstraints())); diff != "" {
		t.Errorf("Filter(NewConstraints()) mismatch (-want +got):\n%s", diff)
	}
}
