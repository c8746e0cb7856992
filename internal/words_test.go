package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/api/iterator"

	"crosswarped.com/wordle/pkg/primitives"
)

func TestDefaultWords(t *testing.T) {
	wl, err := PrepareWords(WordListParams{Words: DefaultWords()})
	if err != nil {
		t.Fatalf("PrepareWords: %v", err)
	}
	if wl.Len() < 2000 {
		t.Errorf("default list has %d words, want at least 2000", wl.Len())
	}
	for _, s := range []string{"salet", "trial", "tidal", "trail", "crane"} {
		if !wl.Contains(primitives.MustParseWord(s)) {
			t.Errorf("default list is missing %q", s)
		}
	}
}

func TestPrepareWords(t *testing.T) {
	wl, err := PrepareWords(WordListParams{
		Words:         []string{"Crane", "cat", "TRIAL", " slate ", "crane", "trails", "tolls"},
		ExcludedWords: []string{"TOLLS"},
	})
	if err != nil {
		t.Fatalf("PrepareWords: %v", err)
	}

	var got []string
	for w := range wl.All() {
		got = append(got, w.String())
	}
	if diff := cmp.Diff([]string{"crane", "trial", "slate"}, got); diff != "" {
		t.Errorf("PrepareWords() mismatch (-want +got):\n%s", diff)
	}

	if _, err := PrepareWords(WordListParams{Words: []string{"cat", "horse"}}); err == nil {
		t.Error("PrepareWords with no five letter words should fail")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("# ranked\nTrial\n\n  tidal\ntrail\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFromFile(t.Context(), path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if diff := cmp.Diff([]string{"trial", "tidal", "trail"}, got); diff != "" {
		t.Errorf("LoadFromFile() mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte("tr1al\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(t.Context(), path); err == nil {
		t.Error("LoadFromFile should reject non-letters")
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	if err := os.WriteFile(path, []byte("trial\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadFromFile with cancelled context error = %v, want context.Canceled", err)
	}
}

type fakeRows struct {
	rows [][]bigquery.Value
	err  error
}

func (f *fakeRows) Next(dst interface{}) error {
	if len(f.rows) == 0 {
		if f.err != nil {
			return f.err
		}
		return iterator.Done
	}
	*dst.(*[]bigquery.Value) = f.rows[0]
	f.rows = f.rows[1:]
	return nil
}

func TestReadWords(t *testing.T) {
	got, err := readWords(&fakeRows{rows: [][]bigquery.Value{{"trial", int64(9)}, {"tidal"}, {"trail"}}})
	if err != nil {
		t.Fatalf("readWords: %v", err)
	}
	if !slices.Equal(got, []string{"trial", "tidal", "trail"}) {
		t.Errorf("readWords() = %v", got)
	}

	if _, err := readWords(&fakeRows{rows: [][]bigquery.Value{{int64(1)}}}); err == nil {
		t.Error("readWords should reject non-string words")
	}

	boom := errors.New("boom")
	if _, err := readWords(&fakeRows{err: boom}); !errors.Is(err, boom) {
		t.Errorf("readWords() error = %v, want %v", err, boom)
	}
}
