package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"crosswarped.com/wordle/pkg/primitives"
)

func newFeedbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feedback <guess> <secret>",
		Short: "Print the feedback pattern for a guess against a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := primitives.EncodeStrings(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", p.Emoji(), strings.ToUpper(args[0]), p.Compact())
			return nil
		},
	}
}

func newCandidatesCmd(a *app) *cobra.Command {
	var (
		limit   int
		suggest bool
	)
	cmd := &cobra.Command{
		Use:   "candidates <guess:pattern>...",
		Short: "List the words consistent with the given feedback, e.g. salet:byyby",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			solver, err := a.newSolver(ctx)
			if err != nil {
				return err
			}

			ss := solver.NewSession()
			for _, arg := range args {
				guess, p, err := parseTurn(arg)
				if err != nil {
					return err
				}
				if err := ss.Observe(guess, p); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			candidates := ss.Candidates()
			fmt.Fprintf(out, "%d candidate(s)\n", len(candidates))
			for i, w := range candidates {
				if limit > 0 && i >= limit {
					fmt.Fprintf(out, "... and %d more\n", len(candidates)-limit)
					break
				}
				fmt.Fprintln(out, w)
			}

			if suggest && len(candidates) > 0 {
				attempt, err := ss.NextGuess(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "next: %s (%s)\n", attempt.Word, attempt.Source)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Print at most this many candidates; 0 prints all")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "Also choose the next guess, consulting the oracle if needed")
	return cmd
}

// parseTurn parses "salet:byyby".
func parseTurn(s string) (primitives.Word, primitives.Pattern, error) {
	guess, pattern, ok := strings.Cut(s, ":")
	if !ok {
		return primitives.Word{}, primitives.Pattern{}, errors.New("want guess:pattern, got " + s)
	}
	w, err := primitives.ParseWord(guess)
	if err != nil {
		return primitives.Word{}, primitives.Pattern{}, err
	}
	p, err := primitives.ParsePattern(pattern)
	if err != nil {
		return primitives.Word{}, primitives.Pattern{}, err
	}
	return w, p, nil
}
