package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/wordle"
)

func newPlayCmd(a *app) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "play [secret]",
		Short: "Solve one game; the secret is drawn from the word list when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			solver, err := a.newSolver(ctx)
			if err != nil {
				return err
			}

			var secret string
			if len(args) == 1 {
				secret = args[0]
			} else {
				rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().Nanosecond())))
				words := solver.Words()
				secret = words.At(rng.IntN(words.Len())).String()
			}

			game, err := wordle.NewGame(secret, solver.Params().MaxTries)
			if err != nil {
				return err
			}
			res, err := solver.Play(ctx, game)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "--------------------------------")
			fmt.Fprintln(out, game.Repr())
			fmt.Fprintln(out, "--------------------------------")
			if debug {
				fmt.Fprintln(out, game.DebugString())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s in %d/%d, %d oracle call(s), %d fallback(s)\n",
				game.Status(), res.Tries, game.MaxTries(), res.OracleCalls, res.Fallbacks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Print the game's debug string")
	return cmd
}
