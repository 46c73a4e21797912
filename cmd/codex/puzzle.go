package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/presets"
	"github.com/dekarrin/codex/internal/puzzle"
)

var puzzleFlags = struct {
	difficulty *string
	seed       *string
	presets    *string
	reveal     *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "puzzle",
		Short:   "Build the puzzle for a difficulty and seed",
		Example: `  codex puzzle -D expert -s ABC123 --reveal`,
		Args:    cobra.NoArgs,
		RunE:    runPuzzle,
	}
	puzzleFlags.difficulty = cmd.Flags().StringP("difficulty", "D", "", "difficulty key (default is the presets' default)")
	puzzleFlags.seed = cmd.Flags().StringP("seed", "s", "", "puzzle seed (default is a random one)")
	puzzleFlags.presets = cmd.Flags().StringP("presets", "p", "", "CXP presets file (default is the built-in presets)")
	puzzleFlags.reveal = cmd.Flags().Bool("reveal", false, "print the hidden grammar too")
	rootCmd.AddCommand(cmd)
}

func runPuzzle(cmd *cobra.Command, args []string) error {
	set := presets.Builtin()
	if *puzzleFlags.presets != "" {
		var err error
		set, err = presets.LoadFile(*puzzleFlags.presets)
		if err != nil {
			return fmt.Errorf("Cannot load presets: %w", err)
		}
	}

	diff := set.DefaultDifficulty()
	if *puzzleFlags.difficulty != "" {
		var ok bool
		diff, ok = set.Find(*puzzleFlags.difficulty)
		if !ok {
			return fmt.Errorf("no difficulty %q in presets", *puzzleFlags.difficulty)
		}
	}

	p, err := puzzle.New(diff, *puzzleFlags.seed)
	if err != nil {
		return fmt.Errorf("Cannot build the puzzle: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "seed: %s\ndifficulty: %s\n\n", p.Seed, p.Difficulty)
	for i, ex := range p.Examples {
		fmt.Fprintf(w, "%d: %s\n", i+1, grammar.FormatSymbols(ex.Result))
	}
	if *puzzleFlags.reveal {
		fmt.Fprintf(w, "\n%s\n", p.Grammar.String())
	}
	return nil
}
