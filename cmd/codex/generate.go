package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dekarrin/codex/internal/grammar"
)

var generateFlags = struct {
	symbols *int
	rules   *int
	seed    *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate a random grammar from a seed",
		Example: `  codex generate -n 3 -r 3 -s ABC123 > grammar.txt`,
		Args:    cobra.NoArgs,
		RunE:    runGenerate,
	}
	generateFlags.symbols = cmd.Flags().IntP("symbols", "n", 3, "number of symbols in the grammar")
	generateFlags.rules = cmd.Flags().IntP("rules", "r", 3, "number of rules in the grammar")
	generateFlags.seed = cmd.Flags().StringP("seed", "s", "", "seed for the random source (required)")
	cmd.MarkFlagRequired("seed")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if *generateFlags.symbols < 1 || *generateFlags.rules < 1 {
		return fmt.Errorf("--symbols and --rules must both be at least 1")
	}

	g := grammar.Generate(*generateFlags.symbols, *generateFlags.rules, *generateFlags.seed)

	fmt.Fprintln(cmd.OutOrStdout(), g.String())
	return nil
}
