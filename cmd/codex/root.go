package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "codex",
	Short: "Generate, enumerate and parse binary grammars for codex puzzles",
	Long: `codex works with the grammars behind codex puzzles:
- Generates the hidden grammar for a seed.
- Lists the strings a grammar derives.
- Checks a string against a grammar and shows its derivation.`,
	Version:       version.Current,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func readGrammarFile(path string) (grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := grammar.ParseRules(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if g.Empty() {
		return nil, fmt.Errorf("%s: no rules in file", path)
	}
	return g, nil
}
