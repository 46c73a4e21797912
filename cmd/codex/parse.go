package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dekarrin/codex/internal/cyk"
	"github.com/dekarrin/codex/internal/grammar"
)

var parseFlags = struct {
	grammar *string
	tree    *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <symbols>...",
		Short:   "Check whether a grammar derives a string and show how",
		Example: `  codex parse -g grammar.txt 2 3 1 3`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runParse,
	}
	parseFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (required)")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the parse tree as well as the derivation")
	cmd.MarkFlagRequired("grammar")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGrammarFile(*parseFlags.grammar)
	if err != nil {
		return fmt.Errorf("Cannot read the grammar: %w", err)
	}

	tokens, err := grammar.ParseSymbols(strings.Join(args, " "))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	table, ok := cyk.Parse(g, tokens, grammar.Start)
	if !ok {
		fmt.Fprintf(w, "REJECT: %s\n", grammar.FormatSymbols(tokens))
		return nil
	}
	fmt.Fprintf(w, "ACCEPT: %s\n", grammar.FormatSymbols(tokens))

	root, ok := cyk.ReconstructParseTree(table, grammar.Start, len(tokens))
	if !ok {
		return fmt.Errorf("string was accepted but its parse tree could not be rebuilt")
	}

	if *parseFlags.tree {
		fmt.Fprintf(w, "\n%s\n", root.String())
	}

	fmt.Fprintln(w)
	for i, st := range cyk.DerivationSteps(root) {
		line := fmt.Sprintf("%2d: %s", i, grammar.FormatSymbols(st.Symbols()))
		if st.Rule != nil {
			line += fmt.Sprintf("\t(%s)", st.Rule)
		}
		fmt.Fprintln(w, line)
	}

	return nil
}
