package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dekarrin/codex/internal/grammar"
)

var enumerateFlags = struct {
	grammar   *string
	minLength *int
	maxLength *int
	showRules *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "enumerate",
		Short:   "List the strings a grammar derives within a length window",
		Example: `  codex enumerate -g grammar.txt --min 3 --max 5`,
		Args:    cobra.NoArgs,
		RunE:    runEnumerate,
	}
	enumerateFlags.grammar = cmd.Flags().StringP("grammar", "g", "", "grammar file path (required)")
	enumerateFlags.minLength = cmd.Flags().Int("min", 1, "minimum length of listed strings")
	enumerateFlags.maxLength = cmd.Flags().Int("max", 5, "maximum length of listed strings")
	enumerateFlags.showRules = cmd.Flags().Bool("rules", true, "show the rules used to derive each string")
	cmd.MarkFlagRequired("grammar")
	rootCmd.AddCommand(cmd)
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	if *enumerateFlags.minLength > *enumerateFlags.maxLength {
		return fmt.Errorf("--min %d is greater than --max %d", *enumerateFlags.minLength, *enumerateFlags.maxLength)
	}

	g, err := readGrammarFile(*enumerateFlags.grammar)
	if err != nil {
		return fmt.Errorf("Cannot read the grammar: %w", err)
	}

	examples := grammar.Enumerate(g, grammar.Start, *enumerateFlags.maxLength, *enumerateFlags.minLength)

	w := cmd.OutOrStdout()
	for _, ex := range examples {
		if *enumerateFlags.showRules {
			used := make([]string, 0, ex.UsedRules.Len())
			for _, key := range ex.UsedRules.Ordered() {
				r, err := grammar.ParseRuleKey(key)
				if err != nil {
					return err
				}
				used = append(used, r.String())
			}
			fmt.Fprintf(w, "%s\t[%s]\n", grammar.FormatSymbols(ex.Result), strings.Join(used, "; "))
		} else {
			fmt.Fprintln(w, grammar.FormatSymbols(ex.Result))
		}
	}
	fmt.Fprintf(w, "(%d strings)\n", len(examples))

	return nil
}
