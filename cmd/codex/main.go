/*
Codex is an offline tool for working with the binary grammars used in codex
puzzles.

Usage:

	codex [command]

The commands are:

	generate    Generate a random grammar from a seed
	enumerate   List the strings a grammar derives within a length window
	parse       Check whether a grammar derives a string and show how
	puzzle      Build the puzzle for a difficulty and seed
	presets     Write the built-in difficulty presets as a CXP file

Grammar files hold one rule per line in the form "A -> B C", and may give more
than one right-hand side at once as in "A -> B C | D E". Anything after a '#'
is a comment.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	err := Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
