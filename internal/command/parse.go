package command

import (
	"strconv"
	"strings"

	"github.com/dekarrin/codex/internal/cxerrors"
)

var (
	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase.
	VerbAliases map[string]string = map[string]string{
		"BYE":          "QUIT",
		"EXIT":         "QUIT",
		"?":            "HELP",
		"/?":           "HELP",
		"/H":           "HELP",
		"-H":           "HELP",
		"H":            "HELP",
		"EX":           "EXAMPLES",
		"LIST":         "RULES",
		"R":            "RULES",
		"A":            "ADD",
		"RULE":         "ADD",
		"DELETE":       "DEL",
		"REMOVE":       "DEL",
		"RM":           "DEL",
		"RESET":        "CLEAR",
		"STEPS":        "SHOW",
		"DERIVE":       "SHOW",
		"DIFF":         "DIFFICULTIES",
		"LEVELS":       "DIFFICULTIES",
		"NEW GAME":     "NEW",
		"NEW PUZZLE":   "NEW",
		"RESTART":      "NEW",
		"SHOW SEED":    "SEED",
		"SHOW RULES":   "RULES",
		"SHOW EXAMPLE": "SHOW",
	}
)

// ParseCommand parses a command from the given text. If it cannot, a non-nil
// error is returned.
//
// If an empty string or a string composed only of whitespace is passed in, nil
// error is returned and a zero value for Command will be returned.
func ParseCommand(toParse string) (Command, error) {
	var parsedCmd Command

	toParse = strings.TrimSpace(toParse)

	// tokenize, collapsing all whitespace, and make upper case to make
	// matching easy
	originalTokens := strings.Fields(strings.ToUpper(toParse))

	// expand verb aliases up to 2 words long
	tokens, consumed := expandAliases(originalTokens, 2)

	if len(tokens) < 1 {
		return parsedCmd, nil
	}

	parsedCmd.Verb = tokens[0]
	parsedCmd.Args = tokens[1:]
	parsedCmd.Text = textAfterWords(toParse, consumed)

	switch parsedCmd.Verb {
	case "HELP":
		// help takes an optional argument
		if len(parsedCmd.Args) > 1 {
			return parsedCmd, cxerrors.Interpreterf("HELP takes at most one command name")
		}
	case "NEW":
		if len(parsedCmd.Args) > 2 {
			return parsedCmd, cxerrors.Interpreterf("NEW takes at most a difficulty and a seed")
		}
	case "ADD":
		if parsedCmd.Text == "" {
			return parsedCmd, cxerrors.Interpreterf("I don't know what rule you want to add; try something like ADD 1 -> 2 3")
		}
		if !strings.Contains(parsedCmd.Text, "->") {
			return parsedCmd, cxerrors.Interpreterf("A rule needs an arrow, like ADD 1 -> 2 3")
		}
	case "DEL", "SHOW":
		noun := "rule"
		if parsedCmd.Verb == "SHOW" {
			noun = "example"
		}
		if len(parsedCmd.Args) != 1 {
			return parsedCmd, cxerrors.Interpreterf("I need the number of the %s; try %s 1", noun, parsedCmd.Verb)
		}
		n, err := strconv.Atoi(parsedCmd.Args[0])
		if err != nil || n < 1 {
			return parsedCmd, cxerrors.Interpreterf("%q is not a %s number", parsedCmd.Args[0], noun)
		}
		parsedCmd.Index = n
	case "SEED", "EXAMPLES", "RULES", "CLEAR", "DIFFICULTIES", "QUIT":
		// these take no additional args, make sure this is true
		if len(parsedCmd.Args) > 0 {
			errMsg := "%s doesn't take anything else; type %s by itself"
			return parsedCmd, cxerrors.Interpreterf(errMsg, originalTokens[0], originalTokens[0])
		}
	default:
		return parsedCmd, cxerrors.Interpreterf("I don't know what you mean by %q", originalTokens[0])
	}

	return parsedCmd, nil
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be upper case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported. If it is less than 1,
// the given tokens will be returned unchanged. Longer aliases are matched
// before shorter ones.
//
// Aliases will not be multi-expanded; that is, expansion is not applied to the
// results of an expansion.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expanded, _ := expandAliases(tokens, aliasLimit)
	return expanded
}

// expandAliases does alias expansion and also returns how many of the
// original tokens were replaced by the expansion, or 1 if there was no
// expansion and there is a verb.
func expandAliases(tokens []string, aliasLimit int) ([]string, int) {
	expandedTokens := append([]string{}, tokens...)

	consumed := 1
	if len(tokens) == 0 {
		consumed = 0
	}

	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := aliasLimit; curLimit >= 1; curLimit-- {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)
			expandedTokens = append(replacementTokens, tokens[curLimit:]...)
			return expandedTokens, curLimit
		}
	}

	return expandedTokens, consumed
}

// textAfterWords returns s with its first n whitespace-separated words
// removed, trimmed of surrounding whitespace.
func textAfterWords(s string, n int) string {
	for i := 0; i < n; i++ {
		s = strings.TrimSpace(s)
		idx := strings.IndexFunc(s, isSpace)
		if idx < 0 {
			return ""
		}
		s = s[idx:]
	}
	return strings.TrimSpace(s)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
