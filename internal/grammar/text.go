package grammar

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseSymbol parses a single symbol from its decimal text.
func ParseSymbol(text string) (Symbol, error) {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%q is not a symbol number", text)
	}
	s := Symbol(n)
	if !s.Valid() {
		return 0, fmt.Errorf("symbol %d is out of range; symbols start at %d", n, Start)
	}
	return s, nil
}

// ParseSymbols parses a whitespace-or-comma separated list of symbols, such
// as "1 2 3" or "1,2,3".
func ParseSymbols(text string) ([]Symbol, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	seq := make([]Symbol, len(fields))
	for i := range fields {
		s, err := ParseSymbol(fields[i])
		if err != nil {
			return nil, err
		}
		seq[i] = s
	}
	return seq, nil
}

// FormatSymbols gives the text form of a sequence of symbols, space
// separated.
func FormatSymbols(seq []Symbol) string {
	strs := make([]string, len(seq))
	for i := range seq {
		strs[i] = seq[i].String()
	}
	return strings.Join(strs, " ")
}

// ParseRuleLine parses one line of rule text of the form "A -> B C". Several
// alternatives for the same left-hand side may be given on one line,
// separated by '|', as in "A -> B C | D E".
func ParseRuleLine(line string) ([]Rule, error) {
	lhsText, rhsText, ok := strings.Cut(line, "->")
	if !ok {
		return nil, fmt.Errorf("rule %q is missing '->'", strings.TrimSpace(line))
	}

	lhs, err := ParseSymbol(lhsText)
	if err != nil {
		return nil, fmt.Errorf("left-hand side: %w", err)
	}

	var rules []Rule
	for _, alt := range strings.Split(rhsText, "|") {
		syms, err := ParseSymbols(alt)
		if err != nil {
			return nil, fmt.Errorf("right-hand side: %w", err)
		}
		if len(syms) != 2 {
			return nil, fmt.Errorf("right-hand side %q must have exactly 2 symbols but has %d", strings.TrimSpace(alt), len(syms))
		}
		rules = append(rules, Rule{LHS: lhs, RHS: Production{syms[0], syms[1]}})
	}

	return rules, nil
}

// ParseRules parses grammar text into a Grammar. Each non-blank line is read
// with ParseRuleLine. Anything after a '#' on a line is a comment.
func ParseRules(text string) (Grammar, error) {
	g := Grammar{}

	sc := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if idx := strings.IndexRune(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		rules, err := ParseRuleLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		for _, r := range rules {
			g.Add(r)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return g, nil
}
