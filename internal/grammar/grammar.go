// Package grammar holds the binary context-free grammars that codex puzzles
// are built from, along with the generator that synthesizes them and the
// enumerator that lists the strings they derive.
//
// Every symbol of a grammar is a positive integer. There is no distinction
// between terminals and nonterminals; any symbol may or may not have rules of
// its own. Symbol 1 is always the start symbol.
package grammar

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/codex/internal/util"
)

// Symbol is a single symbol of a grammar's alphabet. Valid symbols are 1 or
// greater.
type Symbol int

// Start is the distinguished start symbol of every grammar.
const Start Symbol = 1

// Valid returns whether s is a usable symbol.
func (s Symbol) Valid() bool {
	return s >= 1
}

func (s Symbol) String() string {
	return strconv.Itoa(int(s))
}

// Production is the right-hand side of a rule. All rules are binary.
type Production [2]Symbol

// String gives the production in text form, "B C".
func (p Production) String() string {
	return p[0].String() + " " + p[1].String()
}

// Rule is a single production together with its left-hand side.
type Rule struct {
	LHS Symbol
	RHS Production
}

// Key returns the rule key that identifies the rule in an Example's used rule
// set, in the form "A->B,C".
func (r Rule) Key() string {
	return fmt.Sprintf("%d->%d,%d", r.LHS, r.RHS[0], r.RHS[1])
}

// String gives the rule in text form, "A -> B C".
func (r Rule) String() string {
	return fmt.Sprintf("%d -> %s", r.LHS, r.RHS)
}

// ParseRuleKey is the inverse of Rule.Key.
func ParseRuleKey(key string) (Rule, error) {
	lhsText, rhsText, ok := strings.Cut(key, "->")
	if !ok {
		return Rule{}, fmt.Errorf("rule key %q has no '->'", key)
	}
	firstText, secondText, ok := strings.Cut(rhsText, ",")
	if !ok {
		return Rule{}, fmt.Errorf("rule key %q does not have two right-hand symbols", key)
	}

	var r Rule
	var err error
	if r.LHS, err = ParseSymbol(lhsText); err != nil {
		return Rule{}, fmt.Errorf("rule key %q: %w", key, err)
	}
	if r.RHS[0], err = ParseSymbol(firstText); err != nil {
		return Rule{}, fmt.Errorf("rule key %q: %w", key, err)
	}
	if r.RHS[1], err = ParseSymbol(secondText); err != nil {
		return Rule{}, fmt.Errorf("rule key %q: %w", key, err)
	}
	return r, nil
}

// Grammar maps each left-hand symbol to its productions. Productions of a
// symbol keep the order they were added in. Anything that walks a Grammar
// does so in ascending order of left-hand symbol, so that every ordering
// derived from a Grammar is reproducible.
type Grammar map[Symbol][]Production

// LHS returns every left-hand symbol that has at least one production, in
// ascending order.
func (g Grammar) LHS() []Symbol {
	syms := make([]Symbol, 0, len(g))
	for s, prods := range g {
		if len(prods) > 0 {
			syms = append(syms, s)
		}
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// Rules returns all rules of g in iteration order.
func (g Grammar) Rules() []Rule {
	var rules []Rule
	for _, lhs := range g.LHS() {
		for _, rhs := range g[lhs] {
			rules = append(rules, Rule{LHS: lhs, RHS: rhs})
		}
	}
	return rules
}

// RuleCount returns the total number of productions in g, duplicates
// included.
func (g Grammar) RuleCount() int {
	count := 0
	for _, prods := range g {
		count += len(prods)
	}
	return count
}

// Empty returns whether g has no rules at all.
func (g Grammar) Empty() bool {
	return g.RuleCount() == 0
}

// Add appends the rule to g. g must not be nil.
func (g Grammar) Add(r Rule) {
	g[r.LHS] = append(g[r.LHS], r.RHS)
}

// Has returns whether g contains the given rule.
func (g Grammar) Has(r Rule) bool {
	for _, rhs := range g[r.LHS] {
		if rhs == r.RHS {
			return true
		}
	}
	return false
}

// RuleKeys returns the set of keys of every rule in g.
func (g Grammar) RuleKeys() util.StringSet {
	keys := util.NewStringSet()
	for _, r := range g.Rules() {
		keys.Add(r.Key())
	}
	return keys
}

// MaxSymbol returns the highest symbol mentioned anywhere in g, or 0 if g has
// no rules.
func (g Grammar) MaxSymbol() Symbol {
	var max Symbol
	for lhs, prods := range g {
		if len(prods) == 0 {
			continue
		}
		if lhs > max {
			max = lhs
		}
		for _, rhs := range prods {
			for _, s := range rhs {
				if s > max {
					max = s
				}
			}
		}
	}
	return max
}

// Copy returns a deep copy of g.
func (g Grammar) Copy() Grammar {
	if g == nil {
		return nil
	}
	newG := make(Grammar, len(g))
	for lhs, prods := range g {
		newG[lhs] = append([]Production(nil), prods...)
	}
	return newG
}

// Equal returns whether o is a Grammar (or *Grammar) with the same rules in
// the same order. Symbols with no productions are ignored.
func (g Grammar) Equal(o any) bool {
	other, ok := o.(Grammar)
	if !ok {
		otherPtr, ok := o.(*Grammar)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	gRules := g.Rules()
	oRules := other.Rules()
	if len(gRules) != len(oRules) {
		return false
	}
	for i := range gRules {
		if gRules[i] != oRules[i] {
			return false
		}
	}
	return true
}

// String gives the canonical text of g, one "A -> B C" line per rule in
// iteration order.
func (g Grammar) String() string {
	var sb strings.Builder
	for i, r := range g.Rules() {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}

// Example is one string derived from a grammar, along with the keys of the
// rules that were used the first time it was derived.
type Example struct {
	Result    []Symbol
	UsedRules util.StringSet
}

// Key returns the flattened key of the example's string.
func (ex Example) Key() string {
	return SequenceKey(ex.Result)
}

// Len returns the length of the example's string.
func (ex Example) Len() int {
	return len(ex.Result)
}

// SequenceKey gives the key used to identify a sequence of symbols, the
// symbols joined with commas.
func SequenceKey(seq []Symbol) string {
	var sb strings.Builder
	for i := range seq {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(seq[i].String())
	}
	return sb.String()
}
