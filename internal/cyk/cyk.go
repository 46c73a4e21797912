// Package cyk recognizes strings against binary grammars with the
// Cocke-Younger-Kasami algorithm, reconstructs a parse tree for recognized
// strings, and unfolds parse trees into derivation steps.
package cyk

import (
	"github.com/dekarrin/codex/internal/grammar"
)

// Backpointer records how a symbol came to cover a span of the input. A nil
// *Backpointer in a Table marks a span of length 1 where the symbol is the
// input token itself.
type Backpointer struct {
	// RHS is the production that produced the span. RHS[0] covers the first
	// Split tokens of the span and RHS[1] covers the rest.
	RHS grammar.Production

	// Split is the length of the left part of the span.
	Split int
}

// Table is a CYK derivation table, indexed by [start][length][symbol]. Each
// cell holds every backpointer recorded for that symbol over that span, in
// the order they were found.
type Table [][][][]*Backpointer

// Len returns the length of the input the table was built for.
func (t Table) Len() int {
	return len(t)
}

// Cell returns the backpointers recorded for sym over the span of the given
// length beginning at start. It returns nil for any span or symbol outside of
// the table.
func (t Table) Cell(start, length int, sym grammar.Symbol) []*Backpointer {
	if start < 0 || start >= len(t) || length < 1 || length >= len(t[start]) {
		return nil
	}
	syms := t[start][length]
	if sym < 1 || int(sym) >= len(syms) {
		return nil
	}
	return syms[sym]
}

// Accepts returns whether sym covers the entire input.
func (t Table) Accepts(sym grammar.Symbol) bool {
	return len(t.Cell(0, t.Len(), sym)) > 0
}

// Parse decides whether tokens is derivable from start in g. If it is, the
// derivation table is returned along with true. If it is not, or if tokens is
// empty, (nil, false) is returned.
//
// Any symbol in tokens that is not a valid symbol matches nothing, and rules
// whose left-hand side is not a valid symbol are ignored.
//
// Every table cell holds one slot per symbol up to the largest symbol in g or
// tokens, so callers that accept grammars from outside must bound the
// alphabet before calling Parse.
func Parse(g grammar.Grammar, tokens []grammar.Symbol, start grammar.Symbol) (Table, bool) {
	n := len(tokens)
	if n == 0 {
		return nil, false
	}

	maxSymbol := g.MaxSymbol()
	for _, tok := range tokens {
		if tok > maxSymbol {
			maxSymbol = tok
		}
	}
	if !start.Valid() || start > maxSymbol {
		return nil, false
	}

	table := make(Table, n)
	for i := range table {
		table[i] = make([][][]*Backpointer, n+1)
		for length := range table[i] {
			table[i][length] = make([][]*Backpointer, maxSymbol+1)
		}
	}

	producers := producerIndex(g)

	for i, tok := range tokens {
		if tok.Valid() {
			table[i][1][tok] = append(table[i][1][tok], nil)
		}
	}

	for length := 2; length <= n; length++ {
		for i := 0; i <= n-length; i++ {
			for split := 1; split < length; split++ {
				left := table[i][split]
				right := table[i+split][length-split]

				for b := grammar.Symbol(1); b <= maxSymbol; b++ {
					if len(left[b]) == 0 {
						continue
					}
					for c := grammar.Symbol(1); c <= maxSymbol; c++ {
						if len(right[c]) == 0 {
							continue
						}

						rhs := grammar.Production{b, c}
						for _, a := range producers[rhs] {
							bp := &Backpointer{RHS: rhs, Split: split}
							table[i][length][a] = append(table[i][length][a], bp)
						}
					}
				}
			}
		}
	}

	if !table.Accepts(start) {
		return nil, false
	}
	return table, true
}

// producerIndex maps each right-hand side to every symbol that produces it.
// Producers are listed in grammar iteration order.
func producerIndex(g grammar.Grammar) map[grammar.Production][]grammar.Symbol {
	idx := map[grammar.Production][]grammar.Symbol{}
	for _, r := range g.Rules() {
		if !r.LHS.Valid() {
			continue
		}
		idx[r.RHS] = append(idx[r.RHS], r.LHS)
	}
	return idx
}

// Derive recognizes tokens against g and, if they are derivable from start,
// returns the derivation steps of the first parse found. If tokens cannot be
// derived, (nil, false) is returned.
func Derive(g grammar.Grammar, tokens []grammar.Symbol, start grammar.Symbol) ([]Step, bool) {
	table, ok := Parse(g, tokens, start)
	if !ok {
		return nil, false
	}
	root, ok := ReconstructParseTree(table, start, len(tokens))
	if !ok {
		return nil, false
	}
	return DerivationSteps(root), true
}
