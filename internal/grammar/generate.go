package grammar

import (
	"github.com/dekarrin/codex/internal/prng"
	"github.com/dekarrin/codex/internal/util"
)

// Generate synthesizes a random binary grammar over the alphabet
// {1..numSymbols} with exactly numRules rules. The same arguments always give
// the same grammar.
//
// Every symbol that appears in a right-hand side is reachable from the start
// symbol. The start symbol receives the first rule, and the second one as
// well when numRules is greater than 2. After that, rules go to symbols
// popped at random from the frontier of reachable but not yet expanded
// symbols. Once the frontier is empty, extra rules go to expanded symbols,
// preferring ones that so far have exactly one rule.
//
// If numSymbols or numRules is less than 1, the returned grammar is empty.
func Generate(numSymbols, numRules int, seed string) Grammar {
	g := Grammar{}
	if numSymbols < 1 || numRules < 1 {
		return g
	}

	rng := prng.New(seed)
	randomSymbol := func() Symbol {
		return Symbol(rng.Intn(numSymbols) + 1)
	}

	startRules := 1
	if numRules > 2 {
		startRules = 2
	}

	frontier := []Symbol{Start}
	seen := util.KeySetOf(frontier)
	var expanded []Symbol

	for count := 0; count < numRules; count++ {
		var lhs Symbol

		if count < startRules {
			lhs = Start
			frontier = util.SliceRemove(Start, frontier)
		} else if len(frontier) > 0 {
			idx := rng.Intn(len(frontier))
			lhs = frontier[idx]
			frontier = append(frontier[:idx:idx], frontier[idx+1:]...)
		} else {
			lhs = pickBranchingSymbol(g, expanded, rng)
		}

		rhs := Production{randomSymbol(), randomSymbol()}
		if len(g[lhs]) == 0 {
			expanded = append(expanded, lhs)
		}
		g[lhs] = append(g[lhs], rhs)

		for _, s := range rhs {
			if !seen.Has(s) {
				seen.Add(s)
				frontier = append(frontier, s)
			}
		}
	}

	return g
}

// pickBranchingSymbol picks the symbol to receive an extra rule once every
// reachable symbol has been expanded. expanded is in the order symbols were
// first given a rule.
func pickBranchingSymbol(g Grammar, expanded []Symbol, rng *prng.Source) Symbol {
	var single []Symbol
	for _, s := range expanded {
		if len(g[s]) == 1 {
			single = append(single, s)
		}
	}

	if len(single) > 0 {
		return single[rng.Intn(len(single))]
	}
	return expanded[rng.Intn(len(expanded))]
}
