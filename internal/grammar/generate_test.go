package grammar

import (
	"fmt"
	"testing"

	"github.com/dekarrin/codex/internal/prng"
	"github.com/dekarrin/codex/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_Generate_degenerate(t *testing.T) {
	testCases := []struct {
		name       string
		numSymbols int
		numRules   int
	}{
		{name: "no symbols", numSymbols: 0, numRules: 5},
		{name: "no rules", numSymbols: 3, numRules: 0},
		{name: "negative symbols", numSymbols: -1, numRules: 3},
		{name: "negative rules", numSymbols: 3, numRules: -4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := Generate(tc.numSymbols, tc.numRules, "seed")

			assert.True(actual.Empty())
			assert.Empty(actual.Rules())
		})
	}
}

func Test_Generate_deterministic(t *testing.T) {
	testCases := []struct {
		name       string
		numSymbols int
		numRules   int
		seed       string
	}{
		{name: "novice", numSymbols: 2, numRules: 2, seed: "ABC123"},
		{name: "standard", numSymbols: 3, numRules: 3, seed: "ZZ9PLZ0"},
		{name: "insanity", numSymbols: 5, numRules: 5, seed: "Q4Q4Q4"},
		{name: "extra rules", numSymbols: 3, numRules: 9, seed: "MANY"},
		{name: "empty seed", numSymbols: 4, numRules: 4, seed: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			first := Generate(tc.numSymbols, tc.numRules, tc.seed)
			second := Generate(tc.numSymbols, tc.numRules, tc.seed)

			assert.Equal(first, second)
			assert.Equal(first.String(), second.String())
		})
	}
}

func Test_Generate_shape(t *testing.T) {
	params := []struct {
		numSymbols int
		numRules   int
	}{
		{1, 1}, {1, 4}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {3, 8}, {5, 2},
	}

	for _, p := range params {
		for i := 0; i < 40; i++ {
			seed := fmt.Sprintf("S%dR%d#%d", p.numSymbols, p.numRules, i)
			t.Run(seed, func(t *testing.T) {
				assert := assert.New(t)

				g := Generate(p.numSymbols, p.numRules, seed)

				assert.Equal(p.numRules, g.RuleCount(), "rule count")

				startRules := 1
				if p.numRules > 2 {
					startRules = 2
				}
				assert.GreaterOrEqual(len(g[Start]), startRules, "start symbol rules")

				reachable := reachableFrom(g, Start)
				for _, r := range g.Rules() {
					assert.True(reachable.Has(r.LHS), "lhs %d of %s is unreachable", r.LHS, r)
					for _, s := range r.RHS {
						assert.GreaterOrEqual(int(s), 1, "symbol in %s below alphabet", r)
						assert.LessOrEqual(int(s), p.numSymbols, "symbol in %s above alphabet", r)
						assert.True(reachable.Has(s), "symbol %d of %s is unreachable", s, r)
					}
				}
			})
		}
	}
}

func Test_pickBranchingSymbol(t *testing.T) {
	testCases := []struct {
		name     string
		g        Grammar
		expanded []Symbol
		expect   []Symbol
	}{
		{
			name:     "only one single-rule symbol",
			g:        Grammar{1: {{1, 2}, {2, 2}}, 2: {{1, 1}}, 3: {{3, 3}, {1, 3}}},
			expanded: []Symbol{1, 2, 3},
			expect:   []Symbol{2},
		},
		{
			name:     "several single-rule symbols",
			g:        Grammar{1: {{1, 2}, {2, 2}}, 2: {{1, 1}}, 3: {{3, 3}}},
			expanded: []Symbol{1, 2, 3},
			expect:   []Symbol{2, 3},
		},
		{
			name:     "no single-rule symbols",
			g:        Grammar{1: {{1, 2}, {2, 2}}, 2: {{1, 1}, {2, 1}}},
			expanded: []Symbol{1, 2},
			expect:   []Symbol{1, 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rng := prng.New(tc.name)
			for i := 0; i < 20; i++ {
				actual := pickBranchingSymbol(tc.g, tc.expanded, rng)
				assert.Contains(tc.expect, actual)
			}
		})
	}
}

// reachableFrom returns every symbol that appears in some sentential form
// derivable from start.
func reachableFrom(g Grammar, start Symbol) util.KeySet[Symbol] {
	reached := util.NewKeySet[Symbol]()
	reached.Add(start)
	pending := []Symbol{start}

	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]
		for _, rhs := range g[cur] {
			for _, s := range rhs {
				if !reached.Has(s) {
					reached.Add(s)
					pending = append(pending, s)
				}
			}
		}
	}

	return reached
}
