package cyk

import (
	"fmt"
	"testing"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_ReconstructParseTree(t *testing.T) {
	testCases := []struct {
		name   string
		g      grammar.Grammar
		tokens []sym
		expect string
	}{
		{
			name:   "single step",
			g:      cyclicFixture(),
			tokens: []sym{2, 3},
			expect: "( 1 )\n" +
				"  |---: ( 2 )\n" +
				`  \---: ( 3 )`,
		},
		{
			name:   "literal start",
			g:      cyclicFixture(),
			tokens: []sym{1},
			expect: "( 1 )",
		},
		{
			name:   "first backpointer is followed",
			g:      grammar.Grammar{1: {{1, 1}}},
			tokens: []sym{1, 1, 1},
			expect: "( 1 )\n" +
				"  |---: ( 1 )\n" +
				`  \---: ( 1 )` + "\n" +
				"          |---: ( 1 )\n" +
				`          \---: ( 1 )`,
		},
		{
			name:   "nested on the left",
			g:      cyclicFixture(),
			tokens: []sym{1, 1, 3},
			expect: "( 1 )\n" +
				"  |---: ( 2 )\n" +
				"  |       |---: ( 1 )\n" +
				`  |       \---: ( 1 )` + "\n" +
				`  \---: ( 3 )`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			table, ok := Parse(tc.g, tc.tokens, grammar.Start)
			if !assert.True(ok) {
				return
			}

			root, ok := ReconstructParseTree(table, grammar.Start, len(tc.tokens))
			if !assert.True(ok) {
				return
			}

			assert.Equal(tc.expect, root.String())
			assert.Equal(tc.tokens, root.Leaves())
		})
	}
}

func Test_ReconstructParseTree_absent(t *testing.T) {
	table, ok := Parse(cyclicFixture(), []sym{2, 3}, grammar.Start)
	if !assert.True(t, ok) {
		return
	}

	testCases := []struct {
		name  string
		table Table
		start sym
		n     int
	}{
		{name: "nil table", table: nil, start: 1, n: 2},
		{name: "symbol does not cover span", table: table, start: 2, n: 2},
		{name: "n too large", table: table, start: 1, n: 3},
		{name: "n zero", table: table, start: 1, n: 0},
		{name: "start out of range", table: table, start: 40, n: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			root, ok := ReconstructParseTree(tc.table, tc.start, tc.n)

			assert.False(ok)
			assert.Nil(root)
		})
	}
}

func Test_ReconstructParseTree_leavesAndRules(t *testing.T) {
	for i := 0; i < 10; i++ {
		seed := fmt.Sprintf("TREE%d", i)
		t.Run(seed, func(t *testing.T) {
			assert := assert.New(t)

			g := grammar.Generate(4, 5, seed)

			for _, ex := range grammar.Enumerate(g, grammar.Start, 5, 1) {
				table, ok := Parse(g, ex.Result, grammar.Start)
				if !assert.True(ok, "%s not recognized", ex.Key()) {
					continue
				}

				root, ok := ReconstructParseTree(table, grammar.Start, ex.Len())
				if !assert.True(ok, "%s not reconstructed", ex.Key()) {
					continue
				}

				assert.Equal(ex.Result, root.Leaves())
				assertRulesInGrammar(t, g, root)
			}
		})
	}
}

func assertRulesInGrammar(t *testing.T, g grammar.Grammar, n *Node) {
	if n.IsLeaf() {
		assert.Nil(t, n.Rule)
		return
	}

	assert.Len(t, n.Children, 2)
	r, ok := n.AppliedRule()
	assert.True(t, ok)
	assert.True(t, g.Has(r), "rule %s not in grammar", r)
	assert.Equal(t, grammar.Production{n.Children[0].Symbol, n.Children[1].Symbol}, r.RHS)

	for _, child := range n.Children {
		assertRulesInGrammar(t, g, child)
	}
}
