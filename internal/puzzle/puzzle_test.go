package puzzle

import (
	"fmt"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/codex/internal/cyk"
	"github.com/dekarrin/codex/internal/grammar"
)

func Test_New_presets(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)

	for _, diff := range Presets() {
		for i := 0; i < 5; i++ {
			seed := fmt.Sprintf("%.3sX%02d", diff.Key, i)
			t.Run(seed, func(t *testing.T) {
				assert := assert.New(t)

				p, err := New(diff, seed)
				if !assert.NoError(err) {
					return
				}

				assert.Equal(seed, p.Seed)
				assert.Equal(diff, p.Difficulty)
				assert.Equal(diff.Rules, p.RuleCount())
				assert.Len(p.Examples, diff.ExampleCount)
				assert.True(Diverse(p.Examples), "examples are not diverse")

				seen := map[string]bool{}
				for _, ex := range p.Examples {
					assert.False(seen[ex.Key()], "duplicate example %s", ex.Key())
					seen[ex.Key()] = true

					assert.GreaterOrEqual(ex.Len(), diff.MinLength())
					assert.LessOrEqual(ex.Len(), diff.StringLength)

					_, ok := cyk.Parse(p.Grammar, ex.Result, grammar.Start)
					assert.True(ok, "hidden grammar does not derive %s", ex.Key())
				}
			})
		}
	}
}

func Test_New_deterministic(t *testing.T) {
	assert := assert.New(t)

	first, err := New(Expert, "R3PLAY")
	if !assert.NoError(err) {
		return
	}
	second, err := New(Expert, "r3play")
	if !assert.NoError(err) {
		return
	}

	assert.Equal(first, second)
}

func Test_New_generatesSeed(t *testing.T) {
	assert := assert.New(t)

	p, err := New(Novice, "")
	if !assert.NoError(err) {
		return
	}

	assert.Regexp(`^[A-Z0-9]{6}$`, p.Seed)

	replayed, err := New(Novice, p.Seed)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(p, replayed)
}

func Test_New_errors(t *testing.T) {
	testCases := []struct {
		name string
		diff Difficulty
		seed string
	}{
		{name: "invalid difficulty", diff: Difficulty{Key: "BROKEN", Symbols: 3}, seed: "ABCDEF"},
		{name: "invalid seed", diff: Standard, seed: "not a seed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.diff, tc.seed)
			assert.Error(t, err)
		})
	}
}

func Test_New_fallbacks(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)

	testCases := []struct {
		name   string
		diff   Difficulty
		expect []string
	}{
		{
			// the only grammar is 1 -> 1 1, which derives exactly one string
			// of length 2, so no selection can ever be diverse.
			name:   "no diverse selection",
			diff:   Difficulty{Key: "ONE", Symbols: 1, Rules: 1, ExampleCount: 1, StringLength: 2},
			expect: []string{"1,1"},
		},
		{
			name:   "pool never large enough",
			diff:   Difficulty{Key: "STARVED", Symbols: 1, Rules: 1, ExampleCount: 3, StringLength: 2},
			expect: []string{"1,1"},
		},
		{
			name:   "pool never large enough with a wider window",
			diff:   Difficulty{Key: "STARVED", Symbols: 1, Rules: 1, ExampleCount: 9, StringLength: 3, MinStringLength: 1},
			expect: []string{"1", "1,1", "1,1,1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			p, err := New(tc.diff, "FALL84")
			if !assert.NoError(err) {
				return
			}

			var actual []string
			for _, ex := range p.Examples {
				actual = append(actual, ex.Key())
			}

			assert.Equal(tc.expect, actual)
			assert.Equal(grammar.Grammar{1: {{1, 1}}}, p.Grammar)
		})
	}
}

func Test_Diverse(t *testing.T) {
	ex := func(syms ...grammar.Symbol) grammar.Example {
		return grammar.Example{Result: syms}
	}

	testCases := []struct {
		name     string
		examples []grammar.Example
		expect   bool
	}{
		{name: "none", examples: nil, expect: false},
		{name: "single", examples: []grammar.Example{ex(1, 2)}, expect: false},
		{name: "same first", examples: []grammar.Example{ex(1, 2), ex(1, 3)}, expect: false},
		{name: "same last", examples: []grammar.Example{ex(1, 2), ex(3, 2)}, expect: false},
		{name: "differ at both ends", examples: []grammar.Example{ex(1, 2), ex(3, 1)}, expect: true},
		{name: "spread across examples", examples: []grammar.Example{ex(1, 2), ex(1, 3), ex(2, 3)}, expect: true},
		{name: "single symbol strings", examples: []grammar.Example{ex(1), ex(2)}, expect: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Diverse(tc.examples))
		})
	}
}
