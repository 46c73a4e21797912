// Package puzzle builds codex puzzles from a difficulty and a seed, and
// tracks a player's progress on one.
package puzzle

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/selector"
	"github.com/dekarrin/codex/internal/util"
)

const (
	// MaxAttempts is the number of hidden grammars tried before giving up on
	// finding one with a diverse example set.
	MaxAttempts = 500

	// SelectionAttempts is the number of example selections tried for each
	// hidden grammar.
	SelectionAttempts = 5
)

// tracer traces to codex.puzzle .
func tracer() tracing.Trace {
	return tracing.Select("codex.puzzle")
}

// Puzzle is a hidden grammar and the examples of it shown to the player.
type Puzzle struct {
	// Seed is the seed the puzzle was built from. Building a puzzle with the
	// same Difficulty and Seed gives the same puzzle.
	Seed string

	Difficulty Difficulty
	Grammar    grammar.Grammar
	Examples   []grammar.Example
}

// New builds the puzzle for the given difficulty and seed. If seed is empty,
// a new one is generated; either way, the seed actually used is in the
// returned Puzzle.
//
// Hidden grammars are generated from sub-seeds of seed until one derives
// enough examples of the right length and a selection of them is diverse.
// If no diverse selection turns up, the first selection of the full size is
// used instead. If no grammar ever derives enough examples, the grammar for
// seed itself is used with however many examples it has.
func New(diff Difficulty, seed string) (Puzzle, error) {
	if err := diff.Validate(); err != nil {
		return Puzzle{}, fmt.Errorf("difficulty %s: %w", diff, err)
	}

	if seed == "" {
		seed = NewSeed()
	} else {
		var err error
		seed, err = NormalizeSeed(seed)
		if err != nil {
			return Puzzle{}, err
		}
	}

	p := Puzzle{Seed: seed, Difficulty: diff}

	var fallback *Puzzle
	for i := 0; i < MaxAttempts; i++ {
		subSeed := fmt.Sprintf("%s%d", seed, i)
		g := grammar.Generate(diff.Symbols, diff.Rules, subSeed)
		pool := grammar.Enumerate(g, grammar.Start, diff.StringLength, diff.MinLength())

		if len(pool) < diff.ExampleCount {
			tracer().Debugf("attempt %d: grammar derives %d strings, need %d", i, len(pool), diff.ExampleCount)
			continue
		}

		for j := 0; j < SelectionAttempts; j++ {
			selSeed := fmt.Sprintf("%s_sel%d", subSeed, j)
			examples := selector.SelectVariedExamples(pool, g, diff.ExampleCount, selSeed)

			if fallback == nil && len(examples) >= diff.ExampleCount {
				fallback = &Puzzle{Seed: seed, Difficulty: diff, Grammar: g, Examples: examples}
			}

			if Diverse(examples) {
				tracer().Infof("puzzle %s (%s) found on attempt %d, selection %d", seed, diff.Key, i, j)
				p.Grammar = g
				p.Examples = examples
				return p, nil
			}
		}
		tracer().Debugf("attempt %d: no diverse selection in %d tries", i, SelectionAttempts)
	}

	if fallback != nil {
		tracer().Infof("puzzle %s (%s): no diverse example set after %d attempts; using best available", seed, diff.Key, MaxAttempts)
		return *fallback, nil
	}

	tracer().Errorf("puzzle %s (%s): no grammar derived %d examples; truncating pool", seed, diff.Key, diff.ExampleCount)
	g := grammar.Generate(diff.Symbols, diff.Rules, seed)
	pool := grammar.Enumerate(g, grammar.Start, diff.StringLength, diff.MinLength())
	if len(pool) > diff.ExampleCount {
		pool = pool[:diff.ExampleCount]
	}
	p.Grammar = g
	p.Examples = pool
	return p, nil
}

// Diverse returns whether examples has at least 2 distinct first symbols and
// at least 2 distinct last symbols, so that the boundaries of the hidden
// grammar's strings cannot be trivially guessed.
func Diverse(examples []grammar.Example) bool {
	if len(examples) < 2 {
		return false
	}

	firsts := util.NewKeySet[grammar.Symbol]()
	lasts := util.NewKeySet[grammar.Symbol]()
	for _, ex := range examples {
		if len(ex.Result) == 0 {
			continue
		}
		firsts.Add(ex.Result[0])
		lasts.Add(ex.Result[len(ex.Result)-1])
	}

	return firsts.Len() >= 2 && lasts.Len() >= 2
}

// RuleCount returns the number of rules in the hidden grammar, which is the
// number of rules the player is given room for.
func (p Puzzle) RuleCount() int {
	return p.Grammar.RuleCount()
}
