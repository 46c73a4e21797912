package puzzle

import (
	"sync"

	"github.com/dekarrin/codex/internal/cyk"
	"github.com/dekarrin/codex/internal/grammar"
)

// Session is one player's attempt at a Puzzle. It holds the player's current
// grammar and which examples that grammar recognizes. A Session is not safe
// for concurrent use.
type Session struct {
	puzzle  Puzzle
	current grammar.Grammar
	tables  []cyk.Table
	won     bool
}

// NewSession starts a session on p with an empty player grammar.
func NewSession(p Puzzle) *Session {
	s := &Session{puzzle: p}
	s.Check(grammar.Grammar{})
	return s
}

// Puzzle returns the puzzle the session is for.
func (s *Session) Puzzle() Puzzle {
	return s.puzzle
}

// Grammar returns a copy of the player grammar most recently checked.
func (s *Session) Grammar() grammar.Grammar {
	return s.current.Copy()
}

// Check sets the player's grammar to g and recognizes every example against
// it. The returned slice gives, for each example in order, whether g derives
// it from the start symbol.
func (s *Session) Check(g grammar.Grammar) []bool {
	s.current = g.Copy()

	examples := s.puzzle.Examples
	tables := make([]cyk.Table, len(examples))

	wg := sync.WaitGroup{}
	for i := range examples {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if table, ok := cyk.Parse(s.current, examples[i].Result, grammar.Start); ok {
				tables[i] = table
			}
		}(i)
	}
	wg.Wait()

	s.tables = tables

	if s.Solved() {
		s.won = true
	}

	return s.Parsable()
}

// Parsable returns, for each example in order, whether the current grammar
// derives it.
func (s *Session) Parsable() []bool {
	results := make([]bool, len(s.tables))
	for i := range s.tables {
		results[i] = s.tables[i] != nil
	}
	return results
}

// Solved returns whether the current grammar derives every example. A puzzle
// with no examples is never solved.
func (s *Session) Solved() bool {
	if len(s.tables) == 0 {
		return false
	}
	for i := range s.tables {
		if s.tables[i] == nil {
			return false
		}
	}
	return true
}

// Won returns whether any grammar checked in the session has solved the
// puzzle. Once true, it stays true.
func (s *Session) Won() bool {
	return s.won
}

// DerivationSteps returns the derivation of example i under the current
// grammar. It returns (nil, false) if i is out of range or the example is not
// currently recognized.
func (s *Session) DerivationSteps(i int) ([]cyk.Step, bool) {
	if i < 0 || i >= len(s.tables) || s.tables[i] == nil {
		return nil, false
	}

	root, ok := cyk.ReconstructParseTree(s.tables[i], grammar.Start, len(s.puzzle.Examples[i].Result))
	if !ok {
		return nil, false
	}
	return cyk.DerivationSteps(root), true
}
