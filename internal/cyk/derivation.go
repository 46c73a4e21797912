package cyk

import (
	"github.com/dekarrin/codex/internal/grammar"
)

// Step is one step of a derivation. Sequence is the sentential form after the
// step, made of parse tree nodes so that callers can tell which positions
// expand further.
type Step struct {
	Sequence []*Node

	// Rule is the rule applied to reach Sequence. It is nil for the first
	// step.
	Rule *grammar.Rule

	// ReplacedIndex is the position in the previous step's sequence of the
	// node that Rule replaced. It is -1 for the first step.
	ReplacedIndex int
}

// Symbols returns the symbols of the step's sentential form.
func (s Step) Symbols() []grammar.Symbol {
	syms := make([]grammar.Symbol, len(s.Sequence))
	for i := range s.Sequence {
		syms[i] = s.Sequence[i].Symbol
	}
	return syms
}

// DerivationSteps unfolds a parse tree into its leftmost derivation. The
// first step is the root alone. Every later step replaces the leftmost node
// that has children with those children. It returns nil if root is nil.
func DerivationSteps(root *Node) []Step {
	if root == nil {
		return nil
	}

	cur := []*Node{root}
	steps := []Step{{Sequence: cur, ReplacedIndex: -1}}

	for {
		idx := -1
		for i := range cur {
			if !cur[i].IsLeaf() {
				idx = i
				break
			}
		}
		if idx < 0 {
			break
		}

		expanding := cur[idx]
		next := make([]*Node, 0, len(cur)+1)
		next = append(next, cur[:idx]...)
		next = append(next, expanding.Children...)
		next = append(next, cur[idx+1:]...)

		rule := grammar.Rule{LHS: expanding.Symbol}
		if expanding.Rule != nil {
			rule.RHS = *expanding.Rule
		} else if len(expanding.Children) == 2 {
			rule.RHS = grammar.Production{expanding.Children[0].Symbol, expanding.Children[1].Symbol}
		}

		steps = append(steps, Step{Sequence: next, Rule: &rule, ReplacedIndex: idx})
		cur = next
	}

	return steps
}
