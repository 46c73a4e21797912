package grammar

import (
	"github.com/dekarrin/codex/internal/util"
)

// sententialForm is one entry of the enumeration queue.
type sententialForm struct {
	seq  []Symbol
	used util.StringSet
}

// Enumerate lists every distinct sequence of symbols derivable from start in
// g whose length is within [minLength, maxLength]. The search is breadth
// first over sentential forms, so shorter derivations are found first. Each
// Example carries the keys of the rules used by the first derivation found
// for its string.
//
// Grammars may be cyclic. Termination comes from never enqueueing the same
// sentential form twice and from not expanding forms that have already
// reached maxLength; every rule adds one symbol, so the number of forms is
// bounded.
//
// If g has no rules, the returned slice is empty.
func Enumerate(g Grammar, start Symbol, maxLength, minLength int) []Example {
	if g.Empty() {
		return nil
	}

	var results []Example
	emitted := util.NewStringSet()

	startForm := []Symbol{start}
	visited := util.NewStringSet()
	visited.Add(SequenceKey(startForm))

	// queue is an arena of forms; head marks the next one to process.
	queue := []sententialForm{{seq: startForm, used: util.NewStringSet()}}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		queue[head] = sententialForm{}
		key := SequenceKey(cur.seq)

		if len(cur.seq) >= minLength && len(cur.seq) <= maxLength && !emitted.Has(key) {
			emitted.Add(key)
			results = append(results, Example{Result: cur.seq, UsedRules: cur.used})
		}

		if len(cur.seq) >= maxLength {
			continue
		}

		for i, sym := range cur.seq {
			for _, rhs := range g[sym] {
				next := make([]Symbol, 0, len(cur.seq)+1)
				next = append(next, cur.seq[:i]...)
				next = append(next, rhs[0], rhs[1])
				next = append(next, cur.seq[i+1:]...)

				nextKey := SequenceKey(next)
				if visited.Has(nextKey) {
					continue
				}
				visited.Add(nextKey)

				used := cur.used.Copy()
				used.Add(Rule{LHS: sym, RHS: rhs}.Key())
				queue = append(queue, sententialForm{seq: next, used: used})
			}
		}
	}

	return results
}
