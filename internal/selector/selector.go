// Package selector picks the examples shown to the player from the pool of
// strings a hidden grammar derives.
package selector

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/prng"
	"github.com/dekarrin/codex/internal/util"
)

// SelectVariedExamples picks up to targetCount distinct examples from pool so
// that together they use every rule of g that any pool example uses. The same
// arguments always give the same selection.
//
// Selection is greedy with random tie-breaks. A random rule that no chosen
// example uses yet is picked, and then a random pool example that uses it. If
// there are still fewer than targetCount examples once every rule is covered,
// the rest are drawn at random from the unchosen pool examples.
//
// The returned examples are sorted by ascending length, keeping selection
// order among examples of the same length. Rule keys used by examples but
// not present in g are ignored.
func SelectVariedExamples(pool []grammar.Example, g grammar.Grammar, targetCount int, seed string) []grammar.Example {
	rng := prng.New(seed)

	// uncovered is kept in grammar order so that random picks by index are
	// reproducible.
	uncovered := arraylist.New()
	byRule := map[string][]grammar.Example{}
	for _, r := range g.Rules() {
		key := r.Key()
		if _, ok := byRule[key]; ok {
			continue
		}
		byRule[key] = nil
		uncovered.Add(key)
	}

	for _, ex := range pool {
		for _, key := range ex.UsedRules.Ordered() {
			if _, ok := byRule[key]; ok {
				byRule[key] = append(byRule[key], ex)
			}
		}
	}

	var selected []grammar.Example
	selectedKeys := util.NewStringSet()

	for uncovered.Size() > 0 && len(selected) < targetCount {
		idx := rng.Intn(uncovered.Size())
		v, _ := uncovered.Get(idx)
		ruleKey := v.(string)

		candidates := byRule[ruleKey]
		if len(candidates) == 0 {
			uncovered.Remove(idx)
			continue
		}

		ex := candidates[rng.Intn(len(candidates))]
		if selectedKeys.Has(ex.Key()) {
			// it can't contribute anything new
			uncovered.Remove(idx)
			continue
		}

		selected = append(selected, ex)
		selectedKeys.Add(ex.Key())
		for _, used := range ex.UsedRules.Elements() {
			removeValue(uncovered, used)
		}
	}

	remaining := arraylist.New()
	for _, ex := range pool {
		if !selectedKeys.Has(ex.Key()) {
			selectedKeys.Add(ex.Key())
			remaining.Add(ex)
		}
	}

	for len(selected) < targetCount && remaining.Size() > 0 {
		idx := rng.Intn(remaining.Size())
		v, _ := remaining.Get(idx)
		remaining.Remove(idx)
		selected = append(selected, v.(grammar.Example))
	}

	return util.SortBy(selected, func(left, right grammar.Example) bool {
		return left.Len() < right.Len()
	})
}

// removeValue removes the first element of list equal to v, if there is one.
func removeValue(list *arraylist.List, v interface{}) {
	it := list.Iterator()
	for it.Next() {
		if it.Value() == v {
			list.Remove(it.Index())
			return
		}
	}
}
