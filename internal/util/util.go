// Package util contains generic helpers shared by the rest of codex.
package util

import (
	"sort"
	"strings"
)

// MakeTextList gives a nice list of things, joined with commas and a final
// "and" (or "or" if useOr is set).
func MakeTextList(items []string, useOr bool) string {
	conj := "and"
	if useOr {
		conj = "or"
	}

	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conj + " " + items[1]
	default:
		// if its more than two, use an oxford comma
		withConj := make([]string, len(items))
		copy(withConj, items)
		withConj[len(withConj)-1] = conj + " " + withConj[len(withConj)-1]
		return strings.Join(withConj, ", ")
	}
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// SortBy returns a copy of sl sorted with the given less function. The sort
// is stable.
func SortBy[E any](sl []E, less func(left, right E) bool) []E {
	sorted := make([]E, len(sl))
	copy(sorted, sl)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// SliceRemove returns a new slice with every occurance of v removed from sl.
func SliceRemove[E comparable](v E, sl []E) []E {
	updated := make([]E, 0, len(sl))
	for i := range sl {
		if sl[i] != v {
			updated = append(updated, sl[i])
		}
	}
	return updated
}
