package sqlite

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/puzzle"
	"github.com/dekarrin/codex/internal/util"
)

// puzzleState is the part of a dao.Puzzle that is fixed when the puzzle is
// created: its difficulty, hidden grammar, and examples. It is stored as a
// single binary blob.
type puzzleState struct {
	diff     puzzle.Difficulty
	g        grammar.Grammar
	examples []grammar.Example
}

func (ps puzzleState) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(ps.diff.Key)...)
	data = append(data, rezi.EncString(ps.diff.Label)...)
	data = append(data, rezi.EncInt(ps.diff.Symbols)...)
	data = append(data, rezi.EncInt(ps.diff.Rules)...)
	data = append(data, rezi.EncInt(ps.diff.ExampleCount)...)
	data = append(data, rezi.EncInt(ps.diff.StringLength)...)
	data = append(data, rezi.EncInt(ps.diff.MinStringLength)...)

	rules := ps.g.Rules()
	data = append(data, rezi.EncInt(len(rules))...)
	for _, r := range rules {
		data = append(data, rezi.EncInt(int(r.LHS))...)
		data = append(data, rezi.EncInt(int(r.RHS[0]))...)
		data = append(data, rezi.EncInt(int(r.RHS[1]))...)
	}

	data = append(data, rezi.EncInt(len(ps.examples))...)
	for _, ex := range ps.examples {
		data = append(data, rezi.EncInt(len(ex.Result))...)
		for _, sym := range ex.Result {
			data = append(data, rezi.EncInt(int(sym))...)
		}

		used := ex.UsedRules.Ordered()
		data = append(data, rezi.EncInt(len(used))...)
		for _, key := range used {
			data = append(data, rezi.EncString(key)...)
		}
	}

	return data, nil
}

func (ps *puzzleState) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	decInt := func(name string) int {
		if err != nil {
			return 0
		}
		var v int
		v, n, err = rezi.DecInt(data)
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return 0
		}
		data = data[n:]
		return v
	}
	decString := func(name string) string {
		if err != nil {
			return ""
		}
		var v string
		v, n, err = rezi.DecString(data)
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return ""
		}
		data = data[n:]
		return v
	}

	var st puzzleState
	st.diff.Key = decString("difficulty key")
	st.diff.Label = decString("difficulty label")
	st.diff.Symbols = decInt("symbols")
	st.diff.Rules = decInt("rules")
	st.diff.ExampleCount = decInt("example count")
	st.diff.StringLength = decInt("string length")
	st.diff.MinStringLength = decInt("min string length")

	ruleCount := decInt("rule count")
	st.g = grammar.Grammar{}
	for i := 0; i < ruleCount && err == nil; i++ {
		lhs := decInt("rule LHS")
		rhs0 := decInt("rule RHS")
		rhs1 := decInt("rule RHS")
		st.g.Add(grammar.Rule{
			LHS: grammar.Symbol(lhs),
			RHS: grammar.Production{grammar.Symbol(rhs0), grammar.Symbol(rhs1)},
		})
	}

	exCount := decInt("example count")
	for i := 0; i < exCount && err == nil; i++ {
		var ex grammar.Example

		symCount := decInt("example length")
		ex.Result = make([]grammar.Symbol, 0, symCount)
		for j := 0; j < symCount && err == nil; j++ {
			ex.Result = append(ex.Result, grammar.Symbol(decInt("example symbol")))
		}

		ex.UsedRules = util.NewStringSet()
		usedCount := decInt("used rule count")
		for j := 0; j < usedCount && err == nil; j++ {
			ex.UsedRules.Add(decString("used rule"))
		}

		st.examples = append(st.examples, ex)
	}

	if err != nil {
		return err
	}

	*ps = st
	return nil
}
