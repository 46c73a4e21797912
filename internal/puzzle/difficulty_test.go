package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Difficulty_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		diff      Difficulty
		expectErr bool
	}{
		{name: "novice", diff: Novice},
		{name: "insanity", diff: Insanity},
		{name: "length window", diff: Difficulty{Key: "W", Symbols: 3, Rules: 3, ExampleCount: 4, StringLength: 5, MinStringLength: 3}},
		{name: "no symbols", diff: Difficulty{Key: "X", Rules: 3, ExampleCount: 4, StringLength: 5}, expectErr: true},
		{name: "no rules", diff: Difficulty{Key: "X", Symbols: 3, ExampleCount: 4, StringLength: 5}, expectErr: true},
		{name: "no examples", diff: Difficulty{Key: "X", Symbols: 3, Rules: 3, StringLength: 5}, expectErr: true},
		{name: "no length", diff: Difficulty{Key: "X", Symbols: 3, Rules: 3, ExampleCount: 4}, expectErr: true},
		{name: "negative min length", diff: Difficulty{Key: "X", Symbols: 3, Rules: 3, ExampleCount: 4, StringLength: 5, MinStringLength: -1}, expectErr: true},
		{name: "min above max", diff: Difficulty{Key: "X", Symbols: 3, Rules: 3, ExampleCount: 4, StringLength: 5, MinStringLength: 6}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.diff.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Difficulty_MinLength(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(5, Standard.MinLength())
	assert.Equal(2, Difficulty{StringLength: 5, MinStringLength: 2}.MinLength())
}

func Test_FindDifficulty(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		expect   Difficulty
		expectOK bool
	}{
		{name: "exact", key: "EXPERT", expect: Expert, expectOK: true},
		{name: "lower case", key: "novice", expect: Novice, expectOK: true},
		{name: "surrounding space", key: "  Insanity ", expect: Insanity, expectOK: true},
		{name: "unknown", key: "NIGHTMARE", expectOK: false},
		{name: "empty", key: "", expectOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, ok := FindDifficulty(Presets(), tc.key)

			assert.Equal(tc.expectOK, ok)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Presets(t *testing.T) {
	assert := assert.New(t)

	presets := Presets()

	keys := make([]string, len(presets))
	for i := range presets {
		keys[i] = presets[i].Key
		assert.NoError(presets[i].Validate())
		assert.Equal(presets[i].Symbols, presets[i].Rules)
		assert.Equal(7, presets[i].ExampleCount)
		assert.Equal(5, presets[i].StringLength)
	}

	assert.Equal([]string{"NOVICE", "STANDARD", "EXPERT", "INSANITY"}, keys)
	assert.Equal(Standard, DefaultDifficulty)
}
