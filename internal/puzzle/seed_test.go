package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewSeed(t *testing.T) {
	assert := assert.New(t)

	for i := 0; i < 50; i++ {
		seed := NewSeed()
		assert.Regexp(`^[A-Z0-9]{6}$`, seed)

		normalized, err := NormalizeSeed(seed)
		assert.NoError(err)
		assert.Equal(seed, normalized)
	}
}

func Test_NormalizeSeed(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    string
		expectErr error
	}{
		{name: "already normal", input: "ABC123", expect: "ABC123"},
		{name: "lower case", input: "abc123", expect: "ABC123"},
		{name: "surrounding space", input: " Q1W2E3\n", expect: "Q1W2E3"},
		{name: "too short", input: "ABC12", expectErr: ErrInvalidSeed},
		{name: "too long", input: "ABC1234", expectErr: ErrInvalidSeed},
		{name: "punctuation", input: "ABC-12", expectErr: ErrInvalidSeed},
		{name: "empty", input: "", expectErr: ErrInvalidSeed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := NormalizeSeed(tc.input)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}

			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}
