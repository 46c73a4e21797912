package cxerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PlayerMessage(t *testing.T) {
	cause := errors.New("symbol 9 is out of range")

	testCases := []struct {
		name          string
		err           error
		expect        string
		expectInterp  bool
		expectWrapped error
	}{
		{
			name:         "interpreter",
			err:          Interpreter("You can't do that", "bad verb"),
			expect:       "You can't do that",
			expectInterp: true,
		},
		{
			name:         "formatted",
			err:          Interpreterf("I don't know what you mean by %q", "FLY"),
			expect:       `I don't know what you mean by "FLY"`,
			expectInterp: true,
		},
		{
			name:          "wrapping",
			err:           WrapInterpreterf(cause, "That rule won't work: %v", cause),
			expect:        "That rule won't work: symbol 9 is out of range",
			expectInterp:  true,
			expectWrapped: cause,
		},
		{
			name:         "wrapped by another error",
			err:          fmt.Errorf("running command: %w", Interpreter("Nope", "")),
			expect:       "Nope",
			expectInterp: true,
		},
		{
			name:   "plain error",
			err:    cause,
			expect: "symbol 9 is out of range",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, PlayerMessage(tc.err))
			assert.Equal(tc.expectInterp, IsInterpreter(tc.err))
			if tc.expectWrapped != nil {
				assert.ErrorIs(tc.err, tc.expectWrapped)
			}
		})
	}
}

func Test_Interpreter_technicalMessage(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("bad verb", Interpreter("You can't do that", "bad verb").Error())
	assert.Equal("interpreter: You can't do that", Interpreter("You can't do that", "").Error())
	assert.Equal("interpreter: Bad rule: no arrow", WrapInterpreter(errors.New("no arrow"), "Bad rule", "").Error())
}
