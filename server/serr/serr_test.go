package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Error(t *testing.T) {
	testCases := []struct {
		name   string
		err    Error
		expect string
	}{
		{
			name:   "message only",
			err:    New("puzzle is gone"),
			expect: "puzzle is gone",
		},
		{
			name:   "cause only",
			err:    New("", ErrNotFound),
			expect: ErrNotFound.Error(),
		},
		{
			name:   "message and causes",
			err:    New("could not load puzzle", ErrNotFound, ErrDB),
			expect: "could not load puzzle: " + ErrNotFound.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.err.Error())
		})
	}
}

func Test_Error_Is(t *testing.T) {
	assert := assert.New(t)

	inner := errors.New("disk on fire")
	err := WrapDB("could not save", inner)

	assert.ErrorIs(err, ErrDB)
	assert.ErrorIs(err, inner)
	assert.NotErrorIs(err, ErrNotFound)
	assert.ErrorIs(err, New("could not save", inner, ErrDB))

	// causes wrapped further are still found
	wrapped := New("", fmt.Errorf("lookup: %w", ErrNotFound))
	assert.ErrorIs(wrapped, ErrNotFound)
}
