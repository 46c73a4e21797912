package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Source_Float64_knownSequence(t *testing.T) {
	assert := assert.New(t)

	src := New("hello.")

	assert.Equal(0.9282578795792454, src.Float64())
	assert.Equal(0.3752569768646784, src.Float64())
}

func Test_Source_deterministic(t *testing.T) {
	testCases := []struct {
		name string
		seed string
	}{
		{name: "empty seed", seed: ""},
		{name: "puzzle seed", seed: "ABC1230"},
		{name: "selection seed", seed: "ABC1230_sel4"},
		{name: "long seed", seed: "a seed that is long enough to wrap past the end of the key buffer if it kept going for a good while longer than most seeds do, which is to say a lot longer than two hundred and fifty six characters in total, although this one is not quite that long yet; now it is"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			first := New(tc.seed)
			second := New(tc.seed)

			for i := 0; i < 100; i++ {
				v := first.Float64()
				assert.Equal(v, second.Float64())
				assert.GreaterOrEqual(v, 0.0)
				assert.Less(v, 1.0)
			}
		})
	}
}

func Test_Source_differentSeedsDiverge(t *testing.T) {
	assert := assert.New(t)

	a := New("ABC1230")
	b := New("ABC1231")

	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
		}
	}
	assert.False(same)
}

func Test_Source_Intn(t *testing.T) {
	assert := assert.New(t)

	src := New("ints")
	for i := 0; i < 500; i++ {
		v := src.Intn(5)
		assert.GreaterOrEqual(v, 0)
		assert.Less(v, 5)
	}

	assert.Panics(func() {
		src.Intn(0)
	})
}
