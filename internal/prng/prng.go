// Package prng provides the seeded pseudo-random source used for puzzle
// generation. It is a port of the ARC4-based generator from David Bau's
// seedrandom library, so a given seed string produces the same sequence here
// as it does in any other seedrandom-compatible implementation.
package prng

import (
	"math"
	"unicode/utf16"
)

const (
	width  = 256
	chunks = 6
	mask   = width - 1

	// 256^6, 2^52 and 2^53 respectively.
	startDenom   = 281474976710656.0
	significance = 4503599627370496.0
	overflow     = 9007199254740992.0
)

// Source is a deterministic stream of pseudo-random numbers keyed by a seed
// string. It is not safe for concurrent use; each caller should create its own
// with New.
type Source struct {
	s    [width]int
	i, j int
}

// New creates a Source keyed by seed. The empty seed is valid and behaves as a
// key of a single zero byte.
func New(seed string) *Source {
	src := &Source{}
	src.schedule(mixKey(seed))

	// RC4-drop[256]
	for k := 0; k < width; k++ {
		src.next()
	}
	return src
}

// mixKey folds the UTF-16 code units of seed into a key of at most 256 bytes.
func mixKey(seed string) []int {
	units := utf16.Encode([]rune(seed))

	var key []int
	smear := 0
	for j := range units {
		idx := mask & j
		if idx >= len(key) {
			key = append(key, 0)
		}
		smear ^= key[idx] * 19
		key[idx] = mask & (smear + int(units[j]))
	}
	return key
}

func (src *Source) schedule(key []int) {
	if len(key) == 0 {
		key = []int{0}
	}

	for i := 0; i < width; i++ {
		src.s[i] = i
	}

	j := 0
	for i := 0; i < width; i++ {
		t := src.s[i]
		j = mask & (j + key[i%len(key)] + t)
		src.s[i] = src.s[j]
		src.s[j] = t
	}
	src.i, src.j = 0, 0
}

// next returns the next RC4 output byte.
func (src *Source) next() int {
	src.i = mask & (src.i + 1)
	t := src.s[src.i]
	src.j = mask & (src.j + t)
	src.s[src.i] = src.s[src.j]
	src.s[src.j] = t
	return src.s[mask&(src.s[src.i]+src.s[src.j])]
}

// Float64 returns a number in [0.0, 1.0) with randomness in all 52 bits of the
// mantissa.
func (src *Source) Float64() float64 {
	n := 0.0
	for k := 0; k < chunks; k++ {
		n = n*width + float64(src.next())
	}
	d := startDenom
	x := 0

	for n < significance {
		n = (n + float64(x)) * width
		d *= width
		x = src.next()
	}
	for n >= overflow {
		n /= 2
		d /= 2
		x >>= 1
	}
	return (n + float64(x)) / d
}

// Intn returns a number in [0, n). It panics if n <= 0.
func (src *Source) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}
	return int(math.Floor(src.Float64() * float64(n)))
}
