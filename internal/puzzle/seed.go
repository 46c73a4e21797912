package puzzle

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

// SeedLength is the number of characters in a puzzle seed.
const SeedLength = 6

const seedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seedPattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// ErrInvalidSeed is returned when a seed is not made of exactly SeedLength
// letters and digits.
var ErrInvalidSeed = errors.New("seed must be exactly 6 letters or digits")

// NewSeed returns a new random seed.
func NewSeed() string {
	max := big.NewInt(int64(len(seedChars)))

	var sb strings.Builder
	for i := 0; i < SeedLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// should never happen
			panic(err)
		}
		sb.WriteByte(seedChars[n.Int64()])
	}
	return sb.String()
}

// NormalizeSeed upper-cases s and checks that it is a valid seed. If it is
// not, ErrInvalidSeed is returned.
func NormalizeSeed(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !seedPattern.MatchString(s) {
		return "", ErrInvalidSeed
	}
	return s, nil
}
