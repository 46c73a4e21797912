package puzzle

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Difficulty is the set of parameters a puzzle is generated from.
type Difficulty struct {
	// Key uniquely identifies the difficulty. It is always upper case.
	Key string

	// Label is the name shown to players.
	Label string

	// Symbols is the size of the hidden grammar's alphabet.
	Symbols int

	// Rules is the number of rules in the hidden grammar.
	Rules int

	// ExampleCount is the number of examples shown to the player.
	ExampleCount int

	// StringLength is the maximum length of an example.
	StringLength int

	// MinStringLength is the minimum length of an example. If it is 0,
	// StringLength is used, so that all examples are the same length.
	MinStringLength int
}

var (
	Novice = Difficulty{
		Key:          "NOVICE",
		Label:        "NOVICE",
		Symbols:      2,
		Rules:        2,
		ExampleCount: 7,
		StringLength: 5,
	}

	Standard = Difficulty{
		Key:          "STANDARD",
		Label:        "STANDARD",
		Symbols:      3,
		Rules:        3,
		ExampleCount: 7,
		StringLength: 5,
	}

	Expert = Difficulty{
		Key:          "EXPERT",
		Label:        "EXPERT",
		Symbols:      4,
		Rules:        4,
		ExampleCount: 7,
		StringLength: 5,
	}

	Insanity = Difficulty{
		Key:          "INSANITY",
		Label:        "INSANITY",
		Symbols:      5,
		Rules:        5,
		ExampleCount: 7,
		StringLength: 5,
	}
)

// DefaultDifficulty is used when no difficulty is chosen.
var DefaultDifficulty = Standard

// Presets returns the built-in difficulties, easiest first.
func Presets() []Difficulty {
	return []Difficulty{Novice, Standard, Expert, Insanity}
}

var keyCaser = cases.Upper(language.Und)

// NormalizeKey gives the canonical form of a difficulty key.
func NormalizeKey(key string) string {
	return keyCaser.String(strings.TrimSpace(key))
}

// FindDifficulty returns the difficulty in diffs whose key matches key,
// ignoring case.
func FindDifficulty(diffs []Difficulty, key string) (Difficulty, bool) {
	key = NormalizeKey(key)
	for _, d := range diffs {
		if d.Key == key {
			return d, true
		}
	}
	return Difficulty{}, false
}

// MinLength returns the minimum length of an example.
func (d Difficulty) MinLength() int {
	if d.MinStringLength == 0 {
		return d.StringLength
	}
	return d.MinStringLength
}

// Validate returns an error if d cannot be used to generate a puzzle.
func (d Difficulty) Validate() error {
	if d.Symbols < 1 {
		return fmt.Errorf("symbol count must be at least 1 but is %d", d.Symbols)
	}
	if d.Rules < 1 {
		return fmt.Errorf("rule count must be at least 1 but is %d", d.Rules)
	}
	if d.ExampleCount < 1 {
		return fmt.Errorf("example count must be at least 1 but is %d", d.ExampleCount)
	}
	if d.StringLength < 1 {
		return fmt.Errorf("string length must be at least 1 but is %d", d.StringLength)
	}
	if d.MinStringLength < 0 {
		return fmt.Errorf("minimum string length cannot be negative")
	}
	if d.MinLength() > d.StringLength {
		return fmt.Errorf("minimum string length %d is greater than string length %d", d.MinLength(), d.StringLength)
	}
	return nil
}

func (d Difficulty) String() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Key
}
