// Package presets loads puzzle difficulties from CXP (Codex Presets) files, a
// TOML-based format. Every CXP file starts with a header giving its format
// and type:
//
//	format = "CODEX"
//	type = "PRESETS"
//
// A PRESETS file lists difficulties in [[difficulty]] tables and may name a
// default with a top-level 'default' key. A MANIFEST file lists other CXP
// files to load, relative to itself, in a top-level 'files' array.
package presets

import (
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/codex/internal/puzzle"
)

const MaxManifestRecursionDepth = 32

var (
	// ErrManifestEmpty is the error returned when a manifest file is read
	// successfully but specifies no additional files to load.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is the error returned when the recusion level of
	// MaxManifestRecursionDepth is reached and an additional Manifest is then
	// specified, which would cause recursion to go deeper.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is the error returned when a manifest specifies any
	// series of files that with their own manifests refer back to the original
	// manifest, and therefore cannot be followed.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Set is a collection of difficulties along with which one is the default.
type Set struct {
	// Difficulties are in the order they were defined.
	Difficulties []puzzle.Difficulty

	// Default is the key of the default difficulty.
	Default string
}

// FileInfo contains the essential information all CXP files must contain. It
// can be obtained from a file by reading it into memory and calling
// ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Builtin returns the Set of the built-in difficulties.
func Builtin() Set {
	return Set{
		Difficulties: puzzle.Presets(),
		Default:      puzzle.DefaultDifficulty.Key,
	}
}

// Find returns the difficulty in s with the given key, ignoring case.
func (s Set) Find(key string) (puzzle.Difficulty, bool) {
	return puzzle.FindDifficulty(s.Difficulties, key)
}

// DefaultDifficulty returns the default difficulty of s. If s does not name a
// default that it contains, its first difficulty is used. If s is empty,
// puzzle.DefaultDifficulty is returned.
func (s Set) DefaultDifficulty() puzzle.Difficulty {
	if d, ok := s.Find(s.Default); ok {
		return d
	}
	if len(s.Difficulties) > 0 {
		return s.Difficulties[0]
	}
	return puzzle.DefaultDifficulty
}

// Keys returns the keys of all difficulties in s, in order.
func (s Set) Keys() []string {
	keys := make([]string, len(s.Difficulties))
	for i := range s.Difficulties {
		keys[i] = s.Difficulties[i].Key
	}
	return keys
}

// LoadFile loads a Set from the CXP file at path. The file's type is
// auto-detected; if it is a MANIFEST, every file it lists is loaded in turn
// and the results are merged. A difficulty defined in a later file replaces
// one with the same key from an earlier file.
func LoadFile(path string) (Set, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return Set{}, err
	}

	return parsePresets(unmarshaled)
}

// Parse reads a Set from the bytes of a single PRESETS file.
func Parse(data []byte) (Set, error) {
	unmarshaled, err := unmarshalPresets(data)
	if err != nil {
		return Set{}, err
	}

	return parsePresets(unmarshaled)
}

// Marshal gives the bytes of a PRESETS file that defines s.
func Marshal(s Set) ([]byte, error) {
	return marshalPresets(s)
}

// SaveFile writes s to path as a PRESETS file.
func SaveFile(path string, s Set) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%q: writing to disk: %w", path, err)
	}
	return nil
}

// ScanFileInfo takes the given data bytes of bytes and attempts to read the CXP
// format common header info from it. The bytes are read up to the first
// instance of a table definition header and those bytes are parsed for the
// info. If there is an error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	var onNewLine = true
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	_, err := toml.Decode(string(scanData), &info)
	return info, err
}
