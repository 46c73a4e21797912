package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/codex/internal/puzzle"
)

const customPresets = `format = "CODEX"
type = "PRESETS"
default = "easy"

[[difficulty]]
key = "easy"
label = "Easy Going"
symbols = 2
rules = 3
examples = 5
length = 4
min_length = 2

[[difficulty]]
key = "HARD"
symbols = 5
rules = 7
examples = 9
length = 6
`

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Set
		expectErr bool
	}{
		{
			name:  "custom presets",
			input: customPresets,
			expect: Set{
				Default: "EASY",
				Difficulties: []puzzle.Difficulty{
					{Key: "EASY", Label: "Easy Going", Symbols: 2, Rules: 3, ExampleCount: 5, StringLength: 4, MinStringLength: 2},
					{Key: "HARD", Label: "HARD", Symbols: 5, Rules: 7, ExampleCount: 9, StringLength: 6},
				},
			},
		},
		{
			name:   "no difficulties",
			input:  "format = \"CODEX\"\ntype = \"PRESETS\"\n",
			expect: Set{},
		},
		{
			name:  "default is first when not given",
			input: "format = \"CODEX\"\ntype = \"PRESETS\"\n[[difficulty]]\nkey = \"ONLY\"\nsymbols = 1\nrules = 1\nexamples = 1\nlength = 2\n",
			expect: Set{
				Default: "ONLY",
				Difficulties: []puzzle.Difficulty{
					{Key: "ONLY", Label: "ONLY", Symbols: 1, Rules: 1, ExampleCount: 1, StringLength: 2},
				},
			},
		},
		{
			name:      "wrong format",
			input:     "format = \"TUNA\"\ntype = \"PRESETS\"\n",
			expectErr: true,
		},
		{
			name:      "wrong type",
			input:     "format = \"CODEX\"\ntype = \"MANIFEST\"\n",
			expectErr: true,
		},
		{
			name:      "missing key",
			input:     "format = \"CODEX\"\ntype = \"PRESETS\"\n[[difficulty]]\nsymbols = 1\nrules = 1\nexamples = 1\nlength = 2\n",
			expectErr: true,
		},
		{
			name:      "invalid difficulty",
			input:     "format = \"CODEX\"\ntype = \"PRESETS\"\n[[difficulty]]\nkey = \"X\"\nsymbols = 0\nrules = 1\nexamples = 1\nlength = 2\n",
			expectErr: true,
		},
		{
			name:      "unknown default",
			input:     "format = \"CODEX\"\ntype = \"PRESETS\"\ndefault = \"NOPE\"\n[[difficulty]]\nkey = \"X\"\nsymbols = 1\nrules = 1\nexamples = 1\nlength = 2\n",
			expectErr: true,
		},
		{
			name:      "bad toml",
			input:     "format = \"CODEX\"\ntype = \"PRESETS\"\n[[difficulty]\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse([]byte(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Marshal_builtinRoundTrip(t *testing.T) {
	assert := assert.New(t)

	data, err := Marshal(Builtin())
	require.NoError(t, err)

	info, err := ScanFileInfo(data)
	require.NoError(t, err)
	assert.Equal(FileInfo{Format: "CODEX", Type: "PRESETS"}, info)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(Builtin(), parsed)
}

func Test_ScanFileInfo(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect FileInfo
	}{
		{name: "header only", input: "format = \"CODEX\"\ntype = \"MANIFEST\"\n", expect: FileInfo{Format: "CODEX", Type: "MANIFEST"}},
		{name: "stops at first table", input: customPresets, expect: FileInfo{Format: "CODEX", Type: "PRESETS"}},
		{name: "empty", input: "", expect: FileInfo{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ScanFileInfo([]byte(tc.input))
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Set_DefaultDifficulty(t *testing.T) {
	testCases := []struct {
		name   string
		set    Set
		expect puzzle.Difficulty
	}{
		{name: "builtin", set: Builtin(), expect: puzzle.Standard},
		{name: "named default", set: Set{Default: "expert", Difficulties: puzzle.Presets()}, expect: puzzle.Expert},
		{name: "missing default uses first", set: Set{Default: "NOPE", Difficulties: puzzle.Presets()}, expect: puzzle.Novice},
		{name: "empty set", set: Set{}, expect: puzzle.DefaultDifficulty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.set.DefaultDifficulty())
		})
	}
}

func Test_LoadFile_manifest(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "custom.cxp"), customPresets)
	writeFile(t, filepath.Join(dir, "sub", "override.cxp"), "format = \"CODEX\"\ntype = \"PRESETS\"\ndefault = \"hard\"\n[[difficulty]]\nkey = \"easy\"\nsymbols = 2\nrules = 2\nexamples = 3\nlength = 3\n")
	writeFile(t, filepath.Join(dir, "sub", "manifest.cxp"), "format = \"CODEX\"\ntype = \"MANIFEST\"\nfiles = [\"override.cxp\"]\n")
	writeFile(t, filepath.Join(dir, "manifest.cxp"), "format = \"CODEX\"\ntype = \"MANIFEST\"\nfiles = [\"custom.cxp\", \"sub/manifest.cxp\"]\n")

	actual, err := LoadFile(filepath.Join(dir, "manifest.cxp"))
	require.NoError(t, err)

	expect := Set{
		Default: "HARD",
		Difficulties: []puzzle.Difficulty{
			{Key: "EASY", Label: "EASY", Symbols: 2, Rules: 2, ExampleCount: 3, StringLength: 3},
			{Key: "HARD", Label: "HARD", Symbols: 5, Rules: 7, ExampleCount: 9, StringLength: 6},
		},
	}
	assert.Equal(expect, actual)
}

func Test_LoadFile_errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "loop-a.cxp"), "format = \"CODEX\"\ntype = \"MANIFEST\"\nfiles = [\"loop-b.cxp\"]\n")
	writeFile(t, filepath.Join(dir, "loop-b.cxp"), "format = \"CODEX\"\ntype = \"MANIFEST\"\nfiles = [\"loop-a.cxp\"]\n")
	writeFile(t, filepath.Join(dir, "empty.cxp"), "format = \"CODEX\"\ntype = \"MANIFEST\"\nfiles = []\n")
	writeFile(t, filepath.Join(dir, "unknown.cxp"), "format = \"CODEX\"\ntype = \"SAVE\"\n")

	testCases := []struct {
		name      string
		file      string
		expectErr error
	}{
		{name: "circular manifests", file: "loop-a.cxp", expectErr: ErrManifestCircularRef},
		{name: "empty manifest", file: "empty.cxp", expectErr: ErrManifestEmpty},
		{name: "unknown type", file: "unknown.cxp"},
		{name: "missing file", file: "nope.cxp"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := LoadFile(filepath.Join(dir, tc.file))

			assert.Error(err)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
			}
		})
	}
}

func Test_SaveFile(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "saved.cxp")

	require.NoError(t, SaveFile(path, Builtin()))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(Builtin(), loaded)
}

func writeFile(t *testing.T, path string, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
