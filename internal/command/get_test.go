package command

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sliceReader struct {
	lines []string
}

func (sr *sliceReader) ReadCommand() (string, error) {
	if len(sr.lines) == 0 {
		return "", io.EOF
	}
	line := sr.lines[0]
	sr.lines = sr.lines[1:]
	return line, nil
}

func (sr *sliceReader) AllowBlank(bool) {}

func (sr *sliceReader) Close() error {
	return nil
}

func Test_Get(t *testing.T) {
	testCases := []struct {
		name         string
		lines        []string
		expect       Command
		expectErr    bool
		expectOutput string
	}{
		{
			name:   "valid first line",
			lines:  []string{"rules"},
			expect: Command{Verb: "RULES", Args: []string{}},
		},
		{
			name:         "invalid then valid",
			lines:        []string{"dance", "seed"},
			expect:       Command{Verb: "SEED", Args: []string{}},
			expectOutput: "I don't know what you mean by \"DANCE\"\nTry HELP for valid commands\n",
		},
		{
			name:   "blank lines skipped",
			lines:  []string{"", "  ", "quit"},
			expect: Command{Verb: "QUIT", Args: []string{}},
		},
		{
			name:      "end of input",
			lines:     []string{""},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var out bytes.Buffer
			w := bufio.NewWriter(&out)

			actual, err := Get(&sliceReader{lines: tc.lines}, w)
			if tc.expectErr {
				assert.ErrorIs(err, io.EOF)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
			assert.Equal(tc.expectOutput, out.String())
		})
	}
}
