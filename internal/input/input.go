// Package input contains identifiers used in getting codex console input from
// CLI or other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is the prompt shown before each line of input when one is
// shown at all.
const DefaultPrompt = "> "

// DirectCommandReader implements command.Reader and reads commands from any
// generic input stream directly. It can be used generically with any io.Reader
// but does not sanitize the input of control and escape sequences.
//
// By default no prompt is written; call SetPromptOutput to have the prompt
// echoed to a writer before each read.
//
// DirectCommandReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectCommandReader struct {
	r             *bufio.Reader
	promptOut     io.Writer
	prompt        string
	blanksAllowed bool
}

// InteractiveCommandReader implements command.Reader and reads commands from
// stdin using a go implementation of the GNU Readline library. This keeps input
// clear of all typing and editing escape sequences and enables the use of
// command history. This should in general probably only be used when directly
// connecting to a TTY for input.
//
// InteractiveCommandReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a new DirectCommandReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r:      bufio.NewReader(r),
		prompt: DefaultPrompt,
	}
}

// NewInteractiveReader creates a new InteractiveCommandReader and initializes
// readline. The returned InteractiveCommandReader must have Close() called on
// it before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveCommandReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close cleans up resources associated with the DirectCommandReader. The
// DirectCommandReader currently holds nothing that needs releasing, but
// callers should still call it.
func (dcr *DirectCommandReader) Close() error {
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveCommandReader.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

// ReadCommand reads the next line from the input stream. The returned string
// will only be empty if there is an error reading input or blanks are allowed,
// otherwise this function is blocked on until a line containing non-space
// characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	return readNonBlank(func() (string, error) {
		if dcr.promptOut != nil && dcr.prompt != "" {
			if _, err := io.WriteString(dcr.promptOut, dcr.prompt); err != nil {
				return "", fmt.Errorf("write prompt: %w", err)
			}
		}
		return dcr.r.ReadString('\n')
	}, dcr.blanksAllowed)
}

// ReadCommand reads the next command from stdin. The returned string will only
// be empty if there is an error or blanks are allowed, otherwise this function
// is blocked on until a line consisting of more than empty or whitespace-only
// input is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	return readNonBlank(icr.rl.Readline, icr.blanksAllowed)
}

// readNonBlank calls readLine until it gets a line that has non-space
// characters in it, or until any line is read if allowBlank is set. Input
// that ends without a trailing newline is returned on its own and io.EOF is
// reported on the following call.
func readNonBlank(readLine func() (string, error), allowBlank bool) (string, error) {
	for {
		line, err := readLine()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line != "" || allowBlank {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (dcr *DirectCommandReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (icr *InteractiveCommandReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPromptOutput sets the writer that the prompt is written to before each
// read. Setting it to nil disables the prompt.
func (dcr *DirectCommandReader) SetPromptOutput(w io.Writer) {
	dcr.promptOut = w
}

// SetPrompt updates the prompt to the given text.
func (dcr *DirectCommandReader) SetPrompt(p string) {
	dcr.prompt = p
}

// GetPrompt gets the current prompt.
func (dcr *DirectCommandReader) GetPrompt() string {
	return dcr.prompt
}

// SetPrompt updates the prompt to the given text.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.prompt = p
	icr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (icr *InteractiveCommandReader) GetPrompt() string {
	return icr.prompt
}
