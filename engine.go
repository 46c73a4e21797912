// Package codex contains a CLI-driven engine for playing grammar puzzles. It
// gets commands from the player and applies them to the current puzzle session
// continuously until the player quits.
package codex

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/codex/internal/command"
	"github.com/dekarrin/codex/internal/cxerrors"
	"github.com/dekarrin/codex/internal/grammar"
	"github.com/dekarrin/codex/internal/input"
	"github.com/dekarrin/codex/internal/presets"
	"github.com/dekarrin/codex/internal/puzzle"
)

// Options are the settings used to create an Engine.
type Options struct {
	// Difficulty is the key of the difficulty of the first puzzle. If empty,
	// the default difficulty of the loaded presets is used.
	Difficulty string

	// Seed is the seed of the first puzzle. If empty, a new one is generated.
	Seed string

	// PresetsFile is the path to a CXP file to load difficulties from. If
	// empty, the built-in difficulties are used.
	PresetsFile string

	// ForceDirect disables readline-based input even when attached to a
	// terminal.
	ForceDirect bool
}

// Engine contains the things needed to run a puzzle from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	presets     presets.Set
	session     *puzzle.Session
	rules       []grammar.Rule
	announced   bool
	in          command.Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

const consoleOutputWidth = 80

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream, and it generates the first puzzle.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	diffs := presets.Builtin()
	if opts.PresetsFile != "" {
		var err error
		diffs, err = presets.LoadFile(opts.PresetsFile)
		if err != nil {
			return nil, fmt.Errorf("load presets: %w", err)
		}
	}

	diff := diffs.DefaultDifficulty()
	if opts.Difficulty != "" {
		var ok bool
		diff, ok = diffs.Find(opts.Difficulty)
		if !ok {
			return nil, fmt.Errorf("no difficulty %q; choose one of %s", opts.Difficulty, diffList(diffs))
		}
	}

	p, err := puzzle.New(diff, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("create puzzle: %w", err)
	}

	eng := &Engine{
		presets:     diffs,
		out:         bufio.NewWriter(outputStream),
		forceDirect: opts.ForceDirect,
	}
	eng.startSession(p)

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		dcr := input.NewDirectReader(inputStream)
		if inputStream == os.Stdin {
			dcr.SetPromptOutput(outputStream)
		}
		eng.in = dcr
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// Session returns the session for the puzzle currently being played.
func (eng *Engine) Session() *puzzle.Session {
	return eng.session
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the puzzle until the QUIT command is received.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Welcome to the Codex Engine\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===========================\n"
	introMsg += "\n"
	introMsg += "Intercepted transmissions follow. Find the grammar that produced them.\n"
	introMsg += "Type HELP for the list of commands.\n\n"
	introMsg += eng.puzzleSummary() + "\n\n"
	introMsg += eng.examplesTable() + "\n\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmd, err := command.Get(eng.in, eng.out)
		if err != nil {
			return fmt.Errorf("get user command: %w", err)
		}

		if cmd.Verb == "QUIT" {
			eng.running = false
			break
		}

		output, err := eng.Execute(cmd)
		if err != nil {
			output = cxerrors.PlayerMessage(err)
			output = rosed.Edit(output).Wrap(consoleOutputWidth).String()
		}
		if err := eng.write(output + "\n\n"); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// write sends s to the output stream and flushes it.
func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// startSession replaces the current session with a new one for p and throws
// away all player rules.
func (eng *Engine) startSession(p puzzle.Puzzle) {
	eng.session = puzzle.NewSession(p)
	eng.rules = nil
	eng.announced = false
}

// playerGrammar builds a Grammar from the player's rules in the order they
// were added.
func (eng *Engine) playerGrammar() grammar.Grammar {
	g := grammar.Grammar{}
	for _, r := range eng.rules {
		g.Add(r)
	}
	return g
}

// recheck runs the player's rules against every example and gives a line of
// status about the result. The first time the puzzle is solved, the status
// includes the win announcement.
func (eng *Engine) recheck() string {
	results := eng.session.Check(eng.playerGrammar())

	decoded := 0
	for _, ok := range results {
		if ok {
			decoded++
		}
	}
	status := fmt.Sprintf("%d/%d transmissions decoded.", decoded, len(results))

	if eng.session.Won() && !eng.announced {
		eng.announced = true
		status += "\n\n*** DECRYPTION COMPLETE ***\n"
		status += fmt.Sprintf("Your rules produce every transmission. Seed %s solved.", eng.session.Puzzle().Seed)
	}
	return status
}
