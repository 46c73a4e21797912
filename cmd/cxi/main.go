/*
Cxi starts an interactive codex puzzle session.

It generates a puzzle from a difficulty and seed and prints the intercepted
transmissions the player must explain. The interpreter will then read player
commands from stdin and print results to stdout until the "QUIT" command is
input.

Usage:

	cxi [flags]

The flags are:

	-v, --version
		Give the current version of codex and then exit.

	-D, --difficulty KEY
		Start with a puzzle of the given difficulty. Defaults to the default
		difficulty of the loaded presets.

	-s, --seed SEED
		Start with the puzzle for the given seed, which is 6 letters or digits.
		If not given, a random seed is used.

	-p, --presets FILE
		Load difficulties from the given CXP presets file or manifest instead
		of using the built-in ones.

	-d, --direct
		Force reading directly from the console as opposed to using GNU readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

Once a session has started, the user input will be parsed for codex commands.
For an explanation of the commands, type "HELP" once in a session. To exit the
interpreter, type "QUIT".
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/codex"
	"github.com/dekarrin/codex/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode     int = ExitSuccess
	flagVersion        = pflag.BoolP("version", "v", false, "Give the current version of codex and then exit.")
	flagDifficulty     = pflag.StringP("difficulty", "D", "", "Start with a puzzle of the given difficulty.")
	flagSeed           = pflag.StringP("seed", "s", "", "Start with the puzzle for the given seed.")
	flagPresets        = pflag.StringP("presets", "p", "", "Load difficulties from the given CXP file.")
	flagDirect         = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	opts := codex.Options{
		Difficulty:  *flagDifficulty,
		Seed:        *flagSeed,
		PresetsFile: *flagPresets,
		ForceDirect: *flagDirect,
	}

	eng, initErr := codex.New(os.Stdin, os.Stdout, opts)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	err := eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
