// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of codex.
const Current = "1.0.0"

// ServerCurrent is the string representing the current version of the codex
// puzzle server.
const ServerCurrent = "1.0.0"
