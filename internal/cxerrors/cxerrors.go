// Package cxerrors has the error types used to report problems with player
// input back to the player.
package cxerrors

import (
	"errors"
	"fmt"
)

// interpreterError is an error caused by attempting to interpret input. Either
// the input could not be understood or it asks for something that is not
// possible in the current puzzle.
//
// It includes a human-readable message to show to the player as well as a
// typical more technical "error message" style message.
type interpreterError struct {
	msg   string
	human string
	wrap  error
}

func (e *interpreterError) Error() string {
	return e.msg
}

// PlayerMessage shows the message that should be displayed to the player to
// describe the error.
func (e *interpreterError) PlayerMessage() string {
	return e.human
}

// Unwrap gives the error that the interpreterError wraps, if it wraps one.
func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Interpreter returns a new error that has both the message to show the
// player and the technical description of the error.
func Interpreter(player, technical string) error {
	return WrapInterpreter(nil, player, technical)
}

// Interpreterf returns a new error that has a message to show to the player
// and an automatically generated Error() description. The arguments given are
// the format string and the arguments to the format string.
func Interpreterf(playerFormat string, a ...interface{}) error {
	return Interpreter(fmt.Sprintf(playerFormat, a...), "")
}

// WrapInterpreter returns a new error that has both the message to show the
// player and the technical description of the error, and that wraps the given
// error. If technical is empty, one is generated from the player message and
// the wrapped error.
func WrapInterpreter(e error, player, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("interpreter: %s", player)
		if e != nil {
			technical += ": " + e.Error()
		}
	}
	return &interpreterError{
		msg:   technical,
		human: player,
		wrap:  e,
	}
}

// WrapInterpreterf returns a new error that has both the message to show the
// player and an automatically generated Error() description, and that wraps
// the given error. The arguments given are the error to wrap, then the format
// followed by its arguments.
func WrapInterpreterf(e error, playerFormat string, a ...interface{}) error {
	return WrapInterpreter(e, fmt.Sprintf(playerFormat, a...), "")
}

// PlayerMessage gets the message to display to the console for the given
// error. If err is or wraps an error created by this package, its player
// message is returned. Otherwise, err.Error() is returned.
func PlayerMessage(err error) string {
	var intErr *interpreterError
	if errors.As(err, &intErr) {
		return intErr.PlayerMessage()
	}
	return err.Error()
}

// IsInterpreter returns whether err is or wraps an error created by this
// package.
func IsInterpreter(err error) bool {
	var intErr *interpreterError
	return errors.As(err, &intErr)
}
