// Package serr holds the errors returned by the codex puzzle server's service
// layer. Its Error type carries a message and any number of causes, and
// errors.Is reports true for an Error and any of its causes.
package serr

import "errors"

var (
	ErrBadCredentials = errors.New("the supplied username/password combination is incorrect")
	ErrPermissions    = errors.New("you don't have permission to do that")
	ErrNotFound       = errors.New("the requested entity could not be found")
	ErrAlreadyExists  = errors.New("resource with same identifying information already exists")
	ErrDB             = errors.New("an error occurred with the DB")
	ErrBadArgument    = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal  = errors.New("malformed data in request")
)

// Error is an error with a message and zero or more causes. Calling
// errors.Is on an Error with any of its causes as the target returns true.
//
// When an Error has a cause, Error() gives its message followed by the text of
// its first cause.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	if len(e.cause) < 1 {
		return e.msg
	}
	if e.msg == "" {
		return e.cause[0].Error()
	}
	return e.msg + ": " + e.cause[0].Error()
}

// Unwrap returns the causes of the Error, or nil if it has none. It is used by
// errors.Is in Go 1.20 and later.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether target is e itself or one of its causes. Go 1.19 uses this
// instead of Unwrap.
func (e Error) Is(target error) bool {
	if other, ok := target.(Error); ok && e.equal(other) {
		return true
	}

	for i := range e.cause {
		if errors.Is(e.cause[i], target) {
			return true
		}
	}
	return false
}

func (e Error) equal(o Error) bool {
	if e.msg != o.msg || len(e.cause) != len(o.cause) {
		return false
	}
	for i := range e.cause {
		if !errors.Is(e.cause[i], o.cause[i]) {
			return false
		}
	}
	return true
}

// WrapDB creates an Error with err and ErrDB as its causes. msg may be "".
func WrapDB(msg string, err error) Error {
	return New(msg, err, ErrDB)
}

// New creates an Error with the given message and causes.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
