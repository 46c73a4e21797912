// Package command defines console command data types and handles parsing of
// commands from input sources.
package command

// Command is a valid command received from a console input source.
type Command struct {
	// Verb is the canonical name of the command being invoked, such as "ADD",
	// "SHOW", or "QUIT". Some verbs have shorthand forms which are typed
	// differently, for instance "BYE" could be typed instead of "QUIT", and
	// both result in a Command with a verb of QUIT.
	Verb string

	// Args are the upper-cased words that followed the verb.
	Args []string

	// Text is everything that followed the verb, exactly as it was typed apart
	// from surrounding whitespace. It is used by commands such as ADD that
	// take free-form input.
	Text string

	// Index is the 1-based number given to commands that refer to a numbered
	// item, such as "DEL 2" or "SHOW 3". It is 0 for all other commands.
	Index int
}

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single user command. It will block until one is
	// ready. If there is an error or output is at end (EOF), the returned
	// string will be empty, otherwise it will always be non-empty unless
	// blanks are allowed.
	//
	// When error is io.EOF, string will always be empty. If EOF was encountered
	// on a call but some input was received, the input will be returned and
	// error will be nil, and the next call to ReadCommand will return "",
	// io.EOF.
	ReadCommand() (string, error)

	// AllowBlank sets whether ReadCommand may return an empty line.
	AllowBlank(allow bool)

	// Close performs any operations required to clean the resources created by
	// the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}
