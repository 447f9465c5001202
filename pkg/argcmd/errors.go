package argcmd

import (
	"errors"
	"fmt"

	"github.com/bastiangx/argcmd/pkg/trie"
)

var (
	// ErrDuplicate is returned when a command name or alias is already taken.
	ErrDuplicate = errors.New("argcmd: duplicate command name")
	// ErrInvalidName is returned for names that are not lower case hyphenated tokens.
	ErrInvalidName = errors.New("argcmd: invalid command name")
	// ErrInvalidSignature is returned by RegisterMethods for Cmd, Args or Help
	// methods of the wrong type.
	ErrInvalidSignature = errors.New("argcmd: invalid command signature")
	// ErrNotFound is returned when removing a command that is not registered.
	ErrNotFound = trie.ErrNotFound

	ErrUnknownCommand = errors.New("unknown command")
	ErrNoCommand      = errors.New("no command given")
)

// UsageError reports a command line the parser could not accept: an unknown
// command, a bad flag or the wrong number of arguments. It maps to exit
// status 2.
type UsageError struct {
	Err error
	// Name is the unknown command name, if that is what went wrong.
	Name string
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitError carries the exit status a command asked for.
type ExitError struct {
	Code int
	Err  error
}

// Exit returns an error that makes the command exit with code.
func Exit(code int) error {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
