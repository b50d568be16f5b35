// Error wrapper remembering where it was created.
//
// Usage:
//
// ```
// wrapped := xe.Wrap(err)
// ```
//
// `wrapped` knows filename, line, and the name of function where itself is created.
//
// Each wrapping step appends one `<- ...` segment to the message,
// so reading it backwards gives the path the error has travelled.

package errors

import (
	"errors"
	"fmt"
	"runtime"
)

type ErrWithCaller struct {
	caller string
	note   string
	err    error
}

func (e *ErrWithCaller) Error() string {
	if e.note == "" {
		return fmt.Sprintf(`@ %s <- %s`, e.caller, e.err.Error())
	}
	return fmt.Sprintf(`@ %s (%s) <- %s`, e.caller, e.note, e.err.Error())
}

func (e *ErrWithCaller) Unwrap() error {
	return e.err
}

func New(text string) error {
	return wrap("", errors.New(text), 1)
}

func Wrap(err error) error {
	return wrap("", err, 1)
}

// Wrap err as if it happened `depth` frames above the caller.
//
// Error constructors use this to point at their own caller,
// not at themselves.
func WrapAsOuter(err error, depth int) error {
	return wrap("", err, depth+1)
}

func WrapWithNote(note string, err error) error {
	return wrap(note, err, 1)
}

func wrap(note string, err error, depth int) error {
	pc, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		file = "?"
		line = -1
	}
	funcname := "(unknown func)"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcname = fn.Name()
	}

	return &ErrWithCaller{
		caller: fmt.Sprintf(`%s "%s" l%d`, funcname, file, line),
		note:   note,
		err:    err,
	}
}
