package earnings

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewFields marks a row that does not carry money and game columns.
	ErrTooFewFields = errors.New("too few fields")
	// ErrInvalidAmount marks a money field that is not a finite non-negative number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrEmptyName marks a row whose game name is empty after unquoting.
	ErrEmptyName = errors.New("empty game name")
)

// IOError reports a failure to open, read or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError describes a rejected row. Rows are skipped, never fatal.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
