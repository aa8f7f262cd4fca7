package runner

import (
	"errors"
	"fmt"

	"github.com/mrled/suns/drills/internal/exercise"
)

var (
	ErrInvalidArgs = errors.New("invalid arguments")
	ErrUnknownKind = errors.New("unknown exercise")
)

// ArgError describes a rejected exercise argument. Index is -1 when the
// problem is the number of arguments rather than one of their values.
type ArgError struct {
	Kind   exercise.Kind
	Index  int
	Value  string
	Reason string
}

func (e *ArgError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: argument %d (%q): %s", e.Kind, e.Index+1, e.Value, e.Reason)
}

func (e *ArgError) Unwrap() error {
	return ErrInvalidArgs
}
