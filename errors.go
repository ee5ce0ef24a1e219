package textmaze

import (
	"errors"
	"fmt"
)

var (
	// A grid dimension or maze count was not positive.
	ErrInvalidDimension = errors.New("invalid dimension")
	// Two cells passed to OpenWall do not share a wall.
	ErrNotAdjacent = errors.New("cells are not adjacent")
	// A maze or path file could not be opened, read or written.
	ErrIO = errors.New("I/O error")
	// A line in a maze or path file was malformed or out of bounds.
	ErrParse = errors.New("parse error")
	// A coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// The search exhausted every reachable cell without reaching the exit.
	ErrPathNotFound = errors.New("no path found")
	// The predecessor chain from the exit does not lead back to the entry.
	ErrCorruptPath = errors.New("corrupt path")
	// A maze id was not positive.
	ErrInvalidID = errors.New("invalid maze id")
	// A grid's open walls do not form a spanning tree.
	ErrNotPerfect = errors.New("maze is not perfect")
)

// Describes a single line that was skipped while loading a maze file.
// Unwraps to ErrParse.
type ParseError struct {
	// The 1-based line number within the file.
	Line int
	// The text of the line.
	Text string
	// Why the line was rejected.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
