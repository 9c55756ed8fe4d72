package textbuffer

import "errors"

var (
	// ErrNoHistory is returned by Undo/Redo when there is nothing to undo
	// or redo.
	ErrNoHistory = errors.New("textbuffer: no history entry in that direction")
)
