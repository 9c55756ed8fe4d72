package reducer

import "errors"

// Sentinel errors, grouped flat per the teacher's pkg/state/errors.go
// style (a flat var block, wrapped with %w at call sites).
var (
	// ErrNoHandler names the case of an action whose type path has no
	// registered handler. The reducer does not return it: RunQueued logs a
	// warning and drops the action.
	ErrNoHandler = errors.New("reducer: no handler registered for action")
	// ErrInvalidHistoryIndex is returned by SetHistoryIndex when asked to
	// jump outside [-1, len(history)-1]. It does not abort the process: a
	// direct caller receives it, and a Project::SetHistoryIndex action
	// carrying such an index is logged and dropped by RunQueued.
	ErrInvalidHistoryIndex = errors.New("reducer: invalid history index")
	// ErrNoProjectHandler names the case of a Project::* action arriving
	// with no ProjectHandler wired via SetProjectHandler. The reducer does
	// not return it: it logs a warning and drops the action.
	ErrNoProjectHandler = errors.New("reducer: no project handler configured")
	// ErrNoFilePath is returned by TextBuffer::Save when the buffer has no
	// associated file path and the action carries none.
	ErrNoFilePath = errors.New("reducer: text buffer has no file path")
)
