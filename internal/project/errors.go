package project

import "errors"

// ErrMalformedProject is returned when a project file's bytes do not
// parse as the format its extension implies; the current store is left
// untouched (spec §7: load either fully succeeds or has no effect).
var ErrMalformedProject = errors.New("project: malformed project file")

// ErrUnsupportedExtension is returned for any extension other than the
// state format (.fls) or the action-history format (.fld/.flp).
var ErrUnsupportedExtension = errors.New("project: unsupported file extension")

// ErrNoCurrentPath is returned by SaveCurrent when no project has been
// opened or saved yet this session.
var ErrNoCurrentPath = errors.New("project: no current project path")
