// Package project implements spec §4.G: reading and writing whole
// projects, in either the state format (.fls, a flattened value
// snapshot) or the action-history format (.fld/.flp, a replayable
// gesture log), plus the small recent-projects preferences file.
//
// Grounded on the teacher's pkg/state/storage.go FileBackend
// (os.ReadFile/os.WriteFile with json.MarshalIndent, not a database
// backend — this core has no multi-tenant storage surface to justify
// one) and store.go's Export/Import pair, narrowed to a local,
// single-project, two-format scheme.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

// Handler implements reducer.ProjectHandler, wiring Project::* actions to
// the file formats above. It is injected into a *reducer.Reducer via
// Reducer.SetProjectHandler so internal/reducer never imports this
// package directly.
type Handler struct {
	cfg         config.Config
	defaultPath string
	currentPath string
}

// NewHandler returns a Handler. defaultPath is the project file
// Project::OpenDefault/SaveDefault target (spec §4.G); an empty string
// disables those two operations.
func NewHandler(cfg config.Config, defaultPath string) *Handler {
	return &Handler{cfg: cfg, defaultPath: defaultPath}
}

// CurrentPath returns the most recently opened or saved project path, or
// "" if none this session.
func (h *Handler) CurrentPath() string { return h.currentPath }

func (h *Handler) OpenEmpty(r *reducer.Reducer) error {
	r.Reset()
	h.currentPath = ""
	return nil
}

func (h *Handler) OpenDefault(r *reducer.Reducer) error {
	if h.defaultPath == "" {
		return fmt.Errorf("project: no default project path configured")
	}
	return h.Open(r, h.defaultPath)
}

func (h *Handler) Open(r *reducer.Reducer, filePath string) error {
	if err := h.dispatch(filePath, func() error { return loadState(r, filePath) }, func() error { return loadActions(r, filePath) }); err != nil {
		return err
	}
	h.currentPath = filePath
	recordRecent(h.cfg, filePath)
	return nil
}

func (h *Handler) SaveCurrent(r *reducer.Reducer) error {
	if h.currentPath == "" {
		return ErrNoCurrentPath
	}
	return h.Save(r, h.currentPath)
}

func (h *Handler) SaveDefault(r *reducer.Reducer) error {
	if h.defaultPath == "" {
		return fmt.Errorf("project: no default project path configured")
	}
	return h.Save(r, h.defaultPath)
}

func (h *Handler) Save(r *reducer.Reducer, filePath string) error {
	if err := h.dispatch(filePath, func() error { return saveState(r, filePath) }, func() error { return saveActions(r, filePath) }); err != nil {
		return err
	}
	h.currentPath = filePath
	recordRecent(h.cfg, filePath)
	return nil
}

// dispatch routes filePath by extension to the state-format or
// action-format operation.
func (h *Handler) dispatch(filePath string, stateOp, actionOp func() error) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".fls":
		return stateOp()
	case ".fld", ".flp":
		return actionOp()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(filePath))
	}
}
