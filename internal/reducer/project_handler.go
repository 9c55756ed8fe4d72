package reducer

import (
	"go.uber.org/zap"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/gridlog"
)

// ProjectHandler performs the integration-level side effects of the
// Project::Open*/Save* actions (spec §4.G): reading and writing project
// files on disk, and swapping the reducer's store/history wholesale. It
// is implemented by internal/project and injected via SetProjectHandler
// so this package never imports internal/project directly, avoiding the
// reducer<->project import cycle that a direct dependency would create
// (internal/project needs a *Reducer to replay actions into).
type ProjectHandler interface {
	OpenEmpty(r *Reducer) error
	OpenDefault(r *Reducer) error
	Open(r *Reducer, filePath string) error
	SaveCurrent(r *Reducer) error
	SaveDefault(r *Reducer) error
	Save(r *Reducer, filePath string) error
}

const (
	typeProjectOpenEmpty       = "project/open_empty"
	typeProjectOpenDefault     = "project/open_default"
	typeProjectOpen            = "project/open"
	typeProjectSaveCurrent     = "project/save_current"
	typeProjectSaveDefault     = "project/save_default"
	typeProjectSave            = "project/save"
	typeProjectUndo            = "project/undo"
	typeProjectRedo            = "project/redo"
	typeProjectSetHistoryIndex = "project/set_history_index"
)

func init() {
	registerHandler(typeProjectOpenEmpty, handleProjectOpenEmpty)
	registerHandler(typeProjectOpenDefault, handleProjectOpenDefault)
	registerHandler(typeProjectOpen, handleProjectOpen)
	registerHandler(typeProjectSaveCurrent, handleProjectSaveCurrent)
	registerHandler(typeProjectSaveDefault, handleProjectSaveDefault)
	registerHandler(typeProjectSave, handleProjectSave)
	registerHandler(typeProjectUndo, handleProjectUndo)
	registerHandler(typeProjectRedo, handleProjectRedo)
	registerHandler(typeProjectSetHistoryIndex, handleProjectSetHistoryIndex)

	registerCanApply(typeProjectUndo, func(r *Reducer, a action.Action) bool { return r.CanUndo() })
	registerCanApply(typeProjectRedo, func(r *Reducer, a action.Action) bool { return r.CanRedo() })
}

func noProjectHandler(r *Reducer, op string) error {
	gridlog.Named("reducer").Warn("project action dropped: no project handler wired",
		zap.String("op", op))
	return nil
}

func handleProjectOpenEmpty(r *Reducer, a action.Action) error {
	if r.projectHandler == nil {
		return noProjectHandler(r, typeProjectOpenEmpty)
	}
	return r.projectHandler.OpenEmpty(r)
}

func handleProjectOpenDefault(r *Reducer, a action.Action) error {
	if r.projectHandler == nil {
		return noProjectHandler(r, typeProjectOpenDefault)
	}
	return r.projectHandler.OpenDefault(r)
}

func handleProjectOpen(r *Reducer, a action.Action) error {
	act := a.(action.ProjectOpen)
	if r.projectHandler == nil {
		return noProjectHandler(r, typeProjectOpen)
	}
	return r.projectHandler.Open(r, act.FilePath)
}

func handleProjectSaveCurrent(r *Reducer, a action.Action) error {
	if r.projectHandler == nil {
		return noProjectHandler(r, typeProjectSaveCurrent)
	}
	return r.projectHandler.SaveCurrent(r)
}

func handleProjectSaveDefault(r *Reducer, a action.Action) error {
	if r.projectHandler == nil {
		return noProjectHandler(r, typeProjectSaveDefault)
	}
	return r.projectHandler.SaveDefault(r)
}

func handleProjectSave(r *Reducer, a action.Action) error {
	act := a.(action.ProjectSave)
	if r.projectHandler == nil {
		return noProjectHandler(r, typeProjectSave)
	}
	return r.projectHandler.Save(r, act.FilePath)
}

// handleProjectUndo/Redo/SetHistoryIndex bypass ProjectHandler entirely:
// undo/redo is pure reducer-internal history bookkeeping, not a disk
// side effect, so it is handled directly by the reducer itself.
func handleProjectUndo(r *Reducer, a action.Action) error {
	return r.Undo()
}

func handleProjectRedo(r *Reducer, a action.Action) error {
	return r.Redo()
}

func handleProjectSetHistoryIndex(r *Reducer, a action.Action) error {
	act := a.(action.ProjectSetHistoryIndex)
	return r.SetHistoryIndex(int(act.Index))
}
