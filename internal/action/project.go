package action

import (
	"encoding/json"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

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
	Register(typeProjectOpenEmpty, decodeNoPayload(func() Action { return ProjectOpenEmpty{} }))
	Register(typeProjectOpenDefault, decodeNoPayload(func() Action { return ProjectOpenDefault{} }))
	Register(typeProjectOpen, decodeProjectOpen)
	Register(typeProjectSaveCurrent, decodeNoPayload(func() Action { return ProjectSaveCurrent{} }))
	Register(typeProjectSaveDefault, decodeNoPayload(func() Action { return ProjectSaveDefault{} }))
	Register(typeProjectSave, decodeProjectSave)
	Register(typeProjectUndo, decodeNoPayload(func() Action { return ProjectUndo{} }))
	Register(typeProjectRedo, decodeNoPayload(func() Action { return ProjectRedo{} }))
	Register(typeProjectSetHistoryIndex, decodeProjectSetHistoryIndex)
}

// decodeNoPayload builds a decoder for a singleton action carrying no
// fields beyond its type path.
func decodeNoPayload(ctor func() Action) decodeFunc {
	return func(json.RawMessage) (Action, error) { return ctor(), nil }
}

// projectMetadata is shared by every Project::* action: these are
// integration-level lifecycle operations, never part of a saved gesture,
// and never merge with one another.
func projectMetadata(typePath, name string) Metadata {
	return Metadata{TypePath: typePath, DisplayName: name, Saved: false, Merge: NoMerge}
}

type ProjectOpenEmpty struct{}

func (a ProjectOpenEmpty) Metadata() Metadata           { return projectMetadata(typeProjectOpenEmpty, "New Project") }
func (a ProjectOpenEmpty) TargetPath() gridpath.Path    { return gridpath.Root() }
func (a ProjectOpenEmpty) Payload() (json.RawMessage, error) { return json.Marshal(struct{}{}) }

type ProjectOpenDefault struct{}

func (a ProjectOpenDefault) Metadata() Metadata        { return projectMetadata(typeProjectOpenDefault, "Open Default Project") }
func (a ProjectOpenDefault) TargetPath() gridpath.Path { return gridpath.Root() }
func (a ProjectOpenDefault) Payload() (json.RawMessage, error) { return json.Marshal(struct{}{}) }

type ProjectOpen struct {
	FilePath string
}

func (a ProjectOpen) Metadata() Metadata        { return projectMetadata(typeProjectOpen, "Open…") }
func (a ProjectOpen) TargetPath() gridpath.Path { return gridpath.Root() }
func (a ProjectOpen) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		FilePath string `json:"file_path"`
	}{a.FilePath})
}
func decodeProjectOpen(raw json.RawMessage) (Action, error) {
	var w struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return ProjectOpen{FilePath: w.FilePath}, nil
}

type ProjectSaveCurrent struct{}

func (a ProjectSaveCurrent) Metadata() Metadata        { return projectMetadata(typeProjectSaveCurrent, "Save") }
func (a ProjectSaveCurrent) TargetPath() gridpath.Path { return gridpath.Root() }
func (a ProjectSaveCurrent) Payload() (json.RawMessage, error) { return json.Marshal(struct{}{}) }

type ProjectSaveDefault struct{}

func (a ProjectSaveDefault) Metadata() Metadata { return projectMetadata(typeProjectSaveDefault, "Save As Default") }
func (a ProjectSaveDefault) TargetPath() gridpath.Path { return gridpath.Root() }
func (a ProjectSaveDefault) Payload() (json.RawMessage, error) { return json.Marshal(struct{}{}) }

type ProjectSave struct {
	FilePath string
}

func (a ProjectSave) Metadata() Metadata        { return projectMetadata(typeProjectSave, "Save As…") }
func (a ProjectSave) TargetPath() gridpath.Path { return gridpath.Root() }
func (a ProjectSave) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		FilePath string `json:"file_path"`
	}{a.FilePath})
}
func decodeProjectSave(raw json.RawMessage) (Action, error) {
	var w struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return ProjectSave{FilePath: w.FilePath}, nil
}

type ProjectUndo struct{}

func (a ProjectUndo) Metadata() Metadata           { return projectMetadata(typeProjectUndo, "Undo") }
func (a ProjectUndo) TargetPath() gridpath.Path    { return gridpath.Root() }
func (a ProjectUndo) Payload() (json.RawMessage, error) { return json.Marshal(struct{}{}) }

type ProjectRedo struct{}

func (a ProjectRedo) Metadata() Metadata           { return projectMetadata(typeProjectRedo, "Redo") }
func (a ProjectRedo) TargetPath() gridpath.Path    { return gridpath.Root() }
func (a ProjectRedo) Payload() (json.RawMessage, error) { return json.Marshal(struct{}{}) }

type ProjectSetHistoryIndex struct {
	Index uint32
}

func (a ProjectSetHistoryIndex) Metadata() Metadata {
	return projectMetadata(typeProjectSetHistoryIndex, "Jump To History Entry")
}
func (a ProjectSetHistoryIndex) TargetPath() gridpath.Path { return gridpath.Root() }
func (a ProjectSetHistoryIndex) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Index uint32 `json:"index"`
	}{a.Index})
}
func decodeProjectSetHistoryIndex(raw json.RawMessage) (Action, error) {
	var w struct {
		Index uint32 `json:"index"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return ProjectSetHistoryIndex{Index: w.Index}, nil
}
