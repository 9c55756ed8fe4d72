package action

import (
	"encoding/json"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

const (
	typeWindowsToggleVisible = "windows/toggle_visible"
	typeWindowsToggleDebug   = "windows/toggle_debug"
)

func init() {
	Register(typeWindowsToggleVisible, decodeWindowsToggleVisible)
	Register(typeWindowsToggleDebug, decodeWindowsToggleDebug)
}

// WindowsToggleVisible shows/hides the window component identified by ID.
// Not part of saved project state (window layout is a UI concern).
type WindowsToggleVisible struct {
	ID gridpath.Path
}

func (a WindowsToggleVisible) Metadata() Metadata {
	return Metadata{TypePath: typeWindowsToggleVisible, DisplayName: "Toggle Window", Saved: false, Merge: CustomMerge}
}
func (a WindowsToggleVisible) TargetPath() gridpath.Path { return a.ID }
func (a WindowsToggleVisible) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.ID.String()})
}
func (a WindowsToggleVisible) MergeWith(other Action) (MergeResult, bool) {
	o, ok := other.(WindowsToggleVisible)
	if !ok || !o.ID.Equal(a.ID) {
		return KeepSelf, false
	}
	return Cancel, true
}
func decodeWindowsToggleVisible(raw json.RawMessage) (Action, error) {
	var w pathPayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return WindowsToggleVisible{ID: gridpath.Parse(w.Path)}, nil
}

// WindowsToggleDebug shows/hides the debug value-tree overlay for a window.
type WindowsToggleDebug struct {
	ID gridpath.Path
}

func (a WindowsToggleDebug) Metadata() Metadata {
	return Metadata{TypePath: typeWindowsToggleDebug, DisplayName: "Toggle Debug View", Saved: false, Merge: CustomMerge}
}
func (a WindowsToggleDebug) TargetPath() gridpath.Path { return a.ID }
func (a WindowsToggleDebug) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.ID.String()})
}
func (a WindowsToggleDebug) MergeWith(other Action) (MergeResult, bool) {
	o, ok := other.(WindowsToggleDebug)
	if !ok || !o.ID.Equal(a.ID) {
		return KeepSelf, false
	}
	return Cancel, true
}
func decodeWindowsToggleDebug(raw json.RawMessage) (Action, error) {
	var w pathPayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return WindowsToggleDebug{ID: gridpath.Parse(w.Path)}, nil
}
