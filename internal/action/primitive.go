package action

import (
	"encoding/json"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

const (
	typeBoolToggle = "primitive/bool_toggle"
	typeFlagsSet   = "primitive/flags_set"
	typeValueSet   = "primitive/value_set"
)

func init() {
	Register(typeBoolToggle, decodeBoolToggle)
	Register(typeFlagsSet, decodeFlagsSet)
	Register(typeValueSet, decodeValueSet)
}

type pathPayload struct {
	Path string `json:"path"`
}

// BoolToggle flips the Bool at Path. Two toggles of the same path queued
// within one gesture cancel (S1): CustomMerge, not SamePathMerge, because
// the surviving result is Cancel rather than "keep the later one".
type BoolToggle struct {
	Path gridpath.Path
}

func (a BoolToggle) Metadata() Metadata {
	return Metadata{TypePath: typeBoolToggle, DisplayName: "Toggle", Saved: true, Merge: CustomMerge}
}

func (a BoolToggle) TargetPath() gridpath.Path { return a.Path }

func (a BoolToggle) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

func (a BoolToggle) MergeWith(other Action) (MergeResult, bool) {
	o, ok := other.(BoolToggle)
	if !ok || !o.Path.Equal(a.Path) {
		return KeepSelf, false
	}
	return Cancel, true
}

func decodeBoolToggle(raw json.RawMessage) (Action, error) {
	var p pathPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return BoolToggle{Path: gridpath.Parse(p.Path)}, nil
}

// FlagsSet writes an S32 bitmask at Path. Repeated sets to the same path
// within a gesture collapse to the last value.
type FlagsSet struct {
	Path  gridpath.Path
	Flags int32
}

func (a FlagsSet) Metadata() Metadata {
	return Metadata{TypePath: typeFlagsSet, DisplayName: "Set Flags", Saved: true, Merge: AlwaysMerge}
}

func (a FlagsSet) TargetPath() gridpath.Path { return a.Path }

func (a FlagsSet) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path  string `json:"path"`
		Flags int32  `json:"flags"`
	}{a.Path.String(), a.Flags})
}

func decodeFlagsSet(raw json.RawMessage) (Action, error) {
	var w struct {
		Path  string `json:"path"`
		Flags int32  `json:"flags"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return FlagsSet{Path: gridpath.Parse(w.Path), Flags: w.Flags}, nil
}

// ValueSet writes an arbitrary Primitive at Path. Consecutive sets within a
// gesture collapse to the most recent value (S6), which is how dragging a
// slider produces a single undo step.
type ValueSet struct {
	Path  gridpath.Path
	Value gridpath.Primitive
}

func (a ValueSet) Metadata() Metadata {
	return Metadata{TypePath: typeValueSet, DisplayName: "Set Value", Saved: true, Merge: AlwaysMerge}
}

func (a ValueSet) TargetPath() gridpath.Path { return a.Path }

func (a ValueSet) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path  string             `json:"path"`
		Value gridpath.Primitive `json:"value"`
	}{a.Path.String(), a.Value})
}

func decodeValueSet(raw json.RawMessage) (Action, error) {
	var w struct {
		Path  string             `json:"path"`
		Value gridpath.Primitive `json:"value"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return ValueSet{Path: gridpath.Parse(w.Path), Value: w.Value}, nil
}
