package action

import (
	"encoding/json"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

const (
	typeVectorSet    = "container/vector_set"
	typeVectorSetAt  = "container/vector_set_at"
	typeVectorResize = "container/vector_resize"
	typeVector2DSet  = "container/vector2d_set"
	typeSetInsert    = "container/set_insert"
	typeSetErase     = "container/set_erase"
	typeSetClear     = "container/set_clear"
	typeAdjToggle    = "container/adjacency_toggle_connection"
	typeNavPush      = "container/navigable_push"
	typeNavBack      = "container/navigable_back"
	typeNavForward   = "container/navigable_forward"
)

func init() {
	Register(typeVectorSet, decodeVectorSet)
	Register(typeVectorSetAt, decodeVectorSetAt)
	Register(typeVectorResize, decodeVectorResize)
	Register(typeVector2DSet, decodeVector2DSet)
	Register(typeSetInsert, decodeSetInsert)
	Register(typeSetErase, decodeSetErase)
	Register(typeSetClear, decodeSetClear)
	Register(typeAdjToggle, decodeAdjToggle)
	Register(typeNavPush, decodeNavPush)
	Register(typeNavBack, decodeNavBack)
	Register(typeNavForward, decodeNavForward)
}

// VectorSet replaces an entire Vector<u32>'s contents.
type VectorSet struct {
	Path gridpath.Path
	Vec  []uint32
}

func (a VectorSet) Metadata() Metadata {
	return Metadata{TypePath: typeVectorSet, DisplayName: "Set Vector", Saved: true, Merge: AlwaysMerge}
}
func (a VectorSet) TargetPath() gridpath.Path { return a.Path }
func (a VectorSet) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string   `json:"path"`
		Vec  []uint32 `json:"vec"`
	}{a.Path.String(), a.Vec})
}
func decodeVectorSet(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string   `json:"path"`
		Vec  []uint32 `json:"vec"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return VectorSet{Path: gridpath.Parse(w.Path), Vec: w.Vec}, nil
}

// VectorSetAt writes a single index of a Vector<u32>. Kept NoMerge: distinct
// indices written within one gesture must both survive in the gesture log.
type VectorSetAt struct {
	Path  gridpath.Path
	Index int
	Value uint32
}

func (a VectorSetAt) Metadata() Metadata {
	return Metadata{TypePath: typeVectorSetAt, DisplayName: "Set Vector Element", Saved: true, Merge: NoMerge}
}
func (a VectorSetAt) TargetPath() gridpath.Path { return a.Path }
func (a VectorSetAt) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path  string `json:"path"`
		Index int    `json:"index"`
		Value uint32 `json:"value"`
	}{a.Path.String(), a.Index, a.Value})
}
func decodeVectorSetAt(raw json.RawMessage) (Action, error) {
	var w struct {
		Path  string `json:"path"`
		Index int    `json:"index"`
		Value uint32 `json:"value"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return VectorSetAt{Path: gridpath.Parse(w.Path), Index: w.Index, Value: w.Value}, nil
}

// VectorResize truncates or extends a Vector<u32> to n elements.
type VectorResize struct {
	Path gridpath.Path
	N    int
}

func (a VectorResize) Metadata() Metadata {
	return Metadata{TypePath: typeVectorResize, DisplayName: "Resize Vector", Saved: true, Merge: AlwaysMerge}
}
func (a VectorResize) TargetPath() gridpath.Path { return a.Path }
func (a VectorResize) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		N    int    `json:"n"`
	}{a.Path.String(), a.N})
}
func decodeVectorResize(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		N    int    `json:"n"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return VectorResize{Path: gridpath.Parse(w.Path), N: w.N}, nil
}

// Vector2DSet replaces an entire 2-D Vector<u32>; inner rows may differ in
// length.
type Vector2DSet struct {
	Path gridpath.Path
	Vec  [][]uint32
}

func (a Vector2DSet) Metadata() Metadata {
	return Metadata{TypePath: typeVector2DSet, DisplayName: "Set 2D Vector", Saved: true, Merge: AlwaysMerge}
}
func (a Vector2DSet) TargetPath() gridpath.Path { return a.Path }
func (a Vector2DSet) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string     `json:"path"`
		Vec  [][]uint32 `json:"vec"`
	}{a.Path.String(), a.Vec})
}
func decodeVector2DSet(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string     `json:"path"`
		Vec  [][]uint32 `json:"vec"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return Vector2DSet{Path: gridpath.Parse(w.Path), Vec: w.Vec}, nil
}

// SetInsert adds a single element to a Set<u32>.
type SetInsert struct {
	Path gridpath.Path
	Elem uint32
}

func (a SetInsert) Metadata() Metadata {
	return Metadata{TypePath: typeSetInsert, DisplayName: "Insert", Saved: true, Merge: NoMerge}
}
func (a SetInsert) TargetPath() gridpath.Path { return a.Path }
func (a SetInsert) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Elem uint32 `json:"elem"`
	}{a.Path.String(), a.Elem})
}
func decodeSetInsert(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		Elem uint32 `json:"elem"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return SetInsert{Path: gridpath.Parse(w.Path), Elem: w.Elem}, nil
}

// SetErase removes a single element from a Set<u32>.
type SetErase struct {
	Path gridpath.Path
	Elem uint32
}

func (a SetErase) Metadata() Metadata {
	return Metadata{TypePath: typeSetErase, DisplayName: "Erase", Saved: true, Merge: NoMerge}
}
func (a SetErase) TargetPath() gridpath.Path { return a.Path }
func (a SetErase) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Elem uint32 `json:"elem"`
	}{a.Path.String(), a.Elem})
}
func decodeSetErase(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		Elem uint32 `json:"elem"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return SetErase{Path: gridpath.Parse(w.Path), Elem: w.Elem}, nil
}

// SetClear empties a Set<u32>.
type SetClear struct {
	Path gridpath.Path
}

func (a SetClear) Metadata() Metadata {
	return Metadata{TypePath: typeSetClear, DisplayName: "Clear", Saved: true, Merge: AlwaysMerge}
}
func (a SetClear) TargetPath() gridpath.Path { return a.Path }
func (a SetClear) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}
func decodeSetClear(raw json.RawMessage) (Action, error) {
	var w pathPayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return SetClear{Path: gridpath.Parse(w.Path)}, nil
}

// AdjacencyListToggleConnection flips a single directed edge. Two toggles
// of the same edge within one gesture cancel, mirroring BoolToggle.
type AdjacencyListToggleConnection struct {
	Path     gridpath.Path
	Src, Dst uint32
}

func (a AdjacencyListToggleConnection) Metadata() Metadata {
	return Metadata{TypePath: typeAdjToggle, DisplayName: "Toggle Connection", Saved: true, Merge: CustomMerge}
}
func (a AdjacencyListToggleConnection) TargetPath() gridpath.Path { return a.Path }
func (a AdjacencyListToggleConnection) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Src  uint32 `json:"src"`
		Dst  uint32 `json:"dst"`
	}{a.Path.String(), a.Src, a.Dst})
}
func (a AdjacencyListToggleConnection) MergeWith(other Action) (MergeResult, bool) {
	o, ok := other.(AdjacencyListToggleConnection)
	if !ok || !o.Path.Equal(a.Path) || o.Src != a.Src || o.Dst != a.Dst {
		return KeepSelf, false
	}
	return Cancel, true
}
func decodeAdjToggle(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		Src  uint32 `json:"src"`
		Dst  uint32 `json:"dst"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return AdjacencyListToggleConnection{Path: gridpath.Parse(w.Path), Src: w.Src, Dst: w.Dst}, nil
}

// NavigablePush pushes id onto a Navigable<u32> stack at the cursor,
// discarding any forward history.
type NavigablePush struct {
	Path gridpath.Path
	ID   uint32
}

func (a NavigablePush) Metadata() Metadata {
	return Metadata{TypePath: typeNavPush, DisplayName: "Navigate", Saved: false, Merge: NoMerge}
}
func (a NavigablePush) TargetPath() gridpath.Path { return a.Path }
func (a NavigablePush) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		ID   uint32 `json:"id"`
	}{a.Path.String(), a.ID})
}
func decodeNavPush(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		ID   uint32 `json:"id"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return NavigablePush{Path: gridpath.Parse(w.Path), ID: w.ID}, nil
}

// NavigableBack moves the Navigable<u32> cursor one step back.
type NavigableBack struct {
	Path gridpath.Path
}

func (a NavigableBack) Metadata() Metadata {
	return Metadata{TypePath: typeNavBack, DisplayName: "Back", Saved: false, Merge: NoMerge}
}
func (a NavigableBack) TargetPath() gridpath.Path { return a.Path }
func (a NavigableBack) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}
func decodeNavBack(raw json.RawMessage) (Action, error) {
	var w pathPayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return NavigableBack{Path: gridpath.Parse(w.Path)}, nil
}

// NavigableForward moves the Navigable<u32> cursor one step forward.
type NavigableForward struct {
	Path gridpath.Path
}

func (a NavigableForward) Metadata() Metadata {
	return Metadata{TypePath: typeNavForward, DisplayName: "Forward", Saved: false, Merge: NoMerge}
}
func (a NavigableForward) TargetPath() gridpath.Path { return a.Path }
func (a NavigableForward) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}
func decodeNavForward(raw json.RawMessage) (Action, error) {
	var w pathPayload
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return NavigableForward{Path: gridpath.Parse(w.Path)}, nil
}
