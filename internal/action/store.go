package action

import (
	"encoding/json"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

const typeStoreApplyPatch = "store/apply_patch"

func init() {
	Register(typeStoreApplyPatch, decodeApplyPatch)
}

// applyPatchPayload is the wire form of a patch.Patch: insertion-ordered
// relative keys paired with their entries, so decode reconstructs the same
// order the encoder observed.
type applyPatchPayload struct {
	BasePath string              `json:"base_path"`
	Order    []string            `json:"order"`
	Entries  map[string]wireEntry `json:"entries"`
}

type wireEntry struct {
	Op  string          `json:"op"`
	New json.RawMessage `json:"new,omitempty"`
	Old json.RawMessage `json:"old,omitempty"`
}

// ApplyPatch is the Store::ApplyPatch action of spec §6: it carries an
// already-computed patch (e.g. received over a transport, or replayed from
// the action-history format) and applies it wholesale to the transient
// store. It never merges with a neighbor: two sequential patches are
// conceptually distinct edits, not a single collapsible gesture step.
type ApplyPatch struct {
	Patch *patch.Patch
}

func (a ApplyPatch) Metadata() Metadata {
	return Metadata{
		TypePath:    typeStoreApplyPatch,
		DisplayName: "Apply Patch",
		Saved:       true,
		Merge:       NoMerge,
	}
}

func (a ApplyPatch) TargetPath() gridpath.Path { return a.Patch.BasePath }

func (a ApplyPatch) Payload() (json.RawMessage, error) {
	wire := applyPatchPayload{
		BasePath: a.Patch.BasePath.String(),
		Order:    a.Patch.Ops(),
		Entries:  make(map[string]wireEntry, a.Patch.Len()),
	}
	for _, rel := range wire.Order {
		e, _ := a.Patch.Get(rel)
		we := wireEntry{Op: e.Op.String()}
		if e.New != nil {
			b, err := json.Marshal(e.New)
			if err != nil {
				return nil, err
			}
			we.New = b
		}
		if e.Old != nil {
			b, err := json.Marshal(e.Old)
			if err != nil {
				return nil, err
			}
			we.Old = b
		}
		wire.Entries[rel] = we
	}
	return json.Marshal(wire)
}

func decodeApplyPatch(raw json.RawMessage) (Action, error) {
	var wire applyPatchPayload
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	p := patch.New(gridpath.Parse(wire.BasePath))
	for _, rel := range wire.Order {
		we := wire.Entries[rel]
		switch we.Op {
		case "add":
			var v gridpath.Primitive
			if err := json.Unmarshal(we.New, &v); err != nil {
				return nil, err
			}
			p.Add(rel, v)
		case "remove":
			var v gridpath.Primitive
			if err := json.Unmarshal(we.Old, &v); err != nil {
				return nil, err
			}
			p.Remove(rel, v)
		case "replace":
			var nv, ov gridpath.Primitive
			if err := json.Unmarshal(we.New, &nv); err != nil {
				return nil, err
			}
			if err := json.Unmarshal(we.Old, &ov); err != nil {
				return nil, err
			}
			p.Replace(rel, nv, ov)
		}
	}
	return ApplyPatch{Patch: p}, nil
}
