package gridstore

import (
	"fmt"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

// Apply replays a patch.Patch onto the store's transient view, in patch
// order (spec §4.B). It is the inverse of Diff: Apply(Diff(a, b)) applied
// to a store holding a reproduces b. Set-element ops (IDPair/U32SetElem
// values) are addressed by a synthetic "<set path>/<element>" key whose
// parent path names the set itself.
func Apply(s *Store, p *patch.Patch) error {
	rels := p.Ops()
	paths := p.AbsolutePaths()
	for i, rel := range rels {
		entry, _ := p.Get(rel)
		abs := paths[i]
		switch entry.Op {
		case patch.OpAdd, patch.OpReplace:
			if err := applyValue(s, abs, entry.New); err != nil {
				return fmt.Errorf("apply %s at %s: %w", entry.Op, abs, err)
			}
		case patch.OpRemove:
			if err := applyRemove(s, abs, entry.Old); err != nil {
				return fmt.Errorf("apply %s at %s: %w", entry.Op, abs, err)
			}
		default:
			return fmt.Errorf("apply: unknown op %v at %s", entry.Op, abs)
		}
	}
	return nil
}

func applyValue(s *Store, path gridpath.Path, v interface{}) error {
	switch val := v.(type) {
	case bool:
		s.SetBool(path, val)
	case uint32:
		s.SetU32(path, val)
	case int32:
		s.SetS32(path, val)
	case float32:
		s.SetF32(path, val)
	case string:
		s.SetString(path, val)
	case gridpath.Primitive:
		s.SetPrimitive(path, val)
	case gridpath.IDPair:
		parent := path.Parent()
		set, ok := s.GetIdPairSet(parent)
		if !ok {
			set = gridpath.IdPairSet{}
		} else {
			set = set.Clone()
		}
		set[val] = struct{}{}
		s.SetIdPairSet(parent, set)
	case gridpath.U32SetElem:
		parent := path.Parent()
		set, ok := s.GetU32Set(parent)
		if !ok {
			set = gridpath.U32Set{}
		} else {
			set = set.Clone()
		}
		set[uint32(val)] = struct{}{}
		s.SetU32Set(parent, set)
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
	return nil
}

func applyRemove(s *Store, path gridpath.Path, old interface{}) error {
	switch val := old.(type) {
	case bool, uint32, int32, float32, string, gridpath.Primitive:
		s.ErasePrimitive(path)
	case gridpath.IDPair:
		parent := path.Parent()
		if set, ok := s.GetIdPairSet(parent); ok {
			set = set.Clone()
			delete(set, val)
			s.SetIdPairSet(parent, set)
		}
	case gridpath.U32SetElem:
		parent := path.Parent()
		if set, ok := s.GetU32Set(parent); ok {
			set = set.Clone()
			delete(set, uint32(val))
			s.SetU32Set(parent, set)
		}
	default:
		return fmt.Errorf("unsupported value type %T", old)
	}
	return nil
}
