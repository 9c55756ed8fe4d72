package component

import (
	"encoding/json"
	"fmt"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
)

// ToJSON flattens the tree depth-first and assigns each leaf's JSON
// pointer (its Path in string form, with the leading "/") to its
// serialized JSON value, per spec §4.D. Containers dump their own JSON
// representation as a string (a container's structured shape is
// recoverable by re-parsing that string). The flatten is lossless except
// for Navigable containers: only their entries are written, so the cursor
// is not carried, and FromJSON places it on the last entry.
func ToJSON(t *Tree, s *gridstore.Store) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	var walkErr error
	t.Walk(func(c *Component) {
		if walkErr != nil {
			return
		}
		switch c.Kind {
		case KindField:
			v, err := s.GetPrimitive(c.Path)
			if err != nil {
				return // unset field: not yet written, nothing to flatten
			}
			b, err := json.Marshal(v)
			if err != nil {
				walkErr = err
				return
			}
			out[c.Path.String()] = b
		case KindContainer:
			str, err := containerJSON(s, c)
			if err != nil {
				walkErr = fmt.Errorf("component: flatten %s: %w", c.Path, err)
				return
			}
			b, err := json.Marshal(str)
			if err != nil {
				walkErr = err
				return
			}
			out[c.Path.String()] = b
		}
	})
	return out, walkErr
}

func containerJSON(s *gridstore.Store, c *Component) (string, error) {
	switch c.ContainerKind {
	case ContainerVector:
		v, err := ReadVector(s, c.Path)
		if err != nil {
			return "", err
		}
		return vectorToJSON(v)
	case ContainerVector2D:
		v, err := ReadVector2D(s, c.Path)
		if err != nil {
			return "", err
		}
		return vector2DToJSON(v)
	case ContainerSetU32:
		v, _ := s.GetU32Set(c.Path)
		return setToJSON(v)
	case ContainerAdjacencyList:
		v, _ := s.GetIdPairSet(c.Path)
		return adjacencyToJSON(v)
	case ContainerNavigable:
		v, err := ReadVector(s, c.Path.Append("entries"))
		if err != nil {
			return "", err
		}
		return vectorToJSON(v)
	case ContainerTextBuffer:
		// P holds the buffer's full text as a String; an unset buffer
		// flattens as "".
		v, _ := s.GetString(c.Path)
		return v, nil
	default:
		return "", fmt.Errorf("unknown container kind %d", c.ContainerKind)
	}
}

// FromJSON routes each incoming JSON pointer to the Component at that path
// and applies it via setJSON. Unknown pointers are ignored, per spec
// §4.D.
func FromJSON(t *Tree, s *gridstore.Store, flat map[string]json.RawMessage) error {
	for ptr, raw := range flat {
		c, ok := t.ByPath(gridpath.Parse(ptr))
		if !ok {
			continue
		}
		if err := setJSON(s, c, raw); err != nil {
			return fmt.Errorf("component: set %s: %w", ptr, err)
		}
	}
	return nil
}

func setJSON(s *gridstore.Store, c *Component, raw json.RawMessage) error {
	switch c.Kind {
	case KindField:
		var v gridpath.Primitive
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		s.SetPrimitive(c.Path, v)
		return nil
	case KindContainer:
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return err
		}
		return setContainerJSON(s, c, str)
	default:
		return nil
	}
}

func setContainerJSON(s *gridstore.Store, c *Component, str string) error {
	switch c.ContainerKind {
	case ContainerVector:
		var v []uint32
		if str == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return err
		}
		WriteVector(s, c.Path, v)
	case ContainerVector2D:
		var v [][]uint32
		if str == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return err
		}
		WriteVector2D(s, c.Path, v)
	case ContainerSetU32:
		var ids []uint32
		if str == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(str), &ids); err != nil {
			return err
		}
		set := make(gridpath.U32Set, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		s.SetU32Set(c.Path, set)
	case ContainerAdjacencyList:
		var pairs []struct {
			From uint32 `json:"from"`
			To   uint32 `json:"to"`
		}
		if str == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(str), &pairs); err != nil {
			return err
		}
		set := make(gridpath.IdPairSet, len(pairs))
		for _, pr := range pairs {
			set[gridpath.IDPair{From: pr.From, To: pr.To}] = struct{}{}
		}
		s.SetIdPairSet(c.Path, set)
	case ContainerNavigable:
		var v []uint32
		if str == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return err
		}
		WriteVector(s, c.Path.Append("entries"), v)
		cursor := int32(-1)
		if len(v) > 0 {
			cursor = int32(len(v) - 1)
		}
		s.SetS32(c.Path.Append("cursor"), cursor)
	case ContainerTextBuffer:
		if str == "" {
			return nil
		}
		s.SetString(c.Path, str)
	}
	return nil
}
