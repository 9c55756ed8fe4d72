package component

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mfkiwl/flowgrid/internal/container"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
)

// storage convention for container entities addressed at path P (spec §3):
//   Vector<u32>:      P holds the u32 length; P/0..P/len-1 hold elements.
//   Vector2D<u32>:     P holds the u32 row count; P/i holds row i's u32
//                      length; P/i/j holds elements.
//   Set<u32>:          P holds a gridstore U32Set directly.
//   AdjacencyList:     P holds a gridstore IdPairSet directly.
//   Navigable<u32>:    P/entries follows the Vector convention; P/cursor
//                      holds an s32 cursor (-1 when empty).
//   TextBuffer:        P holds the buffer's full text as a String, written
//                      by internal/reducer's text-buffer handlers.

// ReadVector reconstructs a container.Vector from the store at p.
func ReadVector(s *gridstore.Store, p gridpath.Path) (container.Vector, error) {
	n, err := s.GetU32(p)
	if err != nil {
		return nil, nil //nolint:nilerr // absent length means empty vector
	}
	out := make(container.Vector, n)
	for i := uint32(0); i < n; i++ {
		v, err := s.GetU32(p.Append(fmt.Sprintf("%d", i)))
		if err != nil {
			return nil, fmt.Errorf("component: read vector %s[%d]: %w", p, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// WriteVector replaces the Vector at p wholesale, via the transient store.
func WriteVector(s *gridstore.Store, p gridpath.Path, v container.Vector) {
	old, _ := ReadVector(s, p)
	for i := len(v); i < len(old); i++ {
		s.EraseU32(p.Append(fmt.Sprintf("%d", i)))
	}
	s.SetU32(p, uint32(len(v)))
	for i, val := range v {
		s.SetU32(p.Append(fmt.Sprintf("%d", i)), val)
	}
}

// ReadVector2D reconstructs a container.Vector2D from the store at p.
func ReadVector2D(s *gridstore.Store, p gridpath.Path) (container.Vector2D, error) {
	n, err := s.GetU32(p)
	if err != nil {
		return nil, nil //nolint:nilerr
	}
	out := make(container.Vector2D, n)
	for i := uint32(0); i < n; i++ {
		row, err := ReadVector(s, p.Append(fmt.Sprintf("%d", i)))
		if err != nil {
			return nil, err
		}
		out[i] = []uint32(row)
	}
	return out, nil
}

// WriteVector2D replaces the 2-D Vector at p wholesale.
func WriteVector2D(s *gridstore.Store, p gridpath.Path, m container.Vector2D) {
	old, _ := ReadVector2D(s, p)
	for i := len(m); i < len(old); i++ {
		rowPath := p.Append(fmt.Sprintf("%d", i))
		WriteVector(s, rowPath, nil)
		s.EraseU32(rowPath)
	}
	s.SetU32(p, uint32(len(m)))
	for i, row := range m {
		WriteVector(s, p.Append(fmt.Sprintf("%d", i)), container.Vector(row))
	}
}

// ReadNavigable reconstructs a container.Navigable from the store at p.
func ReadNavigable(s *gridstore.Store, p gridpath.Path, maxLen int) (container.Navigable, error) {
	entries, err := ReadVector(s, p.Append("entries"))
	if err != nil {
		return container.Navigable{}, err
	}
	cursor, err := s.GetS32(p.Append("cursor"))
	if err != nil {
		cursor = -1
	}
	nav := container.NewNavigable(maxLen)
	for _, id := range entries {
		nav = nav.Push(id)
	}
	for int(cursor) < len(entries)-1 && cursor >= 0 {
		var ok bool
		nav, ok = nav.Back()
		if !ok {
			break
		}
		cursor++
	}
	return nav, nil
}

// WriteNavigable persists a Navigable's entries and cursor at p. The
// exported fields needed aren't public on container.Navigable, so callers
// that mutate a Navigable should pass the entries/cursor they already
// tracked. The Push/Back/Forward action handlers in internal/reducer do
// not call it; they write P/entries and P/cursor themselves.
func WriteNavigable(s *gridstore.Store, p gridpath.Path, entries []uint32, cursor int32) {
	WriteVector(s, p.Append("entries"), container.Vector(entries))
	s.SetS32(p.Append("cursor"), cursor)
}

// --- JSON flatten helpers for ToJSON/FromJSON (spec §4.D) -------------

func vectorToJSON(v container.Vector) (string, error) {
	b, err := json.Marshal([]uint32(v))
	return string(b), err
}

func vector2DToJSON(v container.Vector2D) (string, error) {
	b, err := json.Marshal([][]uint32(v))
	return string(b), err
}

func setToJSON(s gridpath.U32Set) (string, error) {
	ids := make([]uint32, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	// deterministic element order, so identical stores flatten identically
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	b, err := json.Marshal(ids)
	return string(b), err
}

func adjacencyToJSON(a gridpath.IdPairSet) (string, error) {
	type pair struct {
		From uint32 `json:"from"`
		To   uint32 `json:"to"`
	}
	pairs := make([]pair, 0, len(a))
	for p := range a {
		pairs = append(pairs, pair{From: p.From, To: p.To})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].From != pairs[j].From {
			return pairs[i].From < pairs[j].From
		}
		return pairs[i].To < pairs[j].To
	})
	b, err := json.Marshal(pairs)
	return string(b), err
}
