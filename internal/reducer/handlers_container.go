package reducer

import (
	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/component"
	"github.com/mfkiwl/flowgrid/internal/container"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

func init() {
	registerHandler("container/vector_set", handleVectorSet)
	registerHandler("container/vector_set_at", handleVectorSetAt)
	registerHandler("container/vector_resize", handleVectorResize)
	registerHandler("container/vector2d_set", handleVector2DSet)
	registerHandler("container/set_insert", handleSetInsert)
	registerHandler("container/set_erase", handleSetErase)
	registerHandler("container/set_clear", handleSetClear)
	registerHandler("container/adjacency_toggle_connection", handleAdjacencyToggle)
	registerHandler("container/navigable_push", handleNavigablePush)
	registerHandler("container/navigable_back", handleNavigableBack)
	registerHandler("container/navigable_forward", handleNavigableForward)
}

func handleVectorSet(r *Reducer, a action.Action) error {
	act := a.(action.VectorSet)
	component.WriteVector(r.store, act.Path, act.Vec)
	return nil
}

func handleVectorSetAt(r *Reducer, a action.Action) error {
	act := a.(action.VectorSetAt)
	v, _ := component.ReadVector(r.store, act.Path)
	v = v.SetAt(act.Index, act.Value)
	component.WriteVector(r.store, act.Path, v)
	return nil
}

func handleVectorResize(r *Reducer, a action.Action) error {
	act := a.(action.VectorResize)
	v, _ := component.ReadVector(r.store, act.Path)
	v = v.Resize(act.N)
	component.WriteVector(r.store, act.Path, v)
	return nil
}

func handleVector2DSet(r *Reducer, a action.Action) error {
	act := a.(action.Vector2DSet)
	component.WriteVector2D(r.store, act.Path, act.Vec)
	return nil
}

func handleSetInsert(r *Reducer, a action.Action) error {
	act := a.(action.SetInsert)
	set, _ := r.store.GetU32Set(act.Path)
	set = container.Set(set).Insert(act.Elem)
	r.store.SetU32Set(act.Path, gridpath.U32Set(set))
	return nil
}

func handleSetErase(r *Reducer, a action.Action) error {
	act := a.(action.SetErase)
	set, _ := r.store.GetU32Set(act.Path)
	set = container.Set(set).Erase(act.Elem)
	r.store.SetU32Set(act.Path, gridpath.U32Set(set))
	return nil
}

func handleSetClear(r *Reducer, a action.Action) error {
	act := a.(action.SetClear)
	r.store.SetU32Set(act.Path, gridpath.U32Set{})
	return nil
}

func handleAdjacencyToggle(r *Reducer, a action.Action) error {
	act := a.(action.AdjacencyListToggleConnection)
	set, _ := r.store.GetIdPairSet(act.Path)
	adj := container.AdjacencyList(set).Toggle(act.Src, act.Dst)
	r.store.SetIdPairSet(act.Path, gridpath.IdPairSet(adj))
	return nil
}

func handleNavigablePush(r *Reducer, a action.Action) error {
	act := a.(action.NavigablePush)
	nav, _ := component.ReadNavigable(r.store, act.Path, 0)
	nav = nav.Push(act.ID)
	component.WriteVector(r.store, act.Path.Append("entries"), navEntries(nav))
	r.store.SetS32(act.Path.Append("cursor"), int32(navCursor(nav)))
	return nil
}

func handleNavigableBack(r *Reducer, a action.Action) error {
	act := a.(action.NavigableBack)
	return moveNavigable(r, act.Path, false)
}

func handleNavigableForward(r *Reducer, a action.Action) error {
	act := a.(action.NavigableForward)
	return moveNavigable(r, act.Path, true)
}

func moveNavigable(r *Reducer, path gridpath.Path, forward bool) error {
	entries, _ := component.ReadVector(r.store, path.Append("entries"))
	cursor, err := r.store.GetS32(path.Append("cursor"))
	if err != nil {
		cursor = int32(len(entries) - 1)
	}
	if forward {
		if int(cursor) >= len(entries)-1 {
			return nil // ActionRejected equivalent: silently a no-op
		}
		cursor++
	} else {
		if cursor <= 0 {
			return nil
		}
		cursor--
	}
	r.store.SetS32(path.Append("cursor"), cursor)
	return nil
}

// navEntries/navCursor extract container.Navigable's private state via its
// public Push/Back/Forward/Current contract, since the type intentionally
// exposes no raw accessor. navEntries walks Back from the cursor, so it
// returns the entries up to the cursor; right after a Push that is the
// full entry list to persist.
func navEntries(n container.Navigable) []uint32 {
	var out []uint32
	cur := n
	for {
		v, ok := cur.Current()
		if !ok {
			break
		}
		out = append([]uint32{v}, out...)
		var moved bool
		cur, moved = cur.Back()
		if !moved {
			break
		}
	}
	return out
}

func navCursor(n container.Navigable) int {
	entries := navEntries(n)
	return len(entries) - 1
}
