package component

import (
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

// Listener is implemented by any Component (or external observer) that
// wants to be notified when the field/container at a given id changes.
type Listener interface {
	OnFieldChanged(id ID)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(id ID)

func (f ListenerFunc) OnFieldChanged(id ID) { f(id) }

// AddListener registers l against id. Order of notification among
// listeners of the same id is insertion order (spec §4.D).
func (t *Tree) AddListener(id ID, l Listener) {
	t.listeners[id] = append(t.listeners[id], l)
}

// RemoveListener unregisters l from id, if present.
func (t *Tree) RemoveListener(id ID, l Listener) {
	ls := t.listeners[id]
	for i, existing := range ls {
		if existing == l {
			t.listeners[id] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// NotifyPatch walks p's ops in patch order and invokes OnFieldChanged on
// every listener of every affected Component, exactly once per id
// regardless of how many ops in the patch touch it (spec §8 invariant 9).
// An affected Component is the nearest ancestor (by Path, including an
// exact match) that exists in the tree — this lets a Container's
// listeners hear about edits to its individual elements (e.g.
// "/vec/0") without requiring a Component to exist at that sub-path.
func (t *Tree) NotifyPatch(p *patch.Patch) {
	notified := make(map[ID]bool)
	for _, abs := range p.AbsolutePaths() {
		id, ok := t.nearestAncestorID(abs)
		if !ok || notified[id] {
			continue
		}
		notified[id] = true
		for _, l := range t.listeners[id] {
			l.OnFieldChanged(id)
		}
	}
}

// AffectedIDs returns the deduped, ordered list of Component ids touched by
// p, in patch order — the nearest-ancestor id for each absolute path, each
// appearing once regardless of how many ops resolve to it. Exposed so
// internal/reducer can fan out notifications itself with panic recovery
// (spec §9: listener panics during commit are aggregated, not fatal).
func (t *Tree) AffectedIDs(p *patch.Patch) []ID {
	var out []ID
	seen := make(map[ID]bool)
	for _, abs := range p.AbsolutePaths() {
		id, ok := t.nearestAncestorID(abs)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ListenersOf returns a snapshot of the listeners registered for id.
func (t *Tree) ListenersOf(id ID) []Listener {
	ls := t.listeners[id]
	out := make([]Listener, len(ls))
	copy(out, ls)
	return out
}

func (t *Tree) nearestAncestorID(p gridpath.Path) (ID, bool) {
	cursor := p
	for {
		if id, ok := t.byPath[cursor.String()]; ok {
			return id, true
		}
		if cursor.IsRoot() {
			return 0, false
		}
		cursor = cursor.Parent()
	}
}
