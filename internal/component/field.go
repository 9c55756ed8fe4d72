package component

import (
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
)

// Field value cache (spec §3): reads of a Field are O(1) from a locally
// cached copy, refreshed after every commit. The cache lives on the Tree
// (keyed by id) rather than on Component so Component stays a plain
// description of tree shape.

// FieldValue returns the cached primitive for the Field at id. ok is
// false for non-Field components and for fields whose path has no store
// entry yet.
func (t *Tree) FieldValue(id ID) (gridpath.Primitive, bool) {
	v, ok := t.fieldValues[id]
	return v, ok
}

// RefreshFields re-reads the cached value of each Field in ids from s.
// The reducer calls this with a commit's affected ids after the patch and
// snapshot are final but before listeners fire, so a listener reading a
// sibling field through FieldValue observes the committed state.
func (t *Tree) RefreshFields(s *gridstore.Store, ids []ID) {
	for _, id := range ids {
		t.refreshField(s, id)
	}
}

// RefreshAllFields re-caches every Field in the tree, used after
// wholesale store replacement (project load, history jump, reset).
func (t *Tree) RefreshAllFields(s *gridstore.Store) {
	t.Walk(func(c *Component) {
		if c.Kind == KindField {
			t.refreshField(s, c.ID)
		}
	})
}

func (t *Tree) refreshField(s *gridstore.Store, id ID) {
	c, ok := t.byID[id]
	if !ok || c.Kind != KindField {
		return
	}
	v, err := s.GetPrimitive(c.Path)
	if err != nil {
		delete(t.fieldValues, id)
		return
	}
	t.fieldValues[id] = v
}
