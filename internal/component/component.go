// Package component implements the static component tree of spec §3/§4.D:
// an arena of id-identified nodes (Field/Container/Group) projected over
// the store, with id/path indexes and per-id change listeners.
//
// Grounded on the teacher's pkg/state/store.go Subscribe/notifySubscribers
// path-matching shape, adapted per spec §9's "arena allocation for
// components indexed by id, with relations stored as id→id maps; never
// store owning pointers between components": the Tree owns every
// Component by value in a map, and Component itself stores ParentID and
// an ordered slice of child IDs rather than pointers.
package component

import (
	"errors"
	"fmt"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

// ID identifies a Component uniquely within a Tree: the FNV hash of the
// parent's ID concatenated with this component's label, per spec §3 ("a
// stable id (hash of parent id + label)").
type ID uint64

// RootID is the id of the tree's root Group, always present.
const RootID ID = 0

// Kind tags what a Component is, replacing the teacher's dynamic-dispatch
// widget hierarchy with a closed sum per spec §9's "Dynamic-dispatch
// component hierarchy... model as a tagged sum".
type Kind uint8

const (
	// KindGroup is a non-leaf organizational node (a window, a panel).
	KindGroup Kind = iota
	// KindField is a leaf bound to exactly one store path and primitive
	// kind.
	KindField
	// KindContainer holds structured data (vector, set, adjacency list,
	// navigable stack, text buffer) rooted at one store path.
	KindContainer
)

// ContainerKind distinguishes the container entity types of spec §3.
type ContainerKind uint8

const (
	ContainerNone ContainerKind = iota
	ContainerVector
	ContainerVector2D
	ContainerSetU32
	ContainerAdjacencyList
	ContainerNavigable
	ContainerTextBuffer
)

// MenuDef is the optional menu placement a Component may carry.
type MenuDef struct {
	Label string
	// Parent is the menu this entry nests under, e.g. "File" — empty for
	// a top-level entry.
	Parent string
}

// Component is one node of the static tree. parent is a weak back
// reference by id, never a pointer (spec §9); Children is an owning,
// ordered list of ids.
type Component struct {
	ID            ID
	ParentID      ID
	HasParent     bool
	PathSegment   string
	Path          gridpath.Path
	Name          string
	Help          string
	Label         string
	Kind          Kind
	FieldKind     gridpath.Kind
	ContainerKind ContainerKind
	Menu          *MenuDef
	WindowFlags   uint32
	Children      []ID
}

// LabelForImgui renders "Name##PathKey", the stable cross-rename widget
// identity spec §4.D mandates.
func (c *Component) LabelForImgui() string {
	return fmt.Sprintf("%s##%s", c.Name, c.Path.String())
}

var (
	// ErrNotFound is returned when an id or path lookup misses.
	ErrNotFound = errors.New("component: not found")
	// ErrDuplicateLabel is returned when AddGroup, AddField or
	// AddContainer would mint an id that already exists under the same
	// parent.
	ErrDuplicateLabel = errors.New("component: duplicate label under parent")
)

func hashID(parent ID, label string) ID {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d/%s", parent, label)
	return ID(h.Sum64())
}

// Tree is the arena owning every Component, indexed by id and by path, plus
// the per-id listener lists spec §3/§4.D describe. Built once at startup
// and not reshaped by actions (spec §3).
type Tree struct {
	byID        map[ID]*Component
	byPath      map[string]ID
	listeners   map[ID][]Listener
	fieldValues map[ID]gridpath.Primitive
	labelLRU    *lru.Cache[ID, string]
}

// New returns a Tree containing only the root Group at "/".
func New() *Tree {
	lruCache, _ := lru.New[ID, string](4096)
	t := &Tree{
		byID:        make(map[ID]*Component),
		byPath:      make(map[string]ID),
		listeners:   make(map[ID][]Listener),
		fieldValues: make(map[ID]gridpath.Primitive),
		labelLRU:    lruCache,
	}
	root := &Component{
		ID:   RootID,
		Path: gridpath.Root(),
		Name: "Root",
		Kind: KindGroup,
	}
	t.byID[RootID] = root
	t.byPath[root.Path.String()] = RootID
	return t
}

// AddGroup adds a non-leaf organizational Component under parentID.
func (t *Tree) AddGroup(parentID ID, pathSegment, name, help string) (ID, error) {
	return t.add(parentID, pathSegment, name, help, KindGroup, gridpath.KindBool, ContainerNone)
}

// AddField adds a leaf Component bound to one store path of kind
// fieldKind.
func (t *Tree) AddField(parentID ID, pathSegment, name, help string, fieldKind gridpath.Kind) (ID, error) {
	return t.add(parentID, pathSegment, name, help, KindField, fieldKind, ContainerNone)
}

// AddContainer adds a Container Component of the given ContainerKind.
func (t *Tree) AddContainer(parentID ID, pathSegment, name, help string, containerKind ContainerKind) (ID, error) {
	return t.add(parentID, pathSegment, name, help, KindContainer, gridpath.KindBool, containerKind)
}

func (t *Tree) add(parentID ID, pathSegment, name, help string, kind Kind, fieldKind gridpath.Kind, containerKind ContainerKind) (ID, error) {
	parent, ok := t.byID[parentID]
	if !ok {
		return 0, fmt.Errorf("%w: parent id %d", ErrNotFound, parentID)
	}
	label := name
	if label == "" {
		label = pathSegment
	}
	id := hashID(parentID, label)
	if _, exists := t.byID[id]; exists {
		return 0, fmt.Errorf("%w: parent %d label %q", ErrDuplicateLabel, parentID, label)
	}
	path := parent.Path
	if pathSegment != "" {
		path = path.Append(pathSegment)
	}
	c := &Component{
		ID:            id,
		ParentID:      parentID,
		HasParent:     true,
		PathSegment:   pathSegment,
		Path:          path,
		Name:          name,
		Help:          help,
		Label:         label,
		Kind:          kind,
		FieldKind:     fieldKind,
		ContainerKind: containerKind,
	}
	t.byID[id] = c
	t.byPath[path.String()] = id
	parent.Children = append(parent.Children, id)
	return id, nil
}

// ByID looks up a Component by its id.
func (t *Tree) ByID(id ID) (*Component, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// ByPath looks up a Component by its exact absolute path.
func (t *Tree) ByPath(p gridpath.Path) (*Component, bool) {
	id, ok := t.byPath[p.String()]
	if !ok {
		return nil, false
	}
	return t.byID[id], true
}

// Remove destroys the Component at id: it detaches from its parent's
// children, removes itself from both indexes, and drops its listener
// list, per spec §4.D's destruction contract. Removing a Group recursively
// removes its descendants first (a Component's Children are owned).
func (t *Tree) Remove(id ID) error {
	c, ok := t.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if id == RootID {
		return fmt.Errorf("component: cannot remove root")
	}
	for _, childID := range append([]ID{}, c.Children...) {
		if err := t.Remove(childID); err != nil {
			return err
		}
	}
	if parent, ok := t.byID[c.ParentID]; ok {
		parent.Children = removeID(parent.Children, id)
	}
	delete(t.byID, id)
	delete(t.byPath, c.Path.String())
	delete(t.listeners, id)
	delete(t.fieldValues, id)
	t.labelLRU.Remove(id)
	return nil
}

func removeID(ids []ID, target ID) []ID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// LabelForImgui returns the memoized "Name##PathKey" label for id,
// computing and caching it on first use (spec §11: LRU memoizes
// formatting; the tree itself remains the source of truth).
func (t *Tree) LabelForImgui(id ID) (string, bool) {
	if cached, ok := t.labelLRU.Get(id); ok {
		return cached, true
	}
	c, ok := t.byID[id]
	if !ok {
		return "", false
	}
	label := c.LabelForImgui()
	t.labelLRU.Add(id, label)
	return label, true
}

// Walk visits every Component depth-first, parent before children, in
// child-insertion order.
func (t *Tree) Walk(fn func(*Component)) {
	var visit func(ID)
	visit = func(id ID) {
		c := t.byID[id]
		fn(c)
		for _, childID := range c.Children {
			visit(childID)
		}
	}
	visit(RootID)
}
