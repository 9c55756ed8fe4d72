// Package patch implements the store's ordered Add/Remove/Replace edit
// operations and the merge algebra of spec §4.C. This is a different
// structure from an RFC 6902 JSON Patch (see json_patch.go's doc comment in
// the teacher package this is grounded on): operations are keyed by path
// and collapse under composition rather than replaying sequentially.
package patch

import (
	"fmt"
	"strings"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

// Op tags what kind of change a single path underwent.
type Op int

const (
	OpAdd Op = iota
	OpRemove
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Entry is one path's edit: New/Old hold the values relevant to Op (Add
// only sets New, Remove only sets Old, Replace sets both).
type Entry struct {
	Op  Op
	New interface{}
	Old interface{}
}

// Patch is an ordered map of relative-path-under-BasePath to Entry. Order
// is insertion order, which spec §4.D/§5 requires listener notification to
// respect ("order across ids is by the patch's path order").
type Patch struct {
	BasePath gridpath.Path
	order    []string
	ops      map[string]Entry
}

// New creates an empty patch rooted at base.
func New(base gridpath.Path) *Patch {
	return &Patch{BasePath: base, ops: make(map[string]Entry)}
}

// Empty reports whether the patch carries no operations.
func (p *Patch) Empty() bool {
	return p == nil || len(p.order) == 0
}

// Len returns the number of operations in the patch.
func (p *Patch) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

func (p *Patch) set(rel string, e Entry) {
	if _, exists := p.ops[rel]; !exists {
		p.order = append(p.order, rel)
	}
	p.ops[rel] = e
}

// Add records an Add operation at relative path rel.
func (p *Patch) Add(rel string, newVal interface{}) {
	p.set(rel, Entry{Op: OpAdd, New: newVal})
}

// Remove records a Remove operation at relative path rel.
func (p *Patch) Remove(rel string, oldVal interface{}) {
	p.set(rel, Entry{Op: OpRemove, Old: oldVal})
}

// Replace records a Replace operation at relative path rel.
func (p *Patch) Replace(rel string, newVal, oldVal interface{}) {
	p.set(rel, Entry{Op: OpReplace, New: newVal, Old: oldVal})
}

// Ops returns the operations in insertion (path) order.
func (p *Patch) Ops() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Get returns the entry recorded at relative path rel.
func (p *Patch) Get(rel string) (Entry, bool) {
	if p == nil {
		return Entry{}, false
	}
	e, ok := p.ops[rel]
	return e, ok
}

// AbsolutePaths returns the absolute paths touched by the patch, in patch
// order, computed as BasePath.Join(rel-segments). A relative key may itself
// contain several "/"-separated segments (e.g. a set element's synthetic
// "<path>/<element>" key), so it is split and joined segment-by-segment
// rather than appended as one literal segment.
func (p *Patch) AbsolutePaths() []gridpath.Path {
	if p == nil {
		return nil
	}
	out := make([]gridpath.Path, 0, len(p.order))
	for _, rel := range p.order {
		out = append(out, p.BasePath.Join(relSegments(rel)...))
	}
	return out
}

func relSegments(rel string) []string {
	trimmed := strings.Trim(rel, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// IsPrefixOfAnyPath reports whether prefix is a prefix of (or equal to) any
// absolute path touched by the patch; used to decide whether a listener
// rooted at prefix must be notified (spec §4.C).
func (p *Patch) IsPrefixOfAnyPath(prefix gridpath.Path) bool {
	for _, abs := range p.AbsolutePaths() {
		if abs.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

// Merge produces the minimal patch representing "a then b", per the
// algebra in spec §4.C. a and b must share the same BasePath.
func Merge(a, b *Patch) *Patch {
	out := New(a.BasePath)
	if a != nil {
		for _, rel := range a.order {
			out.set(rel, a.ops[rel])
		}
	}
	if b == nil {
		return out
	}
	for _, rel := range b.order {
		be := b.ops[rel]
		ae, hadA := out.ops[rel]
		if !hadA {
			// No prior op at this path: b's op stands as-is, but keep its
			// position at the end of the combined order (set handles this).
			out.set(rel, be)
			continue
		}
		merged, keep := mergeEntry(ae, be)
		if !keep {
			delete(out.ops, rel)
			out.order = removeFromOrder(out.order, rel)
			continue
		}
		out.ops[rel] = merged
	}
	return out
}

func removeFromOrder(order []string, rel string) []string {
	for i, r := range order {
		if r == rel {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// mergeEntry implements the per-path algebra table from spec §4.C. The
// second return value is false when the two ops cancel to "no-op".
func mergeEntry(a, b Entry) (Entry, bool) {
	switch a.Op {
	case OpAdd:
		switch b.Op {
		case OpAdd:
			// Add ∘ Add(same) → Add; Add ∘ Add(different) → Add(new),
			// collapsed (lossy by design, per spec).
			return Entry{Op: OpAdd, New: b.New}, true
		case OpRemove:
			// Add ∘ Remove → ∅
			return Entry{}, false
		case OpReplace:
			// Add ∘ Replace(v→w) → Add(w)
			return Entry{Op: OpAdd, New: b.New}, true
		}
	case OpRemove:
		switch b.Op {
		case OpAdd:
			if valuesEqual(a.Old, b.New) {
				// Remove ∘ Add(old_value) → ∅
				return Entry{}, false
			}
			// Remove ∘ Add(other) → Replace(other, old)
			return Entry{Op: OpReplace, New: b.New, Old: a.Old}, true
		case OpReplace:
			// Remove ∘ Replace → Replace(new, old)
			return Entry{Op: OpReplace, New: b.New, Old: a.Old}, true
		case OpRemove:
			// Removing an already-removed path: keep the original remove.
			return a, true
		}
	case OpReplace:
		switch b.Op {
		case OpAdd, OpReplace:
			// Replace(old→x) ∘ Add/Replace(→y) → Replace(old→y)
			return Entry{Op: OpReplace, New: b.New, Old: a.Old}, true
		case OpRemove:
			// Replace(old→x) ∘ Remove → Remove(old)
			return Entry{Op: OpRemove, Old: a.Old}, true
		}
	}
	panic(fmt.Sprintf("patch: unhandled merge case %v -> %v", a.Op, b.Op))
}

func valuesEqual(a, b interface{}) bool {
	if ap, ok := a.(gridpath.Primitive); ok {
		if bp, ok := b.(gridpath.Primitive); ok {
			return ap.Equal(bp)
		}
		return false
	}
	return a == b
}
