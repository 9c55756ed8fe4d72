// Package gridpath implements the typed value universe and hierarchical
// path keys that the rest of the core is addressed by.
package gridpath

import (
	"hash/fnv"
	"strings"
)

// Path is an ordered, immutable sequence of non-empty segments. "/" is the
// unique root path. Paths are cheap to hash and compose via Append, and
// compare by value so they can be used directly as map keys once rendered
// to their canonical string form via String.
type Path struct {
	segments []string
}

// Root returns the unique root path.
func Root() Path {
	return Path{}
}

// New builds a path from explicit segments. Empty segments are rejected by
// the caller's responsibility; New does not validate, Parse does.
func New(segments ...string) Path {
	if len(segments) == 0 {
		return Root()
	}
	cp := make([]string, len(segments))
	copy(cp, segments)
	return Path{segments: cp}
}

// Parse splits a canonical "/a/b/c" string into a Path. "" and "/" both
// parse to the root. Leading/trailing slashes are ignored; empty interior
// segments (from "//") are dropped.
func Parse(s string) Path {
	if s == "" || s == "/" {
		return Root()
	}
	parts := strings.Split(s, "/")
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return Path{segments: segs}
}

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Segments returns the path's segments. The returned slice must not be
// mutated by the caller.
func (p Path) Segments() []string {
	return p.segments
}

// Append returns a new path with segment appended as the new leaf.
func (p Path) Append(segment string) Path {
	if segment == "" {
		return p
	}
	segs := make([]string, len(p.segments)+1)
	copy(segs, p.segments)
	segs[len(p.segments)] = segment
	return Path{segments: segs}
}

// Join appends a sequence of segments, equivalent to repeated Append.
func (p Path) Join(segments ...string) Path {
	out := p
	for _, s := range segments {
		out = out.Append(s)
	}
	return out
}

// Parent returns the path with its leaf segment removed. Parent of root is
// root.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	segs := make([]string, len(p.segments)-1)
	copy(segs, p.segments[:len(p.segments)-1])
	return Path{segments: segs}
}

// Leaf returns the final segment, or "" for the root path.
func (p Path) Leaf() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// RelativeTo returns p expressed relative to base: the ok result is false
// if base is not a prefix of p.
func (p Path) RelativeTo(base Path) (Path, bool) {
	if len(base.segments) > len(p.segments) {
		return Path{}, false
	}
	for i, s := range base.segments {
		if p.segments[i] != s {
			return Path{}, false
		}
	}
	return Path{segments: p.segments[len(base.segments):]}, true
}

// HasPrefix reports whether base is a prefix of p (p == base counts).
func (p Path) HasPrefix(base Path) bool {
	_, ok := p.RelativeTo(base)
	return ok
}

// String renders the canonical form: "/" for root, "/a/b/c" otherwise.
func (p Path) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.segments, "/")
}

// Equal reports deep equality between two paths.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Less defines a total order over paths (segment-wise lexicographic, a
// proper prefix sorting before its extensions) suitable for use as a
// stable map-iteration order or a sort
// key; it is not required to match filesystem sort order.
func (p Path) Less(other Path) bool {
	for i := 0; i < len(p.segments) && i < len(other.segments); i++ {
		if p.segments[i] != other.segments[i] {
			return p.segments[i] < other.segments[i]
		}
	}
	return len(p.segments) < len(other.segments)
}

// Hash returns an FNV-1a hash of the path's canonical string form, mirroring
// the hashing scheme the teacher's store uses to shard paths.
func (p Path) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(p.String()))
	return h.Sum64()
}
