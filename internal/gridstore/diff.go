package gridstore

import (
	"strings"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

// Diff walks both maps of each kind between a and b, emitting Add/Remove/
// Replace ops for primitives, and per-element Add/Remove ops for
// IdPairSet/U32Set entries (using the serialized element as the relative
// path segment under the set's own path), per spec §4.B.
func Diff(a, b Persistent, base gridpath.Path) *patch.Patch {
	p := patch.New(base)
	diffBoolMap(p, a.bools, b.bools)
	diffU32Map(p, a.u32s, b.u32s)
	diffS32Map(p, a.s32s, b.s32s)
	diffF32Map(p, a.f32s, b.f32s)
	diffStringMap(p, a.strings, b.strings)
	diffIdPairSetMap(p, a.idPairSets, b.idPairSets)
	diffU32SetMap(p, a.u32Sets, b.u32Sets)
	return p
}

// relKey strips the leading "/" a gridpath.Path.String() carries, since
// patch.Patch addresses ops with paths relative to its BasePath.
func relKey(k string) string {
	return strings.TrimPrefix(k, "/")
}

func diffBoolMap(p *patch.Patch, a, b mapBool) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		if bv, ok := b.Get(k); ok {
			if av != bv {
				p.Replace(relKey(k), bv, av)
			}
		} else {
			p.Remove(relKey(k), av)
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if !visited[k] {
			p.Add(relKey(k), bv)
		}
	}
}

func diffU32Map(p *patch.Patch, a, b mapU32) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		if bv, ok := b.Get(k); ok {
			if av != bv {
				p.Replace(relKey(k), bv, av)
			}
		} else {
			p.Remove(relKey(k), av)
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if !visited[k] {
			p.Add(relKey(k), bv)
		}
	}
}

func diffS32Map(p *patch.Patch, a, b mapS32) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		if bv, ok := b.Get(k); ok {
			if av != bv {
				p.Replace(relKey(k), bv, av)
			}
		} else {
			p.Remove(relKey(k), av)
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if !visited[k] {
			p.Add(relKey(k), bv)
		}
	}
}

func diffF32Map(p *patch.Patch, a, b mapF32) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		if bv, ok := b.Get(k); ok {
			if av != bv {
				p.Replace(relKey(k), bv, av)
			}
		} else {
			p.Remove(relKey(k), av)
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if !visited[k] {
			p.Add(relKey(k), bv)
		}
	}
}

func diffStringMap(p *patch.Patch, a, b mapString) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		if bv, ok := b.Get(k); ok {
			if av != bv {
				p.Replace(relKey(k), bv, av)
			}
		} else {
			p.Remove(relKey(k), av)
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if !visited[k] {
			p.Add(relKey(k), bv)
		}
	}
}

// diffIdPairSetMap compares each path's whole IdPairSet value, emitting one
// per-element Add/Remove under a synthetic relative path
// "<set path>/<element>" so a listener can observe individual edge
// changes, per spec §4.B.
func diffIdPairSetMap(p *patch.Patch, a, b mapIdPairSet) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		bv, ok := b.Get(k)
		if !ok {
			for elem := range av {
				p.Remove(relKey(k)+"/"+elem.String(), elem)
			}
			continue
		}
		for elem := range av {
			if _, still := bv[elem]; !still {
				p.Remove(relKey(k)+"/"+elem.String(), elem)
			}
		}
		for elem := range bv {
			if _, had := av[elem]; !had {
				p.Add(relKey(k)+"/"+elem.String(), elem)
			}
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if visited[k] {
			continue
		}
		for elem := range bv {
			p.Add(relKey(k)+"/"+elem.String(), elem)
		}
	}
}

func diffU32SetMap(p *patch.Patch, a, b mapU32Set) {
	visited := make(map[string]bool)
	itr := a.Iterator()
	for !itr.Done() {
		k, av, _ := itr.Next()
		visited[k] = true
		bv, ok := b.Get(k)
		if !ok {
			for elem := range av {
				p.Remove(segmentForU32(relKey(k), elem), gridpath.U32SetElem(elem))
			}
			continue
		}
		for elem := range av {
			if _, still := bv[elem]; !still {
				p.Remove(segmentForU32(relKey(k), elem), gridpath.U32SetElem(elem))
			}
		}
		for elem := range bv {
			if _, had := av[elem]; !had {
				p.Add(segmentForU32(relKey(k), elem), gridpath.U32SetElem(elem))
			}
		}
	}
	itr = b.Iterator()
	for !itr.Done() {
		k, bv, _ := itr.Next()
		if visited[k] {
			continue
		}
		for elem := range bv {
			p.Add(segmentForU32(relKey(k), elem), gridpath.U32SetElem(elem))
		}
	}
}
