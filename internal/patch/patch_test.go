package patch

import (
	"testing"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

func TestMergeAddThenReplace(t *testing.T) {
	// S2: p1 = {"/x": Add(1)}, p2 = {"/x": Replace(2, 1)};
	// merge(p1, p2) == {"/x": Add(2)}.
	base := gridpath.Root()
	p1 := New(base)
	p1.Add("x", 1)
	p2 := New(base)
	p2.Replace("x", 2, 1)

	merged := Merge(p1, p2)
	e, ok := merged.Get("x")
	if !ok {
		t.Fatal("expected entry at x")
	}
	if e.Op != OpAdd || e.New != 2 {
		t.Fatalf("got %+v", e)
	}
}

func TestMergeAddThenRemoveCancels(t *testing.T) {
	base := gridpath.Root()
	p1 := New(base)
	p1.Add("x", 1)
	p2 := New(base)
	p2.Remove("x", 1)

	merged := Merge(p1, p2)
	if !merged.Empty() {
		t.Fatalf("expected empty merge, got %d ops", merged.Len())
	}
}

func TestMergeRemoveThenAddSameCancels(t *testing.T) {
	base := gridpath.Root()
	p1 := New(base)
	p1.Remove("x", gridpath.U32(7))
	p2 := New(base)
	p2.Add("x", gridpath.U32(7))

	merged := Merge(p1, p2)
	if !merged.Empty() {
		t.Fatalf("expected empty merge, got %d ops", merged.Len())
	}
}

func TestMergeRemoveThenAddOtherBecomesReplace(t *testing.T) {
	base := gridpath.Root()
	p1 := New(base)
	p1.Remove("x", gridpath.U32(7))
	p2 := New(base)
	p2.Add("x", gridpath.U32(9))

	merged := Merge(p1, p2)
	e, ok := merged.Get("x")
	if !ok || e.Op != OpReplace {
		t.Fatalf("got %+v ok=%v", e, ok)
	}
}

func TestIsPrefixOfAnyPath(t *testing.T) {
	p := New(gridpath.Root())
	p.Add("a/b", 1)
	if !p.IsPrefixOfAnyPath(gridpath.Parse("/a")) {
		t.Fatal("expected prefix match")
	}
	if p.IsPrefixOfAnyPath(gridpath.Parse("/z")) {
		t.Fatal("expected no match")
	}
}

func TestOrderPreserved(t *testing.T) {
	p := New(gridpath.Root())
	p.Add("b", 1)
	p.Add("a", 2)
	p.Add("c", 3)
	got := p.Ops()
	want := []string{"b", "a", "c"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}
}
