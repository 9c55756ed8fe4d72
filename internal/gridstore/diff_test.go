package gridstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

func TestDiffU32SetElementTypeIsDistinguishable(t *testing.T) {
	a := New()
	a.Transient()
	a.SetU32Set(gridpath.New("members"), gridpath.U32Set{1: {}})
	a.Commit()

	b := New()
	b.Transient()
	b.SetU32Set(gridpath.New("members"), gridpath.U32Set{1: {}, 2: {}})
	b.Commit()

	d := Diff(a.Snapshot(), b.Snapshot(), gridpath.Root())
	e, ok := d.Get("members/2")
	require.True(t, ok)
	// The added value must be a U32SetElem, not a bare uint32, so a
	// replay consumer can tell a set-element edit from a scalar U32 edit
	// by type alone.
	_, isElem := e.New.(gridpath.U32SetElem)
	require.True(t, isElem)
}

func TestDiffEmptyForIdenticalSnapshots(t *testing.T) {
	s := New()
	s.Transient()
	s.SetU32(gridpath.New("a"), 1)
	s.SetString(gridpath.New("b"), "x")
	s.Commit()

	d := Diff(s.Snapshot(), s.Snapshot(), gridpath.Root())
	require.True(t, d.Empty())
}

func TestDiffRemovesEntireSetWhenPathDisappears(t *testing.T) {
	a := New()
	a.Transient()
	a.SetIdPairSet(gridpath.New("adj"), gridpath.IdPairSet{{From: 1, To: 2}: {}, {From: 3, To: 4}: {}})
	a.Commit()

	b := New()

	d := Diff(a.Snapshot(), b.Snapshot(), gridpath.Root())
	require.Equal(t, 2, d.Len())
	for _, rel := range d.Ops() {
		e, _ := d.Get(rel)
		require.Equal(t, patch.OpRemove, e.Op)
	}
}
