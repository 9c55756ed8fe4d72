package gridstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

func TestSnapshotIsolationAcrossTransientEdits(t *testing.T) {
	s := New()
	s.Transient()
	s.SetU32(gridpath.New("graph", "nodeCount"), 3)
	s.Commit()

	before := s.Snapshot()

	s.Transient()
	s.SetU32(gridpath.New("graph", "nodeCount"), 99)

	// Snapshot taken before the edit must be unaffected (invariant #2).
	beforeVal, ok := before.u32s.Get("/graph/nodeCount")
	require.True(t, ok)
	require.Equal(t, uint32(3), beforeVal)

	got, gerr := s.GetU32(gridpath.New("graph", "nodeCount"))
	require.NoError(t, gerr)
	require.Equal(t, uint32(99), got)

	s.Discard()
	got2, gerr2 := s.GetU32(gridpath.New("graph", "nodeCount"))
	require.NoError(t, gerr2)
	require.Equal(t, uint32(3), got2)
}

func TestCommitReseatsBuilders(t *testing.T) {
	s := New()
	s.Transient()
	s.SetBool(gridpath.New("a"), true)
	s.Commit()

	require.True(t, s.InTransient(), "commit must re-seat an open transient view")

	s.SetBool(gridpath.New("b"), true)
	s.Commit()

	v, err := s.GetBool(gridpath.New("a"))
	require.NoError(t, err)
	require.True(t, v)
	v2, err2 := s.GetBool(gridpath.New("b"))
	require.NoError(t, err2)
	require.True(t, v2)
}

func TestCheckedCommitDiffsAgainstPriorSnapshot(t *testing.T) {
	s := New()
	s.Transient()
	s.SetU32(gridpath.New("x"), 1)
	s.Commit()

	s.SetU32(gridpath.New("x"), 2)
	s.SetBool(gridpath.New("y"), true)
	p := s.CheckedCommit()

	require.Equal(t, 2, p.Len())
	e, ok := p.Get("x")
	require.True(t, ok)
	require.Equal(t, uint32(2), e.New)
	require.Equal(t, uint32(1), e.Old)
}

func TestDiffThenApplyReproducesTarget(t *testing.T) {
	a := New()
	a.Transient()
	a.SetU32(gridpath.New("n"), 1)
	a.SetString(gridpath.New("name"), "one")
	a.SetIdPairSet(gridpath.New("adj"), gridpath.IdPairSet{{From: 1, To: 2}: {}})
	a.Commit()

	b := New()
	b.Transient()
	b.SetU32(gridpath.New("n"), 2)
	b.SetString(gridpath.New("label"), "two")
	b.SetIdPairSet(gridpath.New("adj"), gridpath.IdPairSet{{From: 1, To: 2}: {}, {From: 2, To: 3}: {}})
	b.Commit()

	d := Diff(a.Snapshot(), b.Snapshot(), gridpath.Root())
	require.False(t, d.Empty())

	target := New()
	target.Restore(a.Snapshot())
	target.Transient()
	require.NoError(t, Apply(target, d))
	target.Commit()

	gotN, err := target.GetU32(gridpath.New("n"))
	require.NoError(t, err)
	require.Equal(t, uint32(2), gotN)

	gotLabel, err := target.GetString(gridpath.New("label"))
	require.NoError(t, err)
	require.Equal(t, "two", gotLabel)

	_, err = target.GetString(gridpath.New("name"))
	require.Error(t, err)

	adj, ok := target.GetIdPairSet(gridpath.New("adj"))
	require.True(t, ok)
	require.Len(t, adj, 2)
	_, has23 := adj[gridpath.IDPair{From: 2, To: 3}]
	require.True(t, has23)
}

func TestPrimitiveAccessorsTryEachKindInTurn(t *testing.T) {
	s := New()
	s.Transient()
	s.SetF32(gridpath.New("gain"), 0.5)
	s.Commit()

	v, err := s.GetPrimitive(gridpath.New("gain"))
	require.NoError(t, err)
	require.Equal(t, gridpath.KindF32, v.Kind())

	s.Transient()
	s.ErasePrimitive(gridpath.New("gain"))
	s.Commit()
	require.False(t, s.Contains(gridpath.New("gain")))
}
