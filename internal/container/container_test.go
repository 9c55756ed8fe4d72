package container

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjacencyReachability(t *testing.T) {
	a := AdjacencyList{}
	a = a.Connect(1, 2)
	a = a.Connect(2, 3)
	a = a.Connect(3, 4)

	disabled := map[uint32]struct{}{3: {}}
	require.False(t, a.HasPath(1, 4, disabled))
	require.True(t, a.HasPath(1, 2, disabled))
}

func TestAdjacencyToggle(t *testing.T) {
	a := AdjacencyList{}
	a = a.Toggle(1, 2)
	require.True(t, a.IsConnected(1, 2))
	a = a.Toggle(1, 2)
	require.False(t, a.IsConnected(1, 2))
}

func TestNavigablePushBackForward(t *testing.T) {
	n := NewNavigable(0)
	n = n.Push(1)
	n = n.Push(2)
	n = n.Push(3)

	cur, ok := n.Current()
	require.True(t, ok)
	require.Equal(t, uint32(3), cur)

	n, ok = n.Back()
	require.True(t, ok)
	cur, _ = n.Current()
	require.Equal(t, uint32(2), cur)

	n, ok = n.Forward()
	require.True(t, ok)
	cur, _ = n.Current()
	require.Equal(t, uint32(3), cur)

	_, ok = n.Forward()
	require.False(t, ok)
}

func TestNavigablePushDiscardsForwardHistory(t *testing.T) {
	n := NewNavigable(0)
	n = n.Push(1)
	n = n.Push(2)
	n, _ = n.Back()
	n = n.Push(9)

	cur, _ := n.Current()
	require.Equal(t, uint32(9), cur)
	_, ok := n.Forward()
	require.False(t, ok)
}

func TestNavigableBounded(t *testing.T) {
	n := NewNavigable(2)
	n = n.Push(1)
	n = n.Push(2)
	n = n.Push(3)

	cur, _ := n.Current()
	require.Equal(t, uint32(3), cur)
	n, ok := n.Back()
	require.True(t, ok)
	cur, _ = n.Current()
	require.Equal(t, uint32(2), cur)
	_, ok = n.Back()
	require.False(t, ok)
}

func TestDiffVectorReproducesTarget(t *testing.T) {
	cases := []struct {
		a, b Vector
	}{
		{Vector{1, 2, 3}, Vector{1, 4, 3}},
		{Vector{}, Vector{1, 2, 3}},
		{Vector{1, 2, 3}, Vector{}},
		{Vector{1, 2, 3, 4}, Vector{2, 3}},
		{Vector{1, 2, 3}, Vector{0, 1, 2, 3, 4}},
		{Vector{5, 5, 5}, Vector{5, 5, 5}},
	}
	for _, c := range cases {
		ops := DiffVector(c.a, c.b)
		got := ApplyVectorOps(c.a, ops)
		require.Equal(t, []uint32(c.b), []uint32(got))
	}
}

func TestVectorSetAtAndResize(t *testing.T) {
	v := Vector{1, 2, 3}
	v2 := v.SetAt(1, 9)
	require.Equal(t, Vector{1, 9, 3}, v2)
	require.Equal(t, Vector{1, 2, 3}, v, "SetAt must not mutate the receiver")

	v3 := v.SetAt(4, 7)
	require.Equal(t, Vector{1, 2, 3, 0, 7}, v3)

	v4 := v.Resize(2)
	require.Equal(t, Vector{1, 2}, v4)
}
