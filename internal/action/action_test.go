package action

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

func TestBoolToggleCancelsItself(t *testing.T) {
	p := gridpath.New("a")
	first := BoolToggle{Path: p}
	second := BoolToggle{Path: p}

	result, ok := TryMerge(first, second)
	require.True(t, ok)
	require.Equal(t, Cancel, result)
}

func TestBoolToggleDoesNotMergeDifferentPaths(t *testing.T) {
	first := BoolToggle{Path: gridpath.New("a")}
	second := BoolToggle{Path: gridpath.New("b")}

	_, ok := TryMerge(first, second)
	require.False(t, ok)
}

func TestValueSetAlwaysMergesToLatest(t *testing.T) {
	p := gridpath.New("v")
	a1 := ValueSet{Path: p, Value: gridpath.U32(1)}
	a2 := ValueSet{Path: p, Value: gridpath.U32(2)}
	a3 := ValueSet{Path: p, Value: gridpath.U32(3)}

	r, ok := TryMerge(a1, a2)
	require.True(t, ok)
	require.Equal(t, KeepOther, r)

	r, ok = TryMerge(a2, a3)
	require.True(t, ok)
	require.Equal(t, KeepOther, r)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := ValueSet{Path: gridpath.New("gain"), Value: gridpath.F32(0.75)}
	data, err := EncodeJSON(original)
	require.NoError(t, err)

	decoded, err := DecodeJSON(data)
	require.NoError(t, err)

	vs, ok := decoded.(ValueSet)
	require.True(t, ok)
	require.True(t, vs.Path.Equal(original.Path))
	require.True(t, vs.Value.Equal(original.Value))
}

func TestAdjacencyToggleCancelsSameEdge(t *testing.T) {
	p := gridpath.New("adj")
	a1 := AdjacencyListToggleConnection{Path: p, Src: 1, Dst: 2}
	a2 := AdjacencyListToggleConnection{Path: p, Src: 1, Dst: 2}

	r, ok := TryMerge(a1, a2)
	require.True(t, ok)
	require.Equal(t, Cancel, r)

	a3 := AdjacencyListToggleConnection{Path: p, Src: 2, Dst: 3}
	_, ok = TryMerge(a1, a3)
	require.False(t, ok)
}
