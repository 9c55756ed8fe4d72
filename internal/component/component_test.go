package component

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

func TestAddAndLookup(t *testing.T) {
	tree := New()
	id, err := tree.AddField(RootID, "gain", "Gain", "output gain", gridpath.KindF32)
	require.NoError(t, err)

	c, ok := tree.ByID(id)
	require.True(t, ok)
	require.Equal(t, "/gain", c.Path.String())

	byPath, ok := tree.ByPath(gridpath.New("gain"))
	require.True(t, ok)
	require.Equal(t, id, byPath.ID)
}

func TestDuplicateLabelRejected(t *testing.T) {
	tree := New()
	_, err := tree.AddField(RootID, "gain", "Gain", "", gridpath.KindF32)
	require.NoError(t, err)
	_, err = tree.AddField(RootID, "gain2", "Gain", "", gridpath.KindF32)
	require.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestRemoveDetachesFromParentAndIndexes(t *testing.T) {
	tree := New()
	groupID, err := tree.AddGroup(RootID, "panel", "Panel", "")
	require.NoError(t, err)
	fieldID, err := tree.AddField(groupID, "gain", "Gain", "", gridpath.KindF32)
	require.NoError(t, err)

	require.NoError(t, tree.Remove(groupID))

	_, ok := tree.ByID(groupID)
	require.False(t, ok)
	_, ok = tree.ByID(fieldID)
	require.False(t, ok)
	_, ok = tree.ByPath(gridpath.New("panel", "gain"))
	require.False(t, ok)
}

type countingListener struct{ calls int }

func (l *countingListener) OnFieldChanged(ID) { l.calls++ }

func TestNotifyPatchOncePerID(t *testing.T) {
	tree := New()
	id, err := tree.AddContainer(RootID, "vec", "Vec", "", ContainerVector)
	require.NoError(t, err)

	l := &countingListener{}
	tree.AddListener(id, l)

	p := patch.New(gridpath.Root())
	p.Add("vec", uint32(2))
	p.Add("vec/0", uint32(1))
	p.Add("vec/1", uint32(2))
	tree.NotifyPatch(p)

	require.Equal(t, 1, l.calls)
}

func TestToJSONFromJSONRoundTrip(t *testing.T) {
	tree := New()
	fieldID, err := tree.AddField(RootID, "gain", "Gain", "", gridpath.KindF32)
	require.NoError(t, err)
	vecID, err := tree.AddContainer(RootID, "vec", "Vec", "", ContainerVector)
	require.NoError(t, err)

	s := gridstore.New()
	s.Transient()
	s.SetF32(gridpath.New("gain"), 0.5)
	WriteVector(s, gridpath.New("vec"), []uint32{1, 2, 3})
	s.Commit()

	flat, err := ToJSON(tree, s)
	require.NoError(t, err)
	require.Contains(t, flat, "/gain")
	require.Contains(t, flat, "/vec")

	s2 := gridstore.New()
	s2.Transient()
	require.NoError(t, FromJSON(tree, s2, flat))
	s2.Commit()

	gain, err := s2.GetF32(gridpath.New("gain"))
	require.NoError(t, err)
	require.Equal(t, float32(0.5), gain)

	vec, err := ReadVector(s2, gridpath.New("vec"))
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 3}, []uint32(vec))

	_ = fieldID
	_ = vecID
}
