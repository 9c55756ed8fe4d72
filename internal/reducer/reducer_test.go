package reducer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/component"
	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

func newReducer(t *testing.T) *reducer.Reducer {
	t.Helper()
	return reducer.New(component.New(), config.New())
}

// S1: two BoolToggle actions on the same path within one gesture cancel,
// leaving no history record and the field at its original value.
func TestBoolToggleCancelsWithinGesture(t *testing.T) {
	r := newReducer(t)
	p := gridpath.New("enabled")

	r.Enqueue(action.BoolToggle{Path: p})
	r.Enqueue(action.BoolToggle{Path: p})
	patch, err := r.RunQueued(true)
	require.NoError(t, err)
	require.True(t, patch.Empty())
	require.Equal(t, 0, r.HistoryLen())
	require.False(t, r.CanUndo())
}

func TestBoolToggleSingleActionCommits(t *testing.T) {
	r := newReducer(t)
	p := gridpath.New("enabled")

	r.Enqueue(action.BoolToggle{Path: p})
	patch, err := r.RunQueued(true)
	require.NoError(t, err)
	require.False(t, patch.Empty())
	require.Equal(t, 1, r.HistoryLen())

	v, err := r.Store().GetBool(p)
	require.NoError(t, err)
	require.True(t, v)

	require.NoError(t, r.Undo())
	_, err = r.Store().GetBool(p)
	require.ErrorIs(t, err, gridpath.ErrNotFound, "undo removes the added path entirely")
}

// S6: three ValueSet actions queued within one gesture collapse to a
// single committed history record replacing the initial value with the
// last-queued value.
func TestValueSetGestureCollapses(t *testing.T) {
	r := newReducer(t)
	p := gridpath.New("volume")

	r.Enqueue(action.ValueSet{Path: p, Value: gridpath.S32(1)})
	r.Enqueue(action.ValueSet{Path: p, Value: gridpath.S32(2)})
	r.Enqueue(action.ValueSet{Path: p, Value: gridpath.S32(3)})
	patch, err := r.RunQueued(true)
	require.NoError(t, err)
	require.False(t, patch.Empty())
	require.Equal(t, 1, r.HistoryLen())

	v, err := r.Store().GetPrimitive(p)
	require.NoError(t, err)
	require.Equal(t, gridpath.S32(3), v)

	rec, ok := r.HistoryRecord(0)
	require.True(t, ok)
	require.Len(t, rec.Gesture.Actions, 1)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	r := newReducer(t)
	p := gridpath.New("volume")

	r.Enqueue(action.ValueSet{Path: p, Value: gridpath.S32(5)})
	_, err := r.RunQueued(true)
	require.NoError(t, err)

	require.True(t, r.CanUndo())
	require.False(t, r.CanRedo())
	require.NoError(t, r.Undo())
	_, err = r.Store().GetPrimitive(p)
	require.ErrorIs(t, err, gridpath.ErrNotFound)

	require.True(t, r.CanRedo())
	require.NoError(t, r.Redo())
	v, err := r.Store().GetPrimitive(p)
	require.NoError(t, err)
	require.Equal(t, gridpath.S32(5), v)
}

func TestRunQueuedWithoutForceCommitLeavesGestureOpen(t *testing.T) {
	r := newReducer(t)
	p := gridpath.New("volume")

	r.Enqueue(action.ValueSet{Path: p, Value: gridpath.S32(1)})
	patch, err := r.RunQueued(false)
	require.NoError(t, err)
	require.Nil(t, patch)
	require.Equal(t, reducer.InGesture, r.State())
	require.Equal(t, 0, r.HistoryLen())
}

func TestWindowsToggleVisibleIsNotSaved(t *testing.T) {
	r := newReducer(t)
	p := gridpath.New("windows", "inspector", "visible")

	r.Enqueue(action.WindowsToggleVisible{ID: p})
	_, err := r.RunQueued(true)
	require.NoError(t, err)
	require.Equal(t, 0, r.HistoryLen(), "window visibility is not part of saved history")

	v, err := r.Store().GetBool(p)
	require.NoError(t, err)
	require.True(t, v)
}

// Project actions with no ProjectHandler wired are dropped, not fatal.
func TestProjectActionWithoutHandlerIsDropped(t *testing.T) {
	r := newReducer(t)
	r.Enqueue(action.ProjectOpenEmpty{})
	_, err := r.RunQueued(true)
	require.NoError(t, err)
}

type fakeProjectHandler struct {
	openedEmpty int
	savedPath   string
}

func (f *fakeProjectHandler) OpenEmpty(r *reducer.Reducer) error {
	f.openedEmpty++
	r.Reset()
	return nil
}
func (f *fakeProjectHandler) OpenDefault(r *reducer.Reducer) error   { return nil }
func (f *fakeProjectHandler) Open(r *reducer.Reducer, p string) error { return nil }
func (f *fakeProjectHandler) SaveCurrent(r *reducer.Reducer) error   { return nil }
func (f *fakeProjectHandler) SaveDefault(r *reducer.Reducer) error   { return nil }
func (f *fakeProjectHandler) Save(r *reducer.Reducer, p string) error {
	f.savedPath = p
	return nil
}

func TestProjectHandlerWiring(t *testing.T) {
	r := newReducer(t)
	h := &fakeProjectHandler{}
	r.SetProjectHandler(h)

	r.Enqueue(action.ProjectOpenEmpty{})
	_, err := r.RunQueued(true)
	require.NoError(t, err)
	require.Equal(t, 1, h.openedEmpty)

	r.Enqueue(action.ProjectSave{FilePath: "/tmp/out.fls"})
	_, err = r.RunQueued(true)
	require.NoError(t, err)
	require.Equal(t, "/tmp/out.fls", h.savedPath)
}

// After every commit an affected Field's cached value matches the store.
func TestFieldCacheRefreshedBeforeListeners(t *testing.T) {
	tree := component.New()
	g, err := tree.AddGroup(component.RootID, "mixer", "", "")
	require.NoError(t, err)
	f, err := tree.AddField(g, "volume", "", "", gridpath.KindS32)
	require.NoError(t, err)

	r := reducer.New(tree, config.New())
	var seen gridpath.Primitive
	tree.AddListener(f, component.ListenerFunc(func(id component.ID) {
		seen, _ = tree.FieldValue(id)
	}))

	r.Enqueue(action.ValueSet{Path: gridpath.New("mixer", "volume"), Value: gridpath.S32(9)})
	_, err = r.RunQueued(true)
	require.NoError(t, err)
	require.Equal(t, gridpath.S32(9), seen, "listener reads the committed value from the cache")

	require.NoError(t, r.Undo())
	_, ok := tree.FieldValue(f)
	require.False(t, ok, "undo of the add clears the cached value")
}

func TestComponentListenerNotifiedOnCommit(t *testing.T) {
	tree := component.New()
	g, err := tree.AddGroup(component.RootID, "mixer", "", "")
	require.NoError(t, err)
	f, err := tree.AddField(g, "volume", "", "", gridpath.KindS32)
	require.NoError(t, err)

	r := reducer.New(tree, config.New())
	var notified []component.ID
	tree.AddListener(f, component.ListenerFunc(func(id component.ID) {
		notified = append(notified, id)
	}))

	r.Enqueue(action.ValueSet{Path: gridpath.New("mixer", "volume"), Value: gridpath.S32(7)})
	_, err = r.RunQueued(true)
	require.NoError(t, err)
	require.Equal(t, []component.ID{f}, notified)
}
