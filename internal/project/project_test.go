package project_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/component"
	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/project"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

func newReducer(t *testing.T) *reducer.Reducer {
	t.Helper()
	// The state format flattens only components in the tree, so the
	// .fls round trips need a field at /volume.
	tree := component.New()
	_, err := tree.AddField(component.RootID, "volume", "", "", gridpath.KindS32)
	require.NoError(t, err)
	return reducer.New(tree, config.New())
}

func TestStateFormatRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newReducer(t)
	h := project.NewHandler(config.New(), "")
	r.SetProjectHandler(h)

	r.Enqueue(action.ValueSet{Path: gridpath.New("volume"), Value: gridpath.S32(7)})
	_, err := r.RunQueued(true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "song.fls")
	r.Enqueue(action.ProjectSave{FilePath: path})
	_, err = r.RunQueued(true)
	require.NoError(t, err)
	require.Equal(t, path, h.CurrentPath())

	r2 := newReducer(t)
	h2 := project.NewHandler(config.New(), "")
	r2.SetProjectHandler(h2)
	r2.Enqueue(action.ProjectOpen{FilePath: path})
	_, err = r2.RunQueued(true)
	require.NoError(t, err)

	v, err := r2.Store().GetPrimitive(gridpath.New("volume"))
	require.NoError(t, err)
	require.Equal(t, gridpath.S32(7), v)
	require.Equal(t, 0, r2.HistoryLen(), "state-format load carries no history")
}

func TestActionFormatRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newReducer(t)
	h := project.NewHandler(config.New(), "")
	r.SetProjectHandler(h)

	r.Enqueue(action.ValueSet{Path: gridpath.New("volume"), Value: gridpath.S32(1)})
	_, err := r.RunQueued(true)
	require.NoError(t, err)
	r.Enqueue(action.BoolToggle{Path: gridpath.New("enabled")})
	_, err = r.RunQueued(true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "song.fld")
	r.Enqueue(action.ProjectSave{FilePath: path})
	_, err = r.RunQueued(true)
	require.NoError(t, err)

	r2 := newReducer(t)
	h2 := project.NewHandler(config.New(), "")
	r2.SetProjectHandler(h2)
	r2.Enqueue(action.ProjectOpen{FilePath: path})
	_, err = r2.RunQueued(true)
	require.NoError(t, err)

	require.Equal(t, 2, r2.HistoryLen())
	v, err := r2.Store().GetPrimitive(gridpath.New("volume"))
	require.NoError(t, err)
	require.Equal(t, gridpath.S32(1), v)
	b, err := r2.Store().GetBool(gridpath.New("enabled"))
	require.NoError(t, err)
	require.True(t, b)
}

func TestOpenUnsupportedExtension(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newReducer(t)
	h := project.NewHandler(config.New(), "")
	r.SetProjectHandler(h)

	err := h.Open(r, "song.txt")
	require.ErrorIs(t, err, project.ErrUnsupportedExtension)
}

func TestSaveCurrentWithoutPriorOpenFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newReducer(t)
	h := project.NewHandler(config.New(), "")
	r.SetProjectHandler(h)

	err := h.SaveCurrent(r)
	require.ErrorIs(t, err, project.ErrNoCurrentPath)
}

func TestRecentProjectsFIFO(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newReducer(t)
	cfg := config.New(config.WithMaxRecentProjects(2))
	h := project.NewHandler(cfg, "")
	r.SetProjectHandler(h)

	dir := t.TempDir()
	for _, name := range []string{"a.fls", "b.fls", "c.fls"} {
		path := filepath.Join(dir, name)
		require.NoError(t, h.Save(r, path))
	}

	prefs, err := project.LoadPreferences()
	require.NoError(t, err)
	require.Len(t, prefs.RecentProjects, 2)
	require.Equal(t, filepath.Join(dir, "c.fls"), prefs.RecentProjects[0])
	require.Equal(t, filepath.Join(dir, "b.fls"), prefs.RecentProjects[1])
}
