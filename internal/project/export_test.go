package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/project"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

func TestSaveAllWritesBothFormats(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newReducer(t)
	h := project.NewHandler(config.New(), "")
	r.SetProjectHandler(h)

	r.Enqueue(action.ValueSet{Path: gridpath.New("volume"), Value: gridpath.S32(3)})
	_, err := r.RunQueued(true)
	require.NoError(t, err)

	dir := t.TempDir()
	statePath := filepath.Join(dir, "song.fls")
	actionsPath := filepath.Join(dir, "song.fld")
	require.NoError(t, project.SaveAll(r, statePath, actionsPath))

	for _, p := range []string{statePath, actionsPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}

	// Both outputs load back into fresh reducers with the same value.
	for _, p := range []string{statePath, actionsPath} {
		r2 := newReducer(t)
		h2 := project.NewHandler(config.New(), "")
		r2.SetProjectHandler(h2)
		require.NoError(t, h2.Open(r2, p))
		v, err := r2.Store().GetPrimitive(gridpath.New("volume"))
		require.NoError(t, err)
		require.Equal(t, gridpath.S32(3), v)
	}
}
