package project

import (
	"golang.org/x/sync/errgroup"

	"github.com/mfkiwl/flowgrid/internal/reducer"
)

// SaveAll writes both on-disk representations of the current project in
// one call: statePath receives the .fls flattened snapshot and
// actionsPath the .fld/.flp gesture log. The two serializations read only
// committed data — the persistent snapshot and the immutable history
// records — so they run concurrently in an errgroup. The reducer must be
// quiescent for the duration of the call (spec §5: drive the reducer to
// quiescence before external observers read).
func SaveAll(r *reducer.Reducer, statePath, actionsPath string) error {
	var g errgroup.Group
	g.Go(func() error { return saveState(r, statePath) })
	g.Go(func() error { return saveActions(r, actionsPath) })
	return g.Wait()
}
