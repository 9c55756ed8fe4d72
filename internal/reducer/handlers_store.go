package reducer

import (
	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
)

func init() {
	registerHandler("store/apply_patch", handleStoreApplyPatch)
}

// handleStoreApplyPatch replays an already-computed patch directly onto
// the transient store (spec §6), e.g. one received over a transport or
// replayed from a saved action-history project file.
func handleStoreApplyPatch(r *Reducer, a action.Action) error {
	act := a.(action.ApplyPatch)
	return gridstore.Apply(r.store, act.Patch)
}
