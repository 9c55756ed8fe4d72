package reducer

import "github.com/mfkiwl/flowgrid/internal/action"

func init() {
	registerHandler("windows/toggle_visible", handleWindowsToggleVisible)
	registerHandler("windows/toggle_debug", handleWindowsToggleDebug)
}

func handleWindowsToggleVisible(r *Reducer, a action.Action) error {
	act := a.(action.WindowsToggleVisible)
	cur, err := r.store.GetBool(act.ID)
	if err != nil {
		cur = false
	}
	r.store.SetBool(act.ID, !cur)
	return nil
}

func handleWindowsToggleDebug(r *Reducer, a action.Action) error {
	act := a.(action.WindowsToggleDebug)
	debugPath := act.ID.Append("debug")
	cur, err := r.store.GetBool(debugPath)
	if err != nil {
		cur = false
	}
	r.store.SetBool(debugPath, !cur)
	return nil
}
