package reducer

import (
	"github.com/mfkiwl/flowgrid/internal/action"
)

func init() {
	registerHandler("primitive/bool_toggle", handleBoolToggle)
	registerHandler("primitive/flags_set", handleFlagsSet)
	registerHandler("primitive/value_set", handleValueSet)
}

func handleBoolToggle(r *Reducer, a action.Action) error {
	act := a.(action.BoolToggle)
	cur, err := r.store.GetBool(act.Path)
	if err != nil {
		cur = false // unset path toggles from its implicit zero value
	}
	r.store.SetBool(act.Path, !cur)
	return nil
}

func handleFlagsSet(r *Reducer, a action.Action) error {
	act := a.(action.FlagsSet)
	r.store.SetS32(act.Path, act.Flags)
	return nil
}

func handleValueSet(r *Reducer, a action.Action) error {
	act := a.(action.ValueSet)
	r.store.SetPrimitive(act.Path, act.Value)
	return nil
}
