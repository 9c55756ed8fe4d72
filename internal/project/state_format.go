package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mfkiwl/flowgrid/internal/component"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

// saveState writes the full flattened component tree (spec §4.D's
// JSON-pointer-keyed map) to filePath as the .fls state format: a
// snapshot of values with no action history.
func saveState(r *reducer.Reducer, filePath string) error {
	flat, err := component.ToJSON(r.Tree(), r.Store())
	if err != nil {
		return fmt.Errorf("project: flatten state: %w", err)
	}
	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal state: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("project: write state file: %w", err)
	}
	return nil
}

// loadState parses filePath as the .fls state format and replaces r's
// store wholesale with a fresh, historyless snapshot built from it. The
// flatten/unflatten is applied to a scratch store first so a malformed
// file never touches r's current state (spec §7).
func loadState(r *reducer.Reducer, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("project: read state file: %w", err)
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	scratch := gridstore.New()
	if err := component.FromJSON(r.Tree(), scratch, flat); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	scratch.Commit()
	r.RestoreSnapshot(scratch.Snapshot())
	return nil
}
