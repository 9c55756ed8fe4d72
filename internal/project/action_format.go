package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

// wireGesture is one committed gesture's on-disk shape: a commit
// timestamp plus the ordered, already-merge-collapsed actions spec §4.F
// recorded for it.
type wireGesture struct {
	CommitTime time.Time         `json:"commit_time"`
	Actions    []json.RawMessage `json:"actions"`
}

// wireHistory is the full .fld/.flp action-history format: every
// committed gesture in order, plus the history index to restore after
// replay (spec §4.G).
type wireHistory struct {
	Index    int           `json:"index"`
	Gestures []wireGesture `json:"gestures"`
}

// saveActions writes r's full gesture history to filePath as the
// .fld/.flp action-history format.
func saveActions(r *reducer.Reducer, filePath string) error {
	wh := wireHistory{Index: r.HistoryIndex()}
	for i := 0; i < r.HistoryLen(); i++ {
		rec, ok := r.HistoryRecord(i)
		if !ok {
			continue
		}
		wg := wireGesture{CommitTime: rec.Gesture.CommitTime}
		for _, qa := range rec.Gesture.Actions {
			b, err := action.EncodeJSON(qa.Action)
			if err != nil {
				return fmt.Errorf("project: encode action %s: %w", qa.Action.Metadata().TypePath, err)
			}
			wg.Actions = append(wg.Actions, b)
		}
		wh.Gestures = append(wh.Gestures, wg)
	}
	data, err := json.MarshalIndent(wh, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal history: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("project: write history file: %w", err)
	}
	return nil
}

// loadActions parses filePath as the action-history format and replays
// it into r from a clean slate: every action is decoded up front, so a
// malformed file is rejected before r.Reset() ever runs, leaving the
// current project untouched on failure (spec §7).
func loadActions(r *reducer.Reducer, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("project: read history file: %w", err)
	}
	var wh wireHistory
	if err := json.Unmarshal(data, &wh); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}

	type decodedGesture struct {
		actions []action.Action
	}
	gestures := make([]decodedGesture, len(wh.Gestures))
	for i, wg := range wh.Gestures {
		dg := decodedGesture{actions: make([]action.Action, 0, len(wg.Actions))}
		for _, raw := range wg.Actions {
			act, err := action.DecodeJSON(raw)
			if err != nil {
				return fmt.Errorf("%w: gesture %d: %v", ErrMalformedProject, i, err)
			}
			dg.actions = append(dg.actions, act)
		}
		gestures[i] = dg
	}

	r.Reset()
	for _, dg := range gestures {
		for _, act := range dg.actions {
			r.Enqueue(act)
		}
		if _, err := r.RunQueued(true); err != nil {
			return fmt.Errorf("project: replay gesture: %w", err)
		}
	}
	if err := r.SetHistoryIndex(wh.Index); err != nil {
		return fmt.Errorf("project: restore history index: %w", err)
	}
	return nil
}
