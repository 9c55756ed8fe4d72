// Package action implements the tagged action variants of spec §4.E: an
// immutable message type with static metadata, a merge rule, and a
// two-element-array JSON encoding keyed by a type path.
package action

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

// MergeRule selects how two actions of the same concrete type are combined
// when queued adjacently within one gesture (spec §4.E).
type MergeRule int

const (
	// NoMerge actions are never collapsed; each appears in the gesture
	// individually.
	NoMerge MergeRule = iota
	// AlwaysMerge collapses to the most recently queued action.
	AlwaysMerge
	// SamePathMerge collapses only when both actions carry the same
	// target path.
	SamePathMerge
	// CustomMerge defers to the action type's own MergeWith.
	CustomMerge
)

func (r MergeRule) String() string {
	switch r {
	case NoMerge:
		return "no-merge"
	case AlwaysMerge:
		return "always-merge"
	case SamePathMerge:
		return "same-path-merge"
	case CustomMerge:
		return "custom-merge"
	default:
		return "unknown"
	}
}

// MergeResult is the outcome of combining two actions: which one (if
// either) survives in the pending gesture.
type MergeResult int

const (
	KeepSelf MergeResult = iota
	KeepOther
	Cancel
)

// Metadata is the static, per-type descriptor every Action exposes.
type Metadata struct {
	// TypePath is the unique registry key for this action type, a type
	// path concatenated with the action's leaf (e.g. "primitive/bool_toggle").
	TypePath string
	// DisplayName is shown in undo/redo menu entries.
	DisplayName string
	// Menu is an optional menu grouping label; empty if the action is
	// never user-menu-visible.
	Menu string
	// Saved reports whether a gesture containing this action is eligible
	// to become a history record (spec §4.F).
	Saved bool
	// Merge selects the collapsing behavior for consecutive actions of
	// this type.
	Merge MergeRule
}

// Action is an immutable message describing one intended state change.
type Action interface {
	Metadata() Metadata
	// TargetPath is the component path this action addresses, or
	// gridpath.Root() for actions with no single target (e.g. Project
	// actions).
	TargetPath() gridpath.Path
	// Payload encodes the action's dynamic fields (excluding TypePath,
	// which the registry supplies on decode).
	Payload() (json.RawMessage, error)
}

// CustomMerger is implemented by action types whose Metadata().Merge is
// CustomMerge. ok reports whether the two actions actually collapsed; when
// false the incoming action is queued as a separate gesture entry.
type CustomMerger interface {
	Action
	MergeWith(other Action) (result MergeResult, ok bool)
}

// TryMerge attempts to collapse incoming into existing per existing's
// merge rule. ok is false when the two do not collapse.
func TryMerge(existing, incoming Action) (result MergeResult, ok bool) {
	if existing.Metadata().TypePath != incoming.Metadata().TypePath {
		return KeepSelf, false
	}
	switch existing.Metadata().Merge {
	case NoMerge:
		return KeepSelf, false
	case AlwaysMerge:
		return KeepOther, true
	case SamePathMerge:
		if existing.TargetPath().Equal(incoming.TargetPath()) {
			return KeepOther, true
		}
		return KeepSelf, false
	case CustomMerge:
		if cm, okType := existing.(CustomMerger); okType {
			return cm.MergeWith(incoming)
		}
		return KeepSelf, false
	default:
		return KeepSelf, false
	}
}

// decodeFunc reconstructs an Action from its encoded payload.
type decodeFunc func(json.RawMessage) (Action, error)

// Registry maps a type path to its decoder. The table is filled by the
// action files' init() functions when the package loads, not lazily on
// first use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]decodeFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]decodeFunc)}
}

// Register associates typePath with a decoder. Concrete action files call
// this from an init() func against the package default registry.
func (r *Registry) Register(typePath string, decode decodeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[typePath] = decode
}

// Decode looks up typePath and reconstructs the action from payload.
func (r *Registry) Decode(typePath string, payload json.RawMessage) (Action, error) {
	r.mu.RLock()
	decode, ok := r.decoders[typePath]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("action: unknown type path %q", typePath)
	}
	return decode(payload)
}

// Default is the process-wide registry every concrete action type
// registers itself against.
var Default = NewRegistry()

// Register is a convenience wrapper around Default.Register.
func Register(typePath string, decode decodeFunc) {
	Default.Register(typePath, decode)
}

// EncodeJSON renders a as the two-element `[path, payload]` array spec §6
// mandates.
func EncodeJSON(a Action) ([]byte, error) {
	payload, err := a.Payload()
	if err != nil {
		return nil, err
	}
	return json.Marshal([2]json.RawMessage{
		mustQuote(a.Metadata().TypePath),
		payload,
	})
}

func mustQuote(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// DecodeJSON parses a `[path, payload]` array and reconstructs the action
// via Default.
func DecodeJSON(data []byte) (Action, error) {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("action: malformed envelope: %w", err)
	}
	var typePath string
	if err := json.Unmarshal(pair[0], &typePath); err != nil {
		return nil, fmt.Errorf("action: malformed type path: %w", err)
	}
	return Default.Decode(typePath, pair[1])
}
