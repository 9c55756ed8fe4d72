// Package reducer implements spec §4.F/§4.I: the FIFO action queue,
// gesture grouping and merge-collapse, the linear undo/redo history, and
// the per-path commit-time metric.
//
// Grounded on the teacher's pkg/state/store.go history/version machinery
// (createVersionWithState, GetHistory) and pkg/state/rollback.go's
// RollbackManager shape, narrowed to this spec's linear index-based
// undo/redo (see DESIGN.md for the teacher's named-marker/timestamp
// rollback variants that have no counterpart here).
package reducer

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/component"
	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/gridlog"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/gridstore"
	"github.com/mfkiwl/flowgrid/internal/patch"
)

// QueuedAction is one action paired with the time it was enqueued, the
// element type of a Gesture (spec §3).
type QueuedAction struct {
	Action   action.Action
	QueuedAt time.Time
}

// Gesture is a contiguous group of actions committed atomically as one
// undoable unit (spec §3).
type Gesture struct {
	Actions    []QueuedAction
	CommitTime time.Time
}

// Record is one entry of the linear undo/redo history (spec §3): a
// persistent store snapshot, the gesture that produced it, and the
// per-path commit-time metric as of this record.
type Record struct {
	ID       uuid.UUID
	Snapshot gridstore.Persistent
	Gesture  Gesture
	Metrics  map[string][]time.Time
}

// State is the gesture lifecycle state of spec §4.I.
type State int

const (
	Idle State = iota
	InGesture
	Committing
)

// Reducer owns the root store, the component tree, the FIFO action queue,
// and the action history. It is driven from a single thread (spec §5):
// every Enqueue/RunQueued/Undo/Redo call must come from the thread that
// owns the store.
type Reducer struct {
	cfg   config.Config
	store *gridstore.Store
	tree  *component.Tree

	queue []action.Action

	pending             []QueuedAction
	gesturing           bool
	lastQueuedAt        time.Time
	forceCloseRequested bool

	history []Record
	index   int // -1 means "before any record" (the initial empty snapshot)

	initialSnapshot gridstore.Persistent
	metrics         map[string][]time.Time

	handlers       map[string]Handler
	canApply       map[string]CanApplyFunc
	projectHandler ProjectHandler

	textBuffers map[string]*textBufferEntry
	clipboard   string
}

// Handler applies a's effect to the reducer's store/tree. Handlers run
// against an already-open transient store view; returning an error causes
// the reducer to discard the transient edits made since the last commit
// and drop the action (spec §7: "the reducer never partially applies an
// action").
type Handler func(r *Reducer, a action.Action) error

// CanApplyFunc decides whether a is currently eligible to apply; when
// absent for a type path, actions of that type are always eligible.
type CanApplyFunc func(r *Reducer, a action.Action) bool

// New returns a Reducer over an empty store and the given component tree
// (pass component.New() for a fresh tree).
func New(tree *component.Tree, cfg config.Config) *Reducer {
	r := &Reducer{
		cfg:      cfg,
		store:    gridstore.New(),
		tree:     tree,
		index:    -1,
		metrics:  make(map[string][]time.Time),
		handlers: make(map[string]Handler, len(globalHandlers)),
		canApply: make(map[string]CanApplyFunc, len(globalCanApply)),
	}
	for k, v := range globalHandlers {
		r.handlers[k] = v
	}
	for k, v := range globalCanApply {
		r.canApply[k] = v
	}
	r.initialSnapshot = r.store.Snapshot()
	return r
}

// Store returns the reducer's store, for read-only inspection (e.g.
// Component field refresh, project save).
func (r *Reducer) Store() *gridstore.Store { return r.store }

// Tree returns the reducer's component tree.
func (r *Reducer) Tree() *component.Tree { return r.tree }

// RegisterHandler associates typePath with h. Concrete handler files call
// this from an init()-time registration against a package-level registry
// merged into every new Reducer (see handlers.go).
func (r *Reducer) RegisterHandler(typePath string, h Handler) {
	r.handlers[typePath] = h
}

// RegisterCanApply associates typePath with a CanApplyFunc.
func (r *Reducer) RegisterCanApply(typePath string, f CanApplyFunc) {
	r.canApply[typePath] = f
}

// SetProjectHandler wires the integration-level Project::* side effects
// (open/save a whole project) into the reducer without internal/reducer
// importing internal/project, avoiding an import cycle (project.Open
// drives a Reducer to replay/restore).
func (r *Reducer) SetProjectHandler(h ProjectHandler) {
	r.projectHandler = h
}

// Enqueue appends a to the FIFO action queue (spec §4.F).
func (r *Reducer) Enqueue(a action.Action) {
	r.queue = append(r.queue, a)
}

// State reports the reducer's current gesture-lifecycle state (spec §4.I).
func (r *Reducer) State() State {
	if r.gesturing {
		return InGesture
	}
	return Idle
}

// BeginGesture marks an explicit "begin gesture" signal (e.g. a slider
// drag's mouse-down), keeping the gesture open regardless of the
// duration window until EndGesture or a force-commit RunQueued call.
func (r *Reducer) BeginGesture() {
	r.gesturing = true
	r.lastQueuedAt = time.Now()
}

// EndGesture signals an explicit gesture close (e.g. mouse-up); the next
// RunQueued call commits.
func (r *Reducer) EndGesture() {
	r.forceCloseRequested = true
}

// RunQueued drains the FIFO queue in order, applying each action via its
// registered handler (spec §4.F). When forceCommit is true, or the
// gesture-duration window has elapsed since the last queued action, the
// pending gesture is committed. Returns the committed patch, or nil if
// nothing was committed this call.
func (r *Reducer) RunQueued(forceCommit bool) (*patch.Patch, error) {
	for len(r.queue) > 0 {
		a := r.queue[0]
		r.queue = r.queue[1:]
		r.applyOne(a)
	}

	windowElapsed := r.gesturing && !r.lastQueuedAt.IsZero() &&
		time.Since(r.lastQueuedAt) >= r.cfg.GestureDuration
	if r.gesturing && (forceCommit || r.forceCloseRequested || windowElapsed) {
		r.forceCloseRequested = false
		return r.commit()
	}
	return nil, nil
}

func (r *Reducer) applyOne(a action.Action) {
	typePath := a.Metadata().TypePath
	if cf, ok := r.canApply[typePath]; ok && !cf(r, a) {
		gridlog.Named("reducer").Debug("action rejected", zap.String("type", typePath))
		return
	}
	handler, ok := r.handlers[typePath]
	if !ok {
		gridlog.Named("reducer").Warn("no handler for action", zap.String("type", typePath))
		return
	}
	r.store.Transient()
	if err := r.safeApply(handler, a); err != nil {
		gridlog.Named("reducer").Error("action handler failed, discarding gesture edits",
			zap.String("type", typePath), zap.Error(err))
		r.store.Discard()
		return
	}
	now := time.Now()
	r.pending = append(r.pending, QueuedAction{Action: a, QueuedAt: now})
	r.gesturing = true
	r.lastQueuedAt = now
}

// safeApply runs h, converting a panic into an error so the caller can
// discard transient edits uniformly (spec §7's single reducer-level fault
// handler).
func (r *Reducer) safeApply(h Handler, a action.Action) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic applying action: %v", p)
		}
	}()
	return h(r, a)
}

func (r *Reducer) commit() (*patch.Patch, error) {
	if len(r.pending) == 0 {
		r.gesturing = false
		return nil, nil
	}
	merged := mergeGesture(r.pending)
	if len(merged) == 0 {
		// every action in the gesture cancelled against another, so the
		// gesture's transient edits are dropped rather than committed
		r.store.Discard()
		r.pending = nil
		r.gesturing = false
		return nil, nil
	}
	p := r.store.CheckedCommit()
	hasSaved := false
	for _, qa := range merged {
		if qa.Action.Metadata().Saved {
			hasSaved = true
			break
		}
	}

	if !p.Empty() && hasSaved {
		commitTime := time.Now()
		newMetrics := bumpMetrics(r.metrics, p, commitTime)
		r.metrics = newMetrics
		rec := Record{
			ID:       uuid.New(),
			Snapshot: r.store.Snapshot(),
			Gesture:  Gesture{Actions: merged, CommitTime: commitTime},
			Metrics:  newMetrics,
		}
		r.history = r.history[:r.index+1]
		r.history = append(r.history, rec)
		r.index++
		if r.cfg.MaxHistory > 0 && len(r.history) > r.cfg.MaxHistory {
			r.history = r.history[1:]
			r.index--
		}
	}

	r.notify(p)
	r.pending = nil
	r.gesturing = false
	return p, nil
}

// notify fans out p's ops to affected Component listeners, recovering and
// aggregating any listener panic via multierr rather than letting one bad
// listener break the commit (spec §9 design note on multierr use).
func (r *Reducer) notify(p *patch.Patch) {
	if p.Empty() {
		return
	}
	affected := r.tree.AffectedIDs(p)
	// refresh field caches first, so listeners reading any affected field
	// observe the committed state (two-phase commit, spec §9)
	r.tree.RefreshFields(r.store, affected)
	var errs error
	for _, id := range affected {
		for _, l := range r.tree.ListenersOf(id) {
			errs = multierr.Append(errs, safeNotify(l, id))
		}
	}
	if errs != nil {
		gridlog.Named("reducer").Error("listener panics during commit", zap.Error(errs))
	}
}

func safeNotify(l component.Listener, id component.ID) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("listener panic for id %d: %v", id, p)
		}
	}()
	l.OnFieldChanged(id)
	return nil
}

func bumpMetrics(prev map[string][]time.Time, p *patch.Patch, t time.Time) map[string][]time.Time {
	next := make(map[string][]time.Time, len(prev))
	for k, v := range prev {
		next[k] = v
	}
	for _, abs := range p.AbsolutePaths() {
		key := abs.String()
		old := next[key]
		fresh := make([]time.Time, len(old), len(old)+1)
		copy(fresh, old)
		next[key] = append(fresh, t)
	}
	return next
}

// mergeGesture collapses adjacent actions in pending per each type's
// MergeRule (spec §4.F: "collapses adjacent same-path-mergeable actions
// in the pending gesture via Action::Merge").
func mergeGesture(pending []QueuedAction) []QueuedAction {
	out := make([]QueuedAction, 0, len(pending))
	for _, qa := range pending {
		if len(out) == 0 {
			out = append(out, qa)
			continue
		}
		last := out[len(out)-1]
		result, ok := action.TryMerge(last.Action, qa.Action)
		if !ok {
			out = append(out, qa)
			continue
		}
		switch result {
		case action.KeepSelf:
			// qa dropped; last stands.
		case action.KeepOther:
			out[len(out)-1] = qa
		case action.Cancel:
			out = out[:len(out)-1]
		}
	}
	return out
}

// --- Undo/redo/history (spec §4.F) -------------------------------------

// CanUndo reports whether Undo has a target record.
func (r *Reducer) CanUndo() bool { return r.index >= 0 }

// CanRedo reports whether Redo has a target record.
func (r *Reducer) CanRedo() bool { return r.index < len(r.history)-1 }

// Undo restores the snapshot one step back in history and fires listeners
// for every path that changed (spec §8 invariant 5).
func (r *Reducer) Undo() error {
	if !r.CanUndo() {
		return nil // ActionRejected: silently a no-op, per spec §7
	}
	return r.SetHistoryIndex(r.index - 1)
}

// Redo restores the snapshot one step forward in history.
func (r *Reducer) Redo() error {
	if !r.CanRedo() {
		return nil
	}
	return r.SetHistoryIndex(r.index + 1)
}

// SetHistoryIndex jumps to an arbitrary valid history position (spec
// §4.F): -1 is the initial empty-project snapshot; 0..len(history)-1
// indexes a committed record. It rebuilds the per-path commit-time metric
// from the target record.
func (r *Reducer) SetHistoryIndex(target int) error {
	if target < -1 || target > len(r.history)-1 {
		return fmt.Errorf("%w: %d (have %d records)", ErrInvalidHistoryIndex, target, len(r.history))
	}
	before := r.store.Snapshot()
	var after gridstore.Persistent
	if target == -1 {
		after = r.initialSnapshot
		r.metrics = make(map[string][]time.Time)
	} else {
		after = r.history[target].Snapshot
		r.metrics = r.history[target].Metrics
	}
	r.store.Restore(after)
	r.index = target
	diff := gridstore.Diff(before, after, gridpath.Root())
	r.notify(diff)
	return nil
}

// HistoryIndex returns the current history position (-1 if at the
// initial snapshot).
func (r *Reducer) HistoryIndex() int { return r.index }

// HistoryLen returns the number of committed records.
func (r *Reducer) HistoryLen() int { return len(r.history) }

// HistoryRecord returns a copy of the record at i.
func (r *Reducer) HistoryRecord(i int) (Record, bool) {
	if i < 0 || i >= len(r.history) {
		return Record{}, false
	}
	return r.history[i], true
}

// Discard abandons any open transient edits and the pending gesture,
// resetting to the current persistent snapshot without committing — the
// "discard changes" operation of spec §5.
func (r *Reducer) Discard() {
	r.store.Discard()
	r.pending = nil
	r.gesturing = false
	r.queue = nil
}

// Reset clears history and sets the store to an empty snapshot — used by
// Project::OpenEmpty and by state-format project load before applying the
// loaded snapshot (spec §4.G).
func (r *Reducer) Reset() {
	r.store = gridstore.New()
	r.history = nil
	r.index = -1
	r.initialSnapshot = r.store.Snapshot()
	r.metrics = make(map[string][]time.Time)
	r.pending = nil
	r.queue = nil
	r.gesturing = false
	r.textBuffers = nil
	r.tree.RefreshAllFields(r.store)
}

// RestoreSnapshot clears history and sets the store to snap directly
// (state-format project load).
func (r *Reducer) RestoreSnapshot(snap gridstore.Persistent) {
	r.Reset()
	r.store.Restore(snap)
	r.initialSnapshot = snap
	r.tree.RefreshAllFields(r.store)
}

// Clipboard returns the text most recently captured by a TextBuffer
// Copy/Cut action. There is one clipboard per reducer, not per buffer,
// matching a single-user desktop editor's shared system clipboard.
func (r *Reducer) Clipboard() string { return r.clipboard }

// --- path activity metric (SPEC_FULL §12) ------------------------------

// PathActivity returns the commit-time vector for p as of the current
// history position.
func (r *Reducer) PathActivity(p gridpath.Path) []time.Time {
	return r.metrics[p.String()]
}

// TopActive returns the n most-frequently-updated paths as of the current
// history position, most active first.
func (r *Reducer) TopActive(n int) []string {
	type pc struct {
		path  string
		count int
	}
	pcs := make([]pc, 0, len(r.metrics))
	for p, times := range r.metrics {
		pcs = append(pcs, pc{path: p, count: len(times)})
	}
	// simple selection sort over a typically small set
	for i := 0; i < len(pcs) && i < n; i++ {
		max := i
		for j := i + 1; j < len(pcs); j++ {
			if pcs[j].count > pcs[max].count {
				max = j
			}
		}
		pcs[i], pcs[max] = pcs[max], pcs[i]
	}
	if n > len(pcs) {
		n = len(pcs)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = pcs[i].path
	}
	return out
}
