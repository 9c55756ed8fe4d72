package textbuffer

// CanUndo reports whether Undo would succeed.
func (b *Buffer) CanUndo() bool { return b.index >= 0 }

// CanRedo reports whether Redo would succeed.
func (b *Buffer) CanRedo() bool { return b.index+1 < len(b.history) }

// Undo reverts the most recently committed edit batch, restoring the
// line content and cursor set that preceded it (spec §4.H: the history
// entry's beforeCursors, not its after-cursors, is what Undo restores).
func (b *Buffer) Undo() error {
	if !b.CanUndo() {
		return ErrNoHistory
	}
	snap := b.history[b.index]
	if b.index == 0 {
		b.lines = b.initialLines
	} else {
		b.lines = b.history[b.index-1].lines
	}
	b.cursors = snap.beforeCursors
	b.index--
	b.pending = nil
	b.beforeCursors = nil
	if b.parser != nil {
		_ = b.parser.Parse([]byte(b.Text()), nil)
	}
	return nil
}

// Redo reapplies the next edit batch in the history, replaying its
// recorded TextInputEdits into the incremental parser rather than
// reparsing from scratch (spec §12: "Redo replays forward edits only").
func (b *Buffer) Redo() error {
	if !b.CanRedo() {
		return ErrNoHistory
	}
	b.index++
	snap := b.history[b.index]
	b.lines = snap.lines
	b.cursors = snap.cursors
	b.pending = nil
	b.beforeCursors = nil
	if b.parser != nil {
		_ = b.parser.Parse([]byte(b.Text()), snap.edits)
	}
	return nil
}
