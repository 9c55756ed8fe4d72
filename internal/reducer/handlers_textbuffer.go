package reducer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfkiwl/flowgrid/internal/action"
	"github.com/mfkiwl/flowgrid/internal/gridlog"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/textbuffer"
)

// textBufferPageSize is the number of lines PageCursorsLines moves by;
// there is no config knob for it since it models a fixed viewport height
// rather than a user preference.
const textBufferPageSize = 20

// textBufferEntry is the reducer-owned handle to one open internal/textbuffer.Buffer,
// keyed by the gridpath.Path of its TextBuffer container (spec §4.D/§4.H:
// the buffer itself has no store representation of its own beyond the
// flattened text, so it lives in a reducer-local side table rather than
// in the persistent store).
type textBufferEntry struct {
	buf      *textbuffer.Buffer
	filePath string
	lastText string
}

// bufferFor returns the live Buffer for path, creating one from the
// store's current text if this is the first touch, or rebuilding it if
// the store's text has diverged since the last sync (e.g. after Undo,
// Redo, or a project load replaced the store wholesale).
func (r *Reducer) bufferFor(path gridpath.Path) *textBufferEntry {
	if r.textBuffers == nil {
		r.textBuffers = make(map[string]*textBufferEntry)
	}
	key := path.String()
	stored, _ := r.store.GetString(path)
	entry, ok := r.textBuffers[key]
	if !ok {
		lang := textbuffer.LanguageForExtension(filepath.Ext(key))
		entry = &textBufferEntry{buf: textbuffer.NewFromText(stored, r.cfg.TabWidth, lang), lastText: stored}
		r.textBuffers[key] = entry
		return entry
	}
	if entry.lastText != stored {
		entry.buf = textbuffer.NewFromText(stored, r.cfg.TabWidth, entry.buf.Language())
		entry.lastText = stored
	}
	return entry
}

// setBuffer installs buf as path's live buffer wholesale (TextBuffer::Open)
// and syncs the store.
func (r *Reducer) setBuffer(path gridpath.Path, buf *textbuffer.Buffer, filePath string) {
	if r.textBuffers == nil {
		r.textBuffers = make(map[string]*textBufferEntry)
	}
	entry := &textBufferEntry{buf: buf, filePath: filePath}
	r.textBuffers[path.String()] = entry
	r.syncBuffer(path, entry)
}

// syncBuffer writes entry's current text into the store so
// component.ToJSON flattens it, per the TextBuffer container's
// self-serializing storage convention.
func (r *Reducer) syncBuffer(path gridpath.Path, entry *textBufferEntry) {
	text := entry.buf.Text()
	r.store.SetString(path, text)
	entry.lastText = text
}

// mutateBuffer applies fn to path's buffer, commits its edit batch (so it
// lands in the buffer's own undo/redo history and reaches the incremental
// parser), and syncs the result back into the store.
func (r *Reducer) mutateBuffer(path gridpath.Path, fn func(*textbuffer.Buffer)) {
	entry := r.bufferFor(path)
	fn(entry.buf)
	entry.buf.Commit()
	r.syncBuffer(path, entry)
}

// viewBuffer applies fn to path's buffer without committing or touching
// the store: cursor motion, selection, and overwrite-mode toggling are
// not Saved state (spec §6).
func (r *Reducer) viewBuffer(path gridpath.Path, fn func(*textbuffer.Buffer)) {
	fn(r.bufferFor(path).buf)
}

func init() {
	registerHandler(typeTBSet, handleTBSet)
	registerHandler(typeTBOpen, handleTBOpen)
	registerHandler(typeTBSave, handleTBSave)
	registerHandler(typeTBShowOpenDialog, handleTBShowOpenDialog)
	registerHandler(typeTBShowSaveDialog, handleTBShowSaveDialog)
	registerHandler(typeTBUndo, handleTBUndo)
	registerHandler(typeTBRedo, handleTBRedo)
	registerHandler(typeTBCopy, handleTBCopy)
	registerHandler(typeTBCut, handleTBCut)
	registerHandler(typeTBPaste, handleTBPaste)
	registerHandler(typeTBDelete, handleTBDelete)
	registerHandler(typeTBBackspace, handleTBBackspace)
	registerHandler(typeTBDeleteCurrentLines, handleTBDeleteCurrentLines)
	registerHandler(typeTBChangeIndent, handleTBChangeIndent)
	registerHandler(typeTBMoveCurrentLines, handleTBMoveCurrentLines)
	registerHandler(typeTBToggleLineComment, handleTBToggleLineComment)
	registerHandler(typeTBEnterChar, handleTBEnterChar)
	registerHandler(typeTBToggleOverwrite, handleTBToggleOverwrite)
	registerHandler(typeTBMoveCursorsLines, handleTBMoveCursorsLines)
	registerHandler(typeTBPageCursorsLines, handleTBPageCursorsLines)
	registerHandler(typeTBMoveCursorsChar, handleTBMoveCursorsChar)
	registerHandler(typeTBMoveCursorsTop, handleTBMoveCursorsTop)
	registerHandler(typeTBMoveCursorsBottom, handleTBMoveCursorsBottom)
	registerHandler(typeTBMoveCursorsStart, handleTBMoveCursorsStartLine)
	registerHandler(typeTBMoveCursorsEnd, handleTBMoveCursorsEndLine)
	registerHandler(typeTBSelectAll, handleTBSelectAll)
	registerHandler(typeTBSelectNextOcc, handleTBSelectNextOccurrence)

	registerCanApply(typeTBUndo, func(r *Reducer, a action.Action) bool {
		return r.bufferFor(a.(action.TBUndo).Path).buf.CanUndo()
	})
	registerCanApply(typeTBRedo, func(r *Reducer, a action.Action) bool {
		return r.bufferFor(a.(action.TBRedo).Path).buf.CanRedo()
	})
	registerCanApply(typeTBCopy, func(r *Reducer, a action.Action) bool {
		return anyCursorRanged(r.bufferFor(a.(action.TBCopy).Path).buf)
	})
	registerCanApply(typeTBCut, func(r *Reducer, a action.Action) bool {
		return anyCursorRanged(r.bufferFor(a.(action.TBCut).Path).buf)
	})
}

func anyCursorRanged(b *textbuffer.Buffer) bool {
	for _, c := range b.Cursors() {
		if c.Ranged() {
			return true
		}
	}
	return false
}

const typeTBSet = "textbuffer/set"
const typeTBOpen = "textbuffer/open"
const typeTBSave = "textbuffer/save"
const typeTBShowOpenDialog = "textbuffer/show_open_dialog"
const typeTBShowSaveDialog = "textbuffer/show_save_dialog"
const typeTBUndo = "textbuffer/undo"
const typeTBRedo = "textbuffer/redo"
const typeTBCopy = "textbuffer/copy"
const typeTBCut = "textbuffer/cut"
const typeTBPaste = "textbuffer/paste"
const typeTBDelete = "textbuffer/delete"
const typeTBBackspace = "textbuffer/backspace"
const typeTBDeleteCurrentLines = "textbuffer/delete_current_lines"
const typeTBChangeIndent = "textbuffer/change_current_lines_indentation"
const typeTBMoveCurrentLines = "textbuffer/move_current_lines"
const typeTBToggleLineComment = "textbuffer/toggle_line_comment"
const typeTBEnterChar = "textbuffer/enter_char"
const typeTBToggleOverwrite = "textbuffer/toggle_overwrite"
const typeTBMoveCursorsLines = "textbuffer/move_cursors_lines"
const typeTBPageCursorsLines = "textbuffer/page_cursors_lines"
const typeTBMoveCursorsChar = "textbuffer/move_cursors_char"
const typeTBMoveCursorsTop = "textbuffer/move_cursors_top"
const typeTBMoveCursorsBottom = "textbuffer/move_cursors_bottom"
const typeTBMoveCursorsStart = "textbuffer/move_cursors_start_line"
const typeTBMoveCursorsEnd = "textbuffer/move_cursors_end_line"
const typeTBSelectAll = "textbuffer/select_all"
const typeTBSelectNextOcc = "textbuffer/select_next_occurrence"

func handleTBSet(r *Reducer, a action.Action) error {
	act := a.(action.TBSet)
	entry := r.bufferFor(act.Path)
	entry.buf.SetText(act.Text)
	r.syncBuffer(act.Path, entry)
	return nil
}

func handleTBOpen(r *Reducer, a action.Action) error {
	act := a.(action.TBOpen)
	data, err := os.ReadFile(act.FilePath)
	if err != nil {
		return fmt.Errorf("textbuffer: open %s: %w", act.FilePath, err)
	}
	lang := textbuffer.LanguageForExtension(filepath.Ext(act.FilePath))
	buf := textbuffer.NewFromText(string(data), r.cfg.TabWidth, lang)
	r.setBuffer(act.Path, buf, act.FilePath)
	return nil
}

func handleTBSave(r *Reducer, a action.Action) error {
	act := a.(action.TBSave)
	entry := r.bufferFor(act.Path)
	dest := act.FilePath
	if dest == "" {
		dest = entry.filePath
	}
	if dest == "" {
		return ErrNoFilePath
	}
	if err := os.WriteFile(dest, []byte(entry.buf.Text()), 0o644); err != nil {
		return fmt.Errorf("textbuffer: save %s: %w", dest, err)
	}
	entry.filePath = dest
	return nil
}

// handleTBShowOpenDialog/ShowSaveDialog log and no-op: this headless
// reducer has no native file picker to show; a host application wires its
// own dialog and dispatches TextBuffer::Open/Save with the chosen path.
func handleTBShowOpenDialog(r *Reducer, a action.Action) error {
	gridlog.Named("reducer").Warn("show_open_dialog has no host UI wired")
	return nil
}

func handleTBShowSaveDialog(r *Reducer, a action.Action) error {
	gridlog.Named("reducer").Warn("show_save_dialog has no host UI wired")
	return nil
}

func handleTBUndo(r *Reducer, a action.Action) error {
	act := a.(action.TBUndo)
	entry := r.bufferFor(act.Path)
	if err := entry.buf.Undo(); err != nil {
		return nil // ActionRejected equivalent: silently a no-op
	}
	r.syncBuffer(act.Path, entry)
	return nil
}

func handleTBRedo(r *Reducer, a action.Action) error {
	act := a.(action.TBRedo)
	entry := r.bufferFor(act.Path)
	if err := entry.buf.Redo(); err != nil {
		return nil
	}
	r.syncBuffer(act.Path, entry)
	return nil
}

func handleTBCopy(r *Reducer, a action.Action) error {
	act := a.(action.TBCopy)
	r.clipboard = r.bufferFor(act.Path).buf.Copy()
	return nil
}

func handleTBCut(r *Reducer, a action.Action) error {
	act := a.(action.TBCut)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { r.clipboard = b.Cut() })
	return nil
}

func handleTBPaste(r *Reducer, a action.Action) error {
	act := a.(action.TBPaste)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.Paste(act.Text) })
	return nil
}

func handleTBDelete(r *Reducer, a action.Action) error {
	act := a.(action.TBDelete)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.Delete(act.Word) })
	return nil
}

func handleTBBackspace(r *Reducer, a action.Action) error {
	act := a.(action.TBBackspace)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.Backspace(act.Word) })
	return nil
}

func handleTBDeleteCurrentLines(r *Reducer, a action.Action) error {
	act := a.(action.TBDeleteCurrentLines)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.DeleteCurrentLines() })
	return nil
}

func handleTBChangeIndent(r *Reducer, a action.Action) error {
	act := a.(action.TBChangeCurrentLinesIndentation)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.ChangeCurrentLinesIndentation(act.Increase) })
	return nil
}

func handleTBMoveCurrentLines(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCurrentLines)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCurrentLines(act.Up) })
	return nil
}

func handleTBToggleLineComment(r *Reducer, a action.Action) error {
	act := a.(action.TBToggleLineComment)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.ToggleLineComment() })
	return nil
}

func handleTBEnterChar(r *Reducer, a action.Action) error {
	act := a.(action.TBEnterChar)
	r.mutateBuffer(act.Path, func(b *textbuffer.Buffer) { b.EnterChar(act.CodePoint) })
	return nil
}

func handleTBToggleOverwrite(r *Reducer, a action.Action) error {
	act := a.(action.TBToggleOverwrite)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.ToggleOverwrite() })
	return nil
}

func handleTBMoveCursorsLines(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCursorsLines)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCursorsLines(act.Amount, act.Select) })
	return nil
}

func handleTBPageCursorsLines(r *Reducer, a action.Action) error {
	act := a.(action.TBPageCursorsLines)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.PageCursorsLines(act.Up, act.Select, textBufferPageSize) })
	return nil
}

func handleTBMoveCursorsChar(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCursorsChar)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCursorsChar(act.Right, act.Select, act.Word) })
	return nil
}

func handleTBMoveCursorsTop(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCursorsTop)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCursorsTop(act.Select) })
	return nil
}

func handleTBMoveCursorsBottom(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCursorsBottom)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCursorsBottom(act.Select) })
	return nil
}

func handleTBMoveCursorsStartLine(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCursorsStartLine)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCursorsStartLine(act.Select) })
	return nil
}

func handleTBMoveCursorsEndLine(r *Reducer, a action.Action) error {
	act := a.(action.TBMoveCursorsEndLine)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.MoveCursorsEndLine(act.Select) })
	return nil
}

func handleTBSelectAll(r *Reducer, a action.Action) error {
	act := a.(action.TBSelectAll)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.SelectAll() })
	return nil
}

func handleTBSelectNextOccurrence(r *Reducer, a action.Action) error {
	act := a.(action.TBSelectNextOccurrence)
	r.viewBuffer(act.Path, func(b *textbuffer.Buffer) { b.SelectNextOccurrence() })
	return nil
}
