package action

import (
	"encoding/json"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

// TextBuffer action type paths, per spec §6. Most are NoMerge: a single
// keystroke or command is its own undo-relevant step; the reducer's
// gesture-duration window (not action merging) is what groups a typing
// burst into one history record.
const (
	typeTBSet                = "textbuffer/set"
	typeTBOpen               = "textbuffer/open"
	typeTBSave               = "textbuffer/save"
	typeTBShowOpenDialog     = "textbuffer/show_open_dialog"
	typeTBShowSaveDialog     = "textbuffer/show_save_dialog"
	typeTBUndo               = "textbuffer/undo"
	typeTBRedo               = "textbuffer/redo"
	typeTBCopy               = "textbuffer/copy"
	typeTBCut                = "textbuffer/cut"
	typeTBPaste              = "textbuffer/paste"
	typeTBDelete             = "textbuffer/delete"
	typeTBBackspace          = "textbuffer/backspace"
	typeTBDeleteCurrentLines = "textbuffer/delete_current_lines"
	typeTBChangeIndent       = "textbuffer/change_current_lines_indentation"
	typeTBMoveCurrentLines   = "textbuffer/move_current_lines"
	typeTBToggleLineComment  = "textbuffer/toggle_line_comment"
	typeTBEnterChar          = "textbuffer/enter_char"
	typeTBToggleOverwrite    = "textbuffer/toggle_overwrite"
	typeTBMoveCursorsLines   = "textbuffer/move_cursors_lines"
	typeTBPageCursorsLines   = "textbuffer/page_cursors_lines"
	typeTBMoveCursorsChar    = "textbuffer/move_cursors_char"
	typeTBMoveCursorsTop     = "textbuffer/move_cursors_top"
	typeTBMoveCursorsBottom  = "textbuffer/move_cursors_bottom"
	typeTBMoveCursorsStart   = "textbuffer/move_cursors_start_line"
	typeTBMoveCursorsEnd     = "textbuffer/move_cursors_end_line"
	typeTBSelectAll          = "textbuffer/select_all"
	typeTBSelectNextOcc      = "textbuffer/select_next_occurrence"
)

func init() {
	Register(typeTBSet, decodeTBSet)
	Register(typeTBOpen, decodeTBPathOnly(func(p gridpath.Path, fp string) Action { return TBOpen{Path: p, FilePath: fp} }))
	Register(typeTBSave, decodeTBPathOnly(func(p gridpath.Path, fp string) Action { return TBSave{Path: p, FilePath: fp} }))
	Register(typeTBShowOpenDialog, decodeTBSimple(func(p gridpath.Path) Action { return TBShowOpenDialog{Path: p} }))
	Register(typeTBShowSaveDialog, decodeTBSimple(func(p gridpath.Path) Action { return TBShowSaveDialog{Path: p} }))
	Register(typeTBUndo, decodeTBSimple(func(p gridpath.Path) Action { return TBUndo{Path: p} }))
	Register(typeTBRedo, decodeTBSimple(func(p gridpath.Path) Action { return TBRedo{Path: p} }))
	Register(typeTBCopy, decodeTBSimple(func(p gridpath.Path) Action { return TBCopy{Path: p} }))
	Register(typeTBCut, decodeTBSimple(func(p gridpath.Path) Action { return TBCut{Path: p} }))
	Register(typeTBPaste, decodeTBPasteText)
	Register(typeTBDelete, decodeTBWord(func(p gridpath.Path, word bool) Action { return TBDelete{Path: p, Word: word} }))
	Register(typeTBBackspace, decodeTBWord(func(p gridpath.Path, word bool) Action { return TBBackspace{Path: p, Word: word} }))
	Register(typeTBDeleteCurrentLines, decodeTBSimple(func(p gridpath.Path) Action { return TBDeleteCurrentLines{Path: p} }))
	Register(typeTBChangeIndent, decodeTBIncrease)
	Register(typeTBMoveCurrentLines, decodeTBUp)
	Register(typeTBToggleLineComment, decodeTBSimple(func(p gridpath.Path) Action { return TBToggleLineComment{Path: p} }))
	Register(typeTBEnterChar, decodeTBEnterChar)
	Register(typeTBToggleOverwrite, decodeTBSimple(func(p gridpath.Path) Action { return TBToggleOverwrite{Path: p} }))
	Register(typeTBMoveCursorsLines, decodeTBMoveLines)
	Register(typeTBPageCursorsLines, decodeTBPageLines)
	Register(typeTBMoveCursorsChar, decodeTBMoveChar)
	Register(typeTBMoveCursorsTop, decodeTBSelect(func(p gridpath.Path, sel bool) Action { return TBMoveCursorsTop{Path: p, Select: sel} }))
	Register(typeTBMoveCursorsBottom, decodeTBSelect(func(p gridpath.Path, sel bool) Action { return TBMoveCursorsBottom{Path: p, Select: sel} }))
	Register(typeTBMoveCursorsStart, decodeTBSelect(func(p gridpath.Path, sel bool) Action { return TBMoveCursorsStartLine{Path: p, Select: sel} }))
	Register(typeTBMoveCursorsEnd, decodeTBSelect(func(p gridpath.Path, sel bool) Action { return TBMoveCursorsEndLine{Path: p, Select: sel} }))
	Register(typeTBSelectAll, decodeTBSimple(func(p gridpath.Path) Action { return TBSelectAll{Path: p} }))
	Register(typeTBSelectNextOcc, decodeTBSimple(func(p gridpath.Path) Action { return TBSelectNextOccurrence{Path: p} }))
}

func decodeTBSimple(ctor func(gridpath.Path) Action) decodeFunc {
	return func(raw json.RawMessage) (Action, error) {
		var w pathPayload
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return ctor(gridpath.Parse(w.Path)), nil
	}
}

func decodeTBPathOnly(ctor func(gridpath.Path, string) Action) decodeFunc {
	return func(raw json.RawMessage) (Action, error) {
		var w struct {
			Path     string `json:"path"`
			FilePath string `json:"file_path"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return ctor(gridpath.Parse(w.Path), w.FilePath), nil
	}
}

func decodeTBWord(ctor func(gridpath.Path, bool) Action) decodeFunc {
	return func(raw json.RawMessage) (Action, error) {
		var w struct {
			Path string `json:"path"`
			Word bool   `json:"word"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return ctor(gridpath.Parse(w.Path), w.Word), nil
	}
}

func decodeTBSelect(ctor func(gridpath.Path, bool) Action) decodeFunc {
	return func(raw json.RawMessage) (Action, error) {
		var w struct {
			Path   string `json:"path"`
			Select bool   `json:"select"`
		}
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, err
		}
		return ctor(gridpath.Parse(w.Path), w.Select), nil
	}
}

func tbMutatingMetadata(typePath, name string) Metadata {
	return Metadata{TypePath: typePath, DisplayName: name, Saved: true, Merge: NoMerge}
}

func tbViewMetadata(typePath, name string) Metadata {
	return Metadata{TypePath: typePath, DisplayName: name, Saved: false, Merge: NoMerge}
}

// TBSet replaces the entire buffer's text, e.g. on load.
type TBSet struct {
	Path gridpath.Path
	Text string
}

func (a TBSet) Metadata() Metadata        { return tbMutatingMetadata(typeTBSet, "Set Text") }
func (a TBSet) TargetPath() gridpath.Path { return a.Path }
func (a TBSet) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Text string `json:"text"`
	}{a.Path.String(), a.Text})
}
func decodeTBSet(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBSet{Path: gridpath.Parse(w.Path), Text: w.Text}, nil
}

type TBOpen struct {
	Path     gridpath.Path
	FilePath string
}

func (a TBOpen) Metadata() Metadata        { return tbMutatingMetadata(typeTBOpen, "Open File") }
func (a TBOpen) TargetPath() gridpath.Path { return a.Path }
func (a TBOpen) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path     string `json:"path"`
		FilePath string `json:"file_path"`
	}{a.Path.String(), a.FilePath})
}

type TBSave struct {
	Path     gridpath.Path
	FilePath string
}

func (a TBSave) Metadata() Metadata        { return tbViewMetadata(typeTBSave, "Save File") }
func (a TBSave) TargetPath() gridpath.Path { return a.Path }
func (a TBSave) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path     string `json:"path"`
		FilePath string `json:"file_path"`
	}{a.Path.String(), a.FilePath})
}

type TBShowOpenDialog struct{ Path gridpath.Path }

func (a TBShowOpenDialog) Metadata() Metadata        { return tbViewMetadata(typeTBShowOpenDialog, "Open…") }
func (a TBShowOpenDialog) TargetPath() gridpath.Path { return a.Path }
func (a TBShowOpenDialog) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

type TBShowSaveDialog struct{ Path gridpath.Path }

func (a TBShowSaveDialog) Metadata() Metadata        { return tbViewMetadata(typeTBShowSaveDialog, "Save As…") }
func (a TBShowSaveDialog) TargetPath() gridpath.Path { return a.Path }
func (a TBShowSaveDialog) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

type TBUndo struct{ Path gridpath.Path }

func (a TBUndo) Metadata() Metadata                   { return tbViewMetadata(typeTBUndo, "Undo") }
func (a TBUndo) TargetPath() gridpath.Path            { return a.Path }
func (a TBUndo) Payload() (json.RawMessage, error)    { return json.Marshal(pathPayload{Path: a.Path.String()}) }

type TBRedo struct{ Path gridpath.Path }

func (a TBRedo) Metadata() Metadata                { return tbViewMetadata(typeTBRedo, "Redo") }
func (a TBRedo) TargetPath() gridpath.Path         { return a.Path }
func (a TBRedo) Payload() (json.RawMessage, error) { return json.Marshal(pathPayload{Path: a.Path.String()}) }

type TBCopy struct{ Path gridpath.Path }

func (a TBCopy) Metadata() Metadata                { return tbViewMetadata(typeTBCopy, "Copy") }
func (a TBCopy) TargetPath() gridpath.Path         { return a.Path }
func (a TBCopy) Payload() (json.RawMessage, error) { return json.Marshal(pathPayload{Path: a.Path.String()}) }

type TBCut struct{ Path gridpath.Path }

func (a TBCut) Metadata() Metadata                { return tbMutatingMetadata(typeTBCut, "Cut") }
func (a TBCut) TargetPath() gridpath.Path         { return a.Path }
func (a TBCut) Payload() (json.RawMessage, error) { return json.Marshal(pathPayload{Path: a.Path.String()}) }

// TBPaste inserts clipboard text at every cursor. The text itself comes
// from the platform clipboard, captured into the action at enqueue time so
// replay from the action-history format is deterministic.
type TBPaste struct {
	Path gridpath.Path
	Text string
}

func (a TBPaste) Metadata() Metadata        { return tbMutatingMetadata(typeTBPaste, "Paste") }
func (a TBPaste) TargetPath() gridpath.Path { return a.Path }
func (a TBPaste) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Text string `json:"text"`
	}{a.Path.String(), a.Text})
}
func decodeTBPasteText(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBPaste{Path: gridpath.Parse(w.Path), Text: w.Text}, nil
}

type TBDelete struct {
	Path gridpath.Path
	Word bool
}

func (a TBDelete) Metadata() Metadata        { return tbMutatingMetadata(typeTBDelete, "Delete") }
func (a TBDelete) TargetPath() gridpath.Path { return a.Path }
func (a TBDelete) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Word bool   `json:"word"`
	}{a.Path.String(), a.Word})
}

type TBBackspace struct {
	Path gridpath.Path
	Word bool
}

func (a TBBackspace) Metadata() Metadata        { return tbMutatingMetadata(typeTBBackspace, "Backspace") }
func (a TBBackspace) TargetPath() gridpath.Path { return a.Path }
func (a TBBackspace) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Word bool   `json:"word"`
	}{a.Path.String(), a.Word})
}

type TBDeleteCurrentLines struct{ Path gridpath.Path }

func (a TBDeleteCurrentLines) Metadata() Metadata {
	return tbMutatingMetadata(typeTBDeleteCurrentLines, "Delete Line")
}
func (a TBDeleteCurrentLines) TargetPath() gridpath.Path { return a.Path }
func (a TBDeleteCurrentLines) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

type TBChangeCurrentLinesIndentation struct {
	Path     gridpath.Path
	Increase bool
}

func (a TBChangeCurrentLinesIndentation) Metadata() Metadata {
	return tbMutatingMetadata(typeTBChangeIndent, "Change Indentation")
}
func (a TBChangeCurrentLinesIndentation) TargetPath() gridpath.Path { return a.Path }
func (a TBChangeCurrentLinesIndentation) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path     string `json:"path"`
		Increase bool   `json:"increase"`
	}{a.Path.String(), a.Increase})
}
func decodeTBIncrease(raw json.RawMessage) (Action, error) {
	var w struct {
		Path     string `json:"path"`
		Increase bool   `json:"increase"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBChangeCurrentLinesIndentation{Path: gridpath.Parse(w.Path), Increase: w.Increase}, nil
}

type TBMoveCurrentLines struct {
	Path gridpath.Path
	Up   bool
}

func (a TBMoveCurrentLines) Metadata() Metadata {
	return tbMutatingMetadata(typeTBMoveCurrentLines, "Move Line")
}
func (a TBMoveCurrentLines) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCurrentLines) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path string `json:"path"`
		Up   bool   `json:"up"`
	}{a.Path.String(), a.Up})
}
func decodeTBUp(raw json.RawMessage) (Action, error) {
	var w struct {
		Path string `json:"path"`
		Up   bool   `json:"up"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBMoveCurrentLines{Path: gridpath.Parse(w.Path), Up: w.Up}, nil
}

type TBToggleLineComment struct{ Path gridpath.Path }

func (a TBToggleLineComment) Metadata() Metadata {
	return tbMutatingMetadata(typeTBToggleLineComment, "Toggle Line Comment")
}
func (a TBToggleLineComment) TargetPath() gridpath.Path { return a.Path }
func (a TBToggleLineComment) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

// TBEnterChar inserts a single Unicode code point at every cursor.
type TBEnterChar struct {
	Path      gridpath.Path
	CodePoint rune
}

func (a TBEnterChar) Metadata() Metadata        { return tbMutatingMetadata(typeTBEnterChar, "Type") }
func (a TBEnterChar) TargetPath() gridpath.Path { return a.Path }
func (a TBEnterChar) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path      string `json:"path"`
		CodePoint rune   `json:"code_point"`
	}{a.Path.String(), a.CodePoint})
}
func decodeTBEnterChar(raw json.RawMessage) (Action, error) {
	var w struct {
		Path      string `json:"path"`
		CodePoint rune   `json:"code_point"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBEnterChar{Path: gridpath.Parse(w.Path), CodePoint: w.CodePoint}, nil
}

type TBToggleOverwrite struct{ Path gridpath.Path }

func (a TBToggleOverwrite) Metadata() Metadata {
	return tbViewMetadata(typeTBToggleOverwrite, "Toggle Overwrite")
}
func (a TBToggleOverwrite) TargetPath() gridpath.Path { return a.Path }
func (a TBToggleOverwrite) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

// TBMoveCursorsLines moves every cursor amount lines up (negative) or down
// (positive), extending the selection when Select is true.
type TBMoveCursorsLines struct {
	Path   gridpath.Path
	Amount int
	Select bool
}

func (a TBMoveCursorsLines) Metadata() Metadata {
	return tbViewMetadata(typeTBMoveCursorsLines, "Move Cursor")
}
func (a TBMoveCursorsLines) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCursorsLines) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Amount int    `json:"amount"`
		Select bool   `json:"select"`
	}{a.Path.String(), a.Amount, a.Select})
}
func decodeTBMoveLines(raw json.RawMessage) (Action, error) {
	var w struct {
		Path   string `json:"path"`
		Amount int    `json:"amount"`
		Select bool   `json:"select"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBMoveCursorsLines{Path: gridpath.Parse(w.Path), Amount: w.Amount, Select: w.Select}, nil
}

type TBPageCursorsLines struct {
	Path   gridpath.Path
	Up     bool
	Select bool
}

func (a TBPageCursorsLines) Metadata() Metadata {
	return tbViewMetadata(typeTBPageCursorsLines, "Page Cursor")
}
func (a TBPageCursorsLines) TargetPath() gridpath.Path { return a.Path }
func (a TBPageCursorsLines) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Up     bool   `json:"up"`
		Select bool   `json:"select"`
	}{a.Path.String(), a.Up, a.Select})
}
func decodeTBPageLines(raw json.RawMessage) (Action, error) {
	var w struct {
		Path   string `json:"path"`
		Up     bool   `json:"up"`
		Select bool   `json:"select"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBPageCursorsLines{Path: gridpath.Parse(w.Path), Up: w.Up, Select: w.Select}, nil
}

type TBMoveCursorsChar struct {
	Path   gridpath.Path
	Right  bool
	Select bool
	Word   bool
}

func (a TBMoveCursorsChar) Metadata() Metadata {
	return tbViewMetadata(typeTBMoveCursorsChar, "Move Cursor")
}
func (a TBMoveCursorsChar) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCursorsChar) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Right  bool   `json:"right"`
		Select bool   `json:"select"`
		Word   bool   `json:"word"`
	}{a.Path.String(), a.Right, a.Select, a.Word})
}
func decodeTBMoveChar(raw json.RawMessage) (Action, error) {
	var w struct {
		Path   string `json:"path"`
		Right  bool   `json:"right"`
		Select bool   `json:"select"`
		Word   bool   `json:"word"`
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return TBMoveCursorsChar{Path: gridpath.Parse(w.Path), Right: w.Right, Select: w.Select, Word: w.Word}, nil
}

type TBMoveCursorsTop struct {
	Path   gridpath.Path
	Select bool
}

func (a TBMoveCursorsTop) Metadata() Metadata        { return tbViewMetadata(typeTBMoveCursorsTop, "Move To Top") }
func (a TBMoveCursorsTop) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCursorsTop) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Select bool   `json:"select"`
	}{a.Path.String(), a.Select})
}

type TBMoveCursorsBottom struct {
	Path   gridpath.Path
	Select bool
}

func (a TBMoveCursorsBottom) Metadata() Metadata {
	return tbViewMetadata(typeTBMoveCursorsBottom, "Move To Bottom")
}
func (a TBMoveCursorsBottom) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCursorsBottom) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Select bool   `json:"select"`
	}{a.Path.String(), a.Select})
}

type TBMoveCursorsStartLine struct {
	Path   gridpath.Path
	Select bool
}

func (a TBMoveCursorsStartLine) Metadata() Metadata {
	return tbViewMetadata(typeTBMoveCursorsStart, "Move To Line Start")
}
func (a TBMoveCursorsStartLine) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCursorsStartLine) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Select bool   `json:"select"`
	}{a.Path.String(), a.Select})
}

type TBMoveCursorsEndLine struct {
	Path   gridpath.Path
	Select bool
}

func (a TBMoveCursorsEndLine) Metadata() Metadata {
	return tbViewMetadata(typeTBMoveCursorsEnd, "Move To Line End")
}
func (a TBMoveCursorsEndLine) TargetPath() gridpath.Path { return a.Path }
func (a TBMoveCursorsEndLine) Payload() (json.RawMessage, error) {
	return json.Marshal(struct {
		Path   string `json:"path"`
		Select bool   `json:"select"`
	}{a.Path.String(), a.Select})
}

type TBSelectAll struct{ Path gridpath.Path }

func (a TBSelectAll) Metadata() Metadata        { return tbViewMetadata(typeTBSelectAll, "Select All") }
func (a TBSelectAll) TargetPath() gridpath.Path { return a.Path }
func (a TBSelectAll) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}

type TBSelectNextOccurrence struct{ Path gridpath.Path }

func (a TBSelectNextOccurrence) Metadata() Metadata {
	return tbViewMetadata(typeTBSelectNextOcc, "Select Next Occurrence")
}
func (a TBSelectNextOccurrence) TargetPath() gridpath.Path { return a.Path }
func (a TBSelectNextOccurrence) Payload() (json.RawMessage, error) {
	return json.Marshal(pathPayload{Path: a.Path.String()})
}
