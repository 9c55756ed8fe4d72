// Package textbuffer implements spec §4.H: the persistent line/char
// store, the multi-cursor edit engine, and the append-only undo/redo
// history backing the TextBuffer container entity. It is the one
// subsystem with no direct teacher analog (the teacher has no editor of
// its own); it is built in internal/gridstore's persistent-snapshot idiom
// — applied here to an immutable.List[string] line sequence instead of a
// HAMT — per DESIGN.md's note on learning this piece from the rest of the
// pack rather than the teacher.
package textbuffer

import (
	"strings"

	"github.com/benbjohnson/immutable"
)

// LineChar is a byte-precise coordinate: a line index and a byte offset
// into that line's UTF-8 bytes (spec §4.H).
type LineChar struct {
	Line int
	Byte int
}

// Less reports whether a sorts strictly before b.
func (a LineChar) Less(b LineChar) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Byte < b.Byte
}

// Equal reports whether a and b denote the same position.
func (a LineChar) Equal(b LineChar) bool { return a.Line == b.Line && a.Byte == b.Byte }

// Coords is a display coordinate: a line index and a column counting tab
// stops at the buffer's configured width (spec §4.H).
type Coords struct {
	Line   int
	Column int
}

// Cursor is one insertion point, possibly ranged (spec §3). Start is
// where the selection was anchored; End is where it currently extends to
// — End is the "active" end that keyboard motion moves. A Cursor with
// Start == End carries no selection.
type Cursor struct {
	Start, End LineChar
	// StartColumn/EndColumn cache Coords.Column for vertical motion
	// (spec §4.H); nil means "not cached, recompute from LineChar".
	StartColumn, EndColumn *int
	// Edited is a per-cursor flag for callers. No code in this package
	// sets it, so it stays false unless a caller sets it.
	Edited bool
	// seq orders cursor creation so SelectNextOccurrence can find the
	// most-recently-added cursor after a sort reshuffles the slice (spec
	// §4.H: "the later-added cursor's position is preserved across the
	// sort").
	seq int
}

// Min returns the earlier of Start/End.
func (c Cursor) Min() LineChar {
	if c.Start.Less(c.End) {
		return c.Start
	}
	return c.End
}

// Max returns the later of Start/End.
func (c Cursor) Max() LineChar {
	if c.Start.Less(c.End) {
		return c.End
	}
	return c.Start
}

// Ranged reports whether the cursor carries a non-empty selection.
func (c Cursor) Ranged() bool { return !c.Start.Equal(c.End) }

// clearColumns drops the cached Coords.Column for both ends, done
// whenever a LineChar changes without an explicit column supplied (spec
// §3: "column caches are cleared whenever the corresponding LineChar
// changes without an explicit column provided").
func (c Cursor) clearColumns() Cursor {
	c.StartColumn, c.EndColumn = nil, nil
	return c
}

// collapsed returns a zero-width cursor at p.
func collapsed(p LineChar, seq int) Cursor {
	return Cursor{Start: p, End: p, seq: seq}
}

// TextInputEdit describes one contiguous byte-range change to the flat
// text, reported to the incremental parser after each edit batch (spec
// §4.H).
type TextInputEdit struct {
	StartByte  uint32
	OldEndByte uint32
	NewEndByte uint32
}

// Language supplies the buffer with language-specific behavior: the
// single-line comment prefix ToggleLineComment consults, and optionally a
// tree-sitter grammar for incremental parsing (spec §4.H; nil Sitter
// disables parsing, matching editors opened on unrecognized extensions).
type Language struct {
	Name              string
	LineCommentPrefix string
	Sitter            *ParserLanguage
}

// snapshot is one entry of the undo/redo history: the line content, the
// cursor set before and after the edit that produced it, and the edits
// that moved the tree-sitter parse forward (spec §4.H).
type snapshot struct {
	lines         *immutable.List[string]
	cursors       []Cursor
	beforeCursors []Cursor
	edits         []TextInputEdit
}

// Buffer is one open text document: persistent lines, the active cursor
// set, a pending-edits batch not yet committed, and an append-only
// undo/redo history (spec §4.H).
type Buffer struct {
	lines   *immutable.List[string]
	cursors []Cursor
	nextSeq int

	beforeCursors []Cursor
	pending       []TextInputEdit

	initialLines *immutable.List[string]
	history      []snapshot
	index        int // -1: no commits yet

	tabWidth  int
	overwrite bool
	lang      Language
	parser    *Parser
}

// New returns an empty Buffer with a single cursor at (0,0).
func New(tabWidth int, lang Language) *Buffer {
	return NewFromText("", tabWidth, lang)
}

// NewFromText returns a Buffer seeded with text, split on "\n", cursor at
// the very start.
func NewFromText(text string, tabWidth int, lang Language) *Buffer {
	lines := linesFromText(text)
	b := &Buffer{
		lines:        lines,
		initialLines: lines,
		cursors:      []Cursor{collapsed(LineChar{}, 0)},
		index:        -1,
		tabWidth:     tabWidth,
		lang:         lang,
	}
	if lang.Sitter != nil {
		b.parser = NewParser(lang.Sitter)
		_ = b.parser.Parse([]byte(text), nil)
	}
	return b
}

func linesFromText(text string) *immutable.List[string] {
	b := immutable.NewListBuilder[string]()
	for _, l := range strings.Split(text, "\n") {
		b.Append(l)
	}
	return b.List()
}

// Lines returns a copy of the buffer's lines.
func (b *Buffer) Lines() []string {
	out := make([]string, b.lines.Len())
	itr := b.lines.Iterator()
	i := 0
	for !itr.Done() {
		_, v := itr.Next()
		out[i] = v
		i++
	}
	return out
}

// Text returns the full buffer content, lines joined by "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return b.lines.Len() }

// Line returns the content of line i.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= b.lines.Len() {
		return ""
	}
	return b.lines.Get(i)
}

// Cursors returns a copy of the active cursor set, sorted by Min() with
// no pairwise overlap (spec §8 invariant 7).
func (b *Buffer) Cursors() []Cursor {
	out := make([]Cursor, len(b.cursors))
	copy(out, b.cursors)
	return out
}

// SetCursors replaces the cursor set wholesale, normalizing it (sort +
// merge) before taking effect. Used by TextBuffer::SelectAll and by
// project-load seeding.
func (b *Buffer) SetCursors(cs []Cursor) {
	for i := range cs {
		if cs[i].seq == 0 {
			b.nextSeq++
			cs[i].seq = b.nextSeq
		}
	}
	b.cursors = normalizeCursors(cs)
}

// TabWidth reports the buffer's configured tab stop width.
func (b *Buffer) TabWidth() int { return b.tabWidth }

// Overwrite reports whether insert-mode typing overwrites the next
// character rather than inserting before it.
func (b *Buffer) Overwrite() bool { return b.overwrite }

// ToggleOverwrite flips overwrite mode; this is a view-only toggle (spec
// §6: not a Saved action), so it bypasses commit().
func (b *Buffer) ToggleOverwrite() { b.overwrite = !b.overwrite }

// PendingEdits returns the edits accumulated since the last Commit, for
// callers that want to inspect them before the batch closes.
func (b *Buffer) PendingEdits() []TextInputEdit {
	out := make([]TextInputEdit, len(b.pending))
	copy(out, b.pending)
	return out
}

// newSeq allocates and returns the next cursor creation sequence number.
func (b *Buffer) newSeq() int {
	b.nextSeq++
	return b.nextSeq
}

// addCursor appends c (stamping a fresh seq) and renormalizes.
func (b *Buffer) addCursor(c Cursor) {
	c.seq = b.newSeq()
	b.cursors = normalizeCursors(append(b.cursors, c))
}

// normalizeCursors sorts cs by Min() and merges any that overlap or
// touch, keeping the higher-seq cursor's orientation (Start/End) when two
// merge, per spec §4.H cursor invariants.
func normalizeCursors(cs []Cursor) []Cursor {
	if len(cs) == 0 {
		return cs
	}
	sorted := append([]Cursor{}, cs...)
	insertionSort(sorted)

	out := make([]Cursor, 0, len(sorted))
	out = append(out, sorted[0])
	for _, c := range sorted[1:] {
		last := out[len(out)-1]
		if !last.Max().Less(c.Min()) {
			// c.Min() <= last.Max(): the two selections overlap or touch.
			out[len(out)-1] = mergeCursors(last, c)
			continue
		}
		out = append(out, c)
	}
	return out
}

// mergeCursors merges a and b (already known to overlap) into one cursor
// spanning min(a,b)..max(a,b). The surviving orientation (which end is
// Start vs End) follows whichever of a/b has the higher seq, so "last
// added" keeps its forward/backward selection direction.
func mergeCursors(a, b Cursor) Cursor {
	lo, hi := a.Min(), a.Max()
	if b.Min().Less(lo) {
		lo = b.Min()
	}
	if hi.Less(b.Max()) {
		hi = b.Max()
	}
	newer := a
	if b.seq > a.seq {
		newer = b
	}
	merged := Cursor{seq: newer.seq}
	if newer.Start.Less(newer.End) || newer.Start.Equal(newer.End) {
		merged.Start, merged.End = lo, hi
	} else {
		merged.Start, merged.End = hi, lo
	}
	return merged.clearColumns()
}

// insertionSort sorts cs by Min() in place; cursor slices are small
// enough (one per mouse click / Alt-click) that an O(n^2) sort is simpler
// than pulling in sort.Slice's reflection-based comparator for this
// internal helper.
func insertionSort(cs []Cursor) {
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j].Min().Less(cs[j-1].Min()); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}
