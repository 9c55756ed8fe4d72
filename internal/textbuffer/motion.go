package textbuffer

import (
	"strings"

	"github.com/benbjohnson/immutable"
)

type charClass int

const (
	classSpace charClass = iota
	classWord
	classOther
)

func classify(r byte) charClass {
	switch {
	case r == ' ' || r == '\t':
		return classSpace
	case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
		return classWord
	default:
		return classOther
	}
}

// FindWordBoundary classifies the character at (or, if isStart, just
// left of) from and scans until the class changes, per spec §4.H. When
// isStart is true it scans backward (for Backspace/ctrl-left), first
// skipping any whitespace left of from; otherwise it scans forward (for
// Delete/ctrl-right) and, when it started on a non-space run, also
// consumes the whitespace that follows. At the start (backward) or end
// (forward) of a line it steps to the neighboring line.
func (b *Buffer) FindWordBoundary(from LineChar, isStart bool) LineChar {
	if isStart {
		return b.scanWordBackward(from)
	}
	return b.scanWordForward(from)
}

func (b *Buffer) scanWordForward(from LineChar) LineChar {
	line := b.lines.Get(from.Line)
	if from.Byte >= len(line) {
		if from.Line >= b.lines.Len()-1 {
			return from
		}
		return LineChar{Line: from.Line + 1, Byte: 0}
	}
	cls := classify(line[from.Byte])
	i := from.Byte
	for i < len(line) && classify(line[i]) == cls {
		i++
	}
	// a word boundary skips trailing whitespace after a word, matching
	// typical ctrl-right behavior: if we started on a word, also consume
	// the space run that follows it.
	if cls != classSpace {
		for i < len(line) && classify(line[i]) == classSpace {
			i++
		}
	}
	return LineChar{Line: from.Line, Byte: i}
}

func (b *Buffer) scanWordBackward(from LineChar) LineChar {
	if from.Byte == 0 {
		if from.Line == 0 {
			return from
		}
		prev := b.lines.Get(from.Line - 1)
		return LineChar{Line: from.Line - 1, Byte: len(prev)}
	}
	line := b.lines.Get(from.Line)
	i := from.Byte
	for i > 0 && classify(line[i-1]) == classSpace {
		i--
	}
	if i == 0 {
		return LineChar{Line: from.Line, Byte: 0}
	}
	cls := classify(line[i-1])
	for i > 0 && classify(line[i-1]) == cls {
		i--
	}
	return LineChar{Line: from.Line, Byte: i}
}

// FindNextOccurrence scans the flattened text from start, wrapping around
// the end, for needle, comparing case-insensitively (strings.ToLower on
// both sides) when caseSensitive is false (spec §4.H). ok is false when needle never
// occurs.
func (b *Buffer) FindNextOccurrence(needle string, start LineChar, caseSensitive bool) (LineChar, LineChar, bool) {
	if needle == "" {
		return LineChar{}, LineChar{}, false
	}
	text := b.Text()
	lineOffsets := b.lineByteOffsets(text)
	startOff := int(b.byteOffset(start))

	find := func(hay, needle string) int { return indexFold(hay, needle, caseSensitive) }

	if idx := find(text[startOff:], needle); idx >= 0 {
		absIdx := startOff + idx
		return offsetToLineChar(lineOffsets, absIdx), offsetToLineChar(lineOffsets, absIdx+len(needle)), true
	}
	if idx := find(text[:startOff], needle); idx >= 0 {
		return offsetToLineChar(lineOffsets, idx), offsetToLineChar(lineOffsets, idx+len(needle)), true
	}
	return LineChar{}, LineChar{}, false
}

func (b *Buffer) lineByteOffsets(text string) []int {
	offsets := make([]int, 0, b.lines.Len())
	off := 0
	for _, l := range b.Lines() {
		offsets = append(offsets, off)
		off += len(l) + 1
	}
	return offsets
}

func offsetToLineChar(lineOffsets []int, off int) LineChar {
	for i := len(lineOffsets) - 1; i >= 0; i-- {
		if off >= lineOffsets[i] {
			return LineChar{Line: i, Byte: off - lineOffsets[i]}
		}
	}
	return LineChar{}
}

func indexFold(hay, needle string, caseSensitive bool) int {
	if caseSensitive {
		return strings.Index(hay, needle)
	}
	return strings.Index(strings.ToLower(hay), strings.ToLower(needle))
}

// SelectNextOccurrence works from the most recently added cursor. If it
// has a selection, it searches forward from the selection's end (wrapping
// around) for the selected text and adds a new cursor at the next match,
// merging/re-sorting the cursor set (spec §4.H). If it has no selection,
// it instead expands that cursor to the span between FindWordBoundary's
// backward and forward boundaries around it (the word under it plus any
// whitespace that follows) and adds no cursor.
func (b *Buffer) SelectNextOccurrence() {
	if len(b.cursors) == 0 {
		return
	}
	anchor := b.lastAddedCursor()
	needle := b.textBetween(anchor.Min(), anchor.Max())
	if needle == "" {
		start := b.FindWordBoundary(anchor.Start, true)
		end := b.FindWordBoundary(anchor.Start, false)
		needle = b.textBetween(start, end)
		if needle == "" {
			return
		}
		b.replaceCursor(anchor, Cursor{Start: start, End: end, seq: anchor.seq})
		return
	}
	from, to, ok := b.FindNextOccurrence(needle, anchor.Max(), true)
	if !ok {
		return
	}
	b.addCursor(Cursor{Start: from, End: to})
}

func (b *Buffer) lastAddedCursor() Cursor {
	best := b.cursors[0]
	for _, c := range b.cursors[1:] {
		if c.seq > best.seq {
			best = c
		}
	}
	return best
}

func (b *Buffer) replaceCursor(old, new Cursor) {
	for i, c := range b.cursors {
		if c.seq == old.seq {
			b.cursors[i] = new
			break
		}
	}
	b.cursors = normalizeCursors(b.cursors)
}

// SelectAll replaces the cursor set with a single cursor spanning the
// whole buffer.
func (b *Buffer) SelectAll() {
	lastLine := b.lines.Len() - 1
	b.cursors = []Cursor{{
		Start: LineChar{},
		End:   LineChar{Line: lastLine, Byte: len(b.lines.Get(lastLine))},
		seq:   b.newSeq(),
	}}
}

// --- bracket matching (spec §4.H) --------------------------------------

var bracketPairs = map[byte]byte{'(': ')', '[': ']', '{': '}'}
var bracketPairsRev = map[byte]byte{')': '(', ']': '[', '}': '{'}

// FindMatchingBrackets reads the character at, or just left of, the
// cursor; if it is one of ()[]{} it scans in the matching direction
// maintaining a depth counter until the partner is found. ok is false if
// there is no bracket at the cursor or no match.
func (b *Buffer) FindMatchingBrackets(c Cursor) (LineChar, bool) {
	p := c.Start
	if ch, ok := b.byteAt(p); ok {
		if _, isOpen := bracketPairs[ch]; isOpen {
			return b.scanBracketForward(p, ch)
		}
		if _, isClose := bracketPairsRev[ch]; isClose {
			return b.scanBracketBackward(p, ch)
		}
	}
	if p.Byte > 0 {
		left := LineChar{Line: p.Line, Byte: p.Byte - 1}
		if ch, ok := b.byteAt(left); ok {
			if _, isOpen := bracketPairs[ch]; isOpen {
				return b.scanBracketForward(left, ch)
			}
			if _, isClose := bracketPairsRev[ch]; isClose {
				return b.scanBracketBackward(left, ch)
			}
		}
	}
	return LineChar{}, false
}

func (b *Buffer) byteAt(p LineChar) (byte, bool) {
	line := b.lines.Get(p.Line)
	if p.Byte < 0 || p.Byte >= len(line) {
		return 0, false
	}
	return line[p.Byte], true
}

func (b *Buffer) scanBracketForward(from LineChar, open byte) (LineChar, bool) {
	close := bracketPairs[open]
	depth := 0
	p := from
	for {
		ch, ok := b.byteAt(p)
		if ok {
			switch ch {
			case open:
				depth++
			case close:
				depth--
				if depth == 0 {
					return p, true
				}
			}
		}
		next, ok := b.advance(p)
		if !ok {
			return LineChar{}, false
		}
		p = next
	}
}

func (b *Buffer) scanBracketBackward(from LineChar, close byte) (LineChar, bool) {
	open := bracketPairsRev[close]
	depth := 0
	p := from
	for {
		ch, ok := b.byteAt(p)
		if ok {
			switch ch {
			case close:
				depth++
			case open:
				depth--
				if depth == 0 {
					return p, true
				}
			}
		}
		prev, ok := b.retreat(p)
		if !ok {
			return LineChar{}, false
		}
		p = prev
	}
}

func (b *Buffer) advance(p LineChar) (LineChar, bool) {
	line := b.lines.Get(p.Line)
	if p.Byte+1 < len(line) {
		return LineChar{Line: p.Line, Byte: p.Byte + 1}, true
	}
	if p.Line+1 < b.lines.Len() {
		return LineChar{Line: p.Line + 1, Byte: 0}, true
	}
	return LineChar{}, false
}

func (b *Buffer) retreat(p LineChar) (LineChar, bool) {
	if p.Byte > 0 {
		return LineChar{Line: p.Line, Byte: p.Byte - 1}, true
	}
	if p.Line > 0 {
		prev := b.lines.Get(p.Line - 1)
		return LineChar{Line: p.Line - 1, Byte: len(prev) - 1}, true
	}
	return LineChar{}, false
}

// --- line comment / indentation / move lines (spec §4.H) --------------

// ToggleLineComment adds the language's line-comment prefix to every
// touched line if any lacks it, otherwise removes one leading prefix (and
// a following space, if present) from each.
func (b *Buffer) ToggleLineComment() {
	prefix := b.lang.LineCommentPrefix
	if prefix == "" {
		return
	}
	b.beginEdit()
	lines := b.touchedLines()
	lo, hi := lines[0], lines[len(lines)-1]
	startByte := b.byteOffset(LineChar{Line: lo})
	oldLen := b.lineSpanLen(lo, hi)
	anyMissing := false
	for _, l := range lines {
		if !strings.HasPrefix(strings.TrimLeft(b.lines.Get(l), " \t"), prefix) {
			anyMissing = true
			break
		}
	}
	for _, l := range lines {
		content := b.lines.Get(l)
		if anyMissing {
			indent := len(content) - len(strings.TrimLeft(content, " \t"))
			b.setLineRaw(l, content[:indent]+prefix+" "+content[indent:])
		} else {
			trimmedLen := len(content) - len(strings.TrimLeft(content, " \t"))
			rest := content[trimmedLen:]
			rest = strings.TrimPrefix(rest, prefix)
			rest = strings.TrimPrefix(rest, " ")
			b.setLineRaw(l, content[:trimmedLen]+rest)
		}
	}
	b.recordEdit(startByte, startByte+uint32(oldLen), startByte+uint32(b.lineSpanLen(lo, hi)))
	b.cursors = normalizeCursors(b.cursors)
}

// ChangeCurrentLinesIndentation prepends a tab (increase) or removes up
// to one tab width of leading whitespace (decrease) from every touched
// line.
func (b *Buffer) ChangeCurrentLinesIndentation(increase bool) {
	b.beginEdit()
	touched := b.touchedLines()
	lo, hi := touched[0], touched[len(touched)-1]
	startByte := b.byteOffset(LineChar{Line: lo})
	oldLen := b.lineSpanLen(lo, hi)
	for _, l := range touched {
		content := b.lines.Get(l)
		if increase {
			b.setLineRaw(l, "\t"+content)
			b.shiftCursorsOnLine(l, 0, 1)
		} else {
			n := leadingIndentWidth(content, b.tabWidth)
			b.setLineRaw(l, content[n:])
			b.shiftCursorsOnLine(l, n, -n)
		}
	}
	b.recordEdit(startByte, startByte+uint32(oldLen), startByte+uint32(b.lineSpanLen(lo, hi)))
	b.cursors = normalizeCursors(b.cursors)
}

// leadingIndentWidth returns how many leading bytes to strip to remove up
// to one tab stop of indentation: a single leading tab, or up to tabWidth
// leading spaces.
func leadingIndentWidth(s string, tabWidth int) int {
	if len(s) > 0 && s[0] == '\t' {
		return 1
	}
	n := 0
	for n < len(s) && n < tabWidth && s[n] == ' ' {
		n++
	}
	return n
}

func (b *Buffer) shiftCursorsOnLine(line, atOrAfter, delta int) {
	for i := range b.cursors {
		if b.cursors[i].Start.Line == line && b.cursors[i].Start.Byte >= atOrAfter {
			b.cursors[i].Start.Byte = maxInt(0, b.cursors[i].Start.Byte+delta)
		}
		if b.cursors[i].End.Line == line && b.cursors[i].End.Byte >= atOrAfter {
			b.cursors[i].End.Byte = maxInt(0, b.cursors[i].End.Byte+delta)
		}
		b.cursors[i] = b.cursors[i].clearColumns()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// lineSpanLen returns the flat-text byte length of lines [lo,hi]
// including the newline separators between them.
func (b *Buffer) lineSpanLen(lo, hi int) int {
	n := 0
	for l := lo; l <= hi; l++ {
		n += len(b.lines.Get(l))
	}
	return n + (hi - lo)
}

// setLineRaw replaces line l's content without touching the history
// batch bookkeeping (callers record their own single summary edit).
func (b *Buffer) setLineRaw(l int, content string) {
	b.lines = b.lines.Set(l, content)
}

func (b *Buffer) touchedLines() []int {
	set := b.touchedLineSet()
	out := make([]int, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	insertionSortInts(out)
	return out
}

func insertionSortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

// MoveCurrentLines swaps the block of lines touched by any cursor with
// its neighboring line (up or down), bailing out with no effect if that
// would run off either end of the buffer.
func (b *Buffer) MoveCurrentLines(up bool) {
	touched := b.touchedLines()
	if len(touched) == 0 {
		return
	}
	lo, hi := touched[0], touched[len(touched)-1]
	if up && lo == 0 {
		return
	}
	if !up && hi == b.lines.Len()-1 {
		return
	}
	b.beginEdit()
	var spanLo, spanHi int
	if up {
		spanLo, spanHi = lo-1, hi
		b.swapLines(lo-1, lo, hi)
		for i := range b.cursors {
			b.cursors[i].Start.Line--
			b.cursors[i].End.Line--
		}
	} else {
		spanLo, spanHi = lo, hi+1
		b.swapLines(hi+1, lo, hi)
		for i := range b.cursors {
			b.cursors[i].Start.Line++
			b.cursors[i].End.Line++
		}
	}
	// the swap permutes bytes within the span without changing its length
	startByte := b.byteOffset(LineChar{Line: spanLo})
	spanLen := uint32(b.lineSpanLen(spanLo, spanHi))
	b.recordEdit(startByte, startByte+spanLen, startByte+spanLen)
	b.cursors = normalizeCursors(b.cursors)
}

// swapLines moves the single line at neighbor to the far side of the
// [lo,hi] block, preserving the block's internal order.
func (b *Buffer) swapLines(neighbor, lo, hi int) {
	all := b.Lines()
	if neighbor < lo {
		n := all[neighbor]
		copy(all[neighbor:hi], all[lo:hi+1])
		all[hi] = n
	} else {
		n := all[neighbor]
		copy(all[lo+1:neighbor+1], all[lo:hi+1])
		all[lo] = n
	}
	bld := immutable.NewListBuilder[string]()
	for _, l := range all {
		bld.Append(l)
	}
	b.lines = bld.List()
}

// --- cursor motion (view-only, not Saved: spec §6) ---------------------

// MoveCursorsLines moves every cursor amount lines (negative up) from its
// current line, preserving cached column where possible; extends the
// selection instead of collapsing it when sel is true.
func (b *Buffer) MoveCursorsLines(amount int, sel bool) {
	for i := range b.cursors {
		b.moveOneLineWise(i, amount, sel)
	}
	b.cursors = normalizeCursors(b.cursors)
}

// PageCursorsLines moves every cursor pageSize lines up or down.
func (b *Buffer) PageCursorsLines(up bool, sel bool, pageSize int) {
	amount := pageSize
	if up {
		amount = -pageSize
	}
	b.MoveCursorsLines(amount, sel)
}

func (b *Buffer) moveOneLineWise(i int, amount int, sel bool) {
	c := b.cursors[i]
	col := c.EndColumn
	target := c.End
	var column int
	if col != nil {
		column = *col
	} else {
		column = b.toColumn(target)
	}
	newLine := clampInt(target.Line+amount, 0, b.lines.Len()-1)
	newByte := b.fromColumn(newLine, column)
	newEnd := LineChar{Line: newLine, Byte: newByte}
	c.EndColumn = intPtr(column)
	if sel {
		c.End = newEnd
	} else {
		c.Start, c.End = newEnd, newEnd
	}
	b.cursors[i] = c
}

// MoveCursorsChar moves every cursor one char (or one word, if word) left
// or right.
func (b *Buffer) MoveCursorsChar(right, sel, word bool) {
	for i := range b.cursors {
		c := b.cursors[i]
		if !sel && c.Ranged() {
			// an unselected move on a ranged cursor collapses to the
			// near/far edge in the direction of travel, matching
			// common editor behavior, rather than moving from End.
			if right {
				c = collapsed(c.Max(), c.seq)
			} else {
				c = collapsed(c.Min(), c.seq)
			}
			b.cursors[i] = c
			continue
		}
		var next LineChar
		if right {
			next = b.forwardBoundary(c.End, word)
		} else {
			next = b.backwardBoundary(c.End, word)
		}
		if sel {
			c.End = next
		} else {
			c.Start, c.End = next, next
		}
		b.cursors[i] = c.clearColumns()
	}
	b.cursors = normalizeCursors(b.cursors)
}

// MoveCursorsTop/Bottom/StartLine/EndLine move every cursor to the
// buffer/line extremity.
func (b *Buffer) MoveCursorsTop(sel bool)    { b.moveAllTo(LineChar{}, sel) }
func (b *Buffer) MoveCursorsBottom(sel bool) {
	last := b.lines.Len() - 1
	b.moveAllTo(LineChar{Line: last, Byte: len(b.lines.Get(last))}, sel)
}

func (b *Buffer) MoveCursorsStartLine(sel bool) {
	for i := range b.cursors {
		b.moveOneTo(i, LineChar{Line: b.cursors[i].End.Line, Byte: 0}, sel)
	}
	b.cursors = normalizeCursors(b.cursors)
}

func (b *Buffer) MoveCursorsEndLine(sel bool) {
	for i := range b.cursors {
		line := b.cursors[i].End.Line
		b.moveOneTo(i, LineChar{Line: line, Byte: len(b.lines.Get(line))}, sel)
	}
	b.cursors = normalizeCursors(b.cursors)
}

func (b *Buffer) moveAllTo(p LineChar, sel bool) {
	for i := range b.cursors {
		b.moveOneTo(i, p, sel)
	}
	b.cursors = normalizeCursors(b.cursors)
}

func (b *Buffer) moveOneTo(i int, p LineChar, sel bool) {
	c := b.cursors[i]
	if sel {
		c.End = p
	} else {
		c.Start, c.End = p, p
	}
	b.cursors[i] = c.clearColumns()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intPtr(v int) *int { return &v }

// toColumn converts p to its display column, expanding tabs to
// b.tabWidth-wide stops.
func (b *Buffer) toColumn(p LineChar) int {
	line := b.lines.Get(p.Line)
	col := 0
	for i := 0; i < p.Byte && i < len(line); i++ {
		if line[i] == '\t' {
			col += b.tabWidth - (col % b.tabWidth)
		} else if !isContinuation(line[i]) {
			col++
		}
	}
	return col
}

// fromColumn converts a display column back to a byte offset on line.
func (b *Buffer) fromColumn(line, column int) int {
	content := b.lines.Get(line)
	col := 0
	for i := 0; i < len(content); i++ {
		if col >= column {
			return i
		}
		if content[i] == '\t' {
			col += b.tabWidth - (col % b.tabWidth)
		} else if !isContinuation(content[i]) {
			col++
		}
	}
	return len(content)
}

// ToCoords converts a LineChar to its display Coords.
func (b *Buffer) ToCoords(p LineChar) Coords {
	return Coords{Line: p.Line, Column: b.toColumn(p)}
}

// FromCoords converts display Coords back to a LineChar.
func (b *Buffer) FromCoords(c Coords) LineChar {
	line := clampInt(c.Line, 0, b.lines.Len()-1)
	return LineChar{Line: line, Byte: b.fromColumn(line, c.Column)}
}
