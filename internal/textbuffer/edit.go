package textbuffer

import (
	"strings"

	"github.com/benbjohnson/immutable"
)

// byteOffset returns the flat-text byte offset of p, used to build the
// TextInputEdit spec §4.H mandates be reported after every edit batch.
func (b *Buffer) byteOffset(p LineChar) uint32 {
	var off int
	itr := b.lines.Iterator()
	i := 0
	for !itr.Done() {
		_, line := itr.Next()
		if i == p.Line {
			return uint32(off + p.Byte)
		}
		off += len(line) + 1 // +1 for the '\n' joining this line to the next
		i++
	}
	return uint32(off)
}

// insertAt splices text into the buffer at pos, returning the position
// immediately after the inserted text. text may itself contain newlines,
// in which case new lines are spliced in between pos's line prefix and
// suffix.
func (b *Buffer) insertAt(pos LineChar, text string) LineChar {
	if text == "" {
		return pos
	}
	line := b.lines.Get(pos.Line)
	prefix, suffix := line[:pos.Byte], line[pos.Byte:]
	segs := strings.Split(text, "\n")

	bld := immutable.NewListBuilder[string]()
	itr := b.lines.Iterator()
	i := 0
	for !itr.Done() {
		_, l := itr.Next()
		switch {
		case i < pos.Line:
			bld.Append(l)
		case i == pos.Line:
			if len(segs) == 1 {
				bld.Append(prefix + segs[0] + suffix)
			} else {
				bld.Append(prefix + segs[0])
				for _, mid := range segs[1 : len(segs)-1] {
					bld.Append(mid)
				}
				bld.Append(segs[len(segs)-1] + suffix)
			}
		default:
			bld.Append(l)
		}
		i++
	}
	b.lines = bld.List()

	end := LineChar{Line: pos.Line + len(segs) - 1, Byte: len(segs[len(segs)-1])}
	return end
}

// deleteRangeText removes the half-open byte range [from, to) and returns
// the deleted text.
func (b *Buffer) deleteRangeText(from, to LineChar) string {
	if !from.Less(to) {
		return ""
	}
	var deleted strings.Builder
	bld := immutable.NewListBuilder[string]()
	itr := b.lines.Iterator()
	i := 0
	fromLine, toLine := b.lines.Get(from.Line), b.lines.Get(to.Line)
	for !itr.Done() {
		_, l := itr.Next()
		switch {
		case i < from.Line:
			bld.Append(l)
		case i == from.Line && i == to.Line:
			deleted.WriteString(l[from.Byte:to.Byte])
			bld.Append(l[:from.Byte] + l[to.Byte:])
		case i == from.Line:
			deleted.WriteString(fromLine[from.Byte:])
			deleted.WriteByte('\n')
		case i > from.Line && i < to.Line:
			deleted.WriteString(l)
			deleted.WriteByte('\n')
		case i == to.Line:
			deleted.WriteString(toLine[:to.Byte])
			bld.Append(fromLine[:from.Byte] + toLine[to.Byte:])
		default:
			bld.Append(l)
		}
		i++
	}
	b.lines = bld.List()
	return deleted.String()
}

// shiftForInsert recomputes p's position after text was inserted at pos.
func shiftForInsert(p, pos LineChar, text string) LineChar {
	n := strings.Count(text, "\n")
	switch {
	case p.Line < pos.Line:
		return p
	case p.Line > pos.Line:
		return LineChar{Line: p.Line + n, Byte: p.Byte}
	default:
		if p.Byte < pos.Byte {
			return p
		}
		lastSeg := text
		if n > 0 {
			lastSeg = text[strings.LastIndexByte(text, '\n')+1:]
		}
		return LineChar{Line: pos.Line + n, Byte: len(lastSeg) + (p.Byte - pos.Byte)}
	}
}

// shiftForDelete recomputes p's position after [from,to) was deleted.
// Points strictly inside the deleted range collapse to from.
func shiftForDelete(p, from, to LineChar) LineChar {
	if !from.Less(p) && !from.Equal(p) {
		return p // p < from: unaffected
	}
	if from.Equal(p) {
		return p
	}
	if p.Less(to) {
		return from // strictly inside the deleted range
	}
	if p.Line > to.Line {
		return LineChar{Line: p.Line - (to.Line - from.Line), Byte: p.Byte}
	}
	// p.Line == to.Line, p.Byte >= to.Byte
	return LineChar{Line: from.Line, Byte: from.Byte + (p.Byte - to.Byte)}
}

// applyEditToCursors shifts every cursor's Start/End for one insert/delete
// op, except the cursor at exceptIdx which the caller has already placed
// explicitly.
func (b *Buffer) applyEditToCursors(exceptIdx int, fn func(LineChar) LineChar) {
	for i := range b.cursors {
		if i == exceptIdx {
			continue
		}
		b.cursors[i].Start = fn(b.cursors[i].Start)
		b.cursors[i].End = fn(b.cursors[i].End)
		b.cursors[i] = b.cursors[i].clearColumns()
	}
}

// recordEdit appends the byte-range description of one insert/delete to
// the pending batch (spec §4.H step 4).
func (b *Buffer) recordEdit(startByte, oldEnd, newEnd uint32) {
	b.pending = append(b.pending, TextInputEdit{StartByte: startByte, OldEndByte: oldEnd, NewEndByte: newEnd})
}

// replaceCursorRange deletes the cursor's selection (if ranged) then
// inserts text at the resulting point, updating every other cursor and
// recording the edit. It returns the point immediately after the
// inserted text.
func (b *Buffer) replaceCursorRange(idx int, text string) LineChar {
	c := b.cursors[idx]
	from, to := c.Min(), c.Max()
	startByte := b.byteOffset(from)

	var deletedLen int
	if c.Ranged() {
		deleted := b.deleteRangeText(from, to)
		deletedLen = len(deleted)
		b.applyEditToCursors(idx, func(p LineChar) LineChar { return shiftForDelete(p, from, to) })
	}
	end := b.insertAt(from, text)
	if text != "" {
		b.applyEditToCursors(idx, func(p LineChar) LineChar { return shiftForInsert(p, from, text) })
	}
	b.recordEdit(startByte, startByte+uint32(deletedLen), startByte+uint32(len(text)))
	return end
}

// --- gesture lifecycle (snapshot/commit/undo/redo: spec §4.H) ---------

// beginEdit snapshots the current cursors into beforeCursors if this is
// the first mutating op since the last Commit (spec §4.H step 1).
func (b *Buffer) beginEdit() {
	if b.beforeCursors == nil {
		b.beforeCursors = b.Cursors()
	}
}

// Commit pushes the accumulated edit batch to history and feeds the
// pending TextInputEdits to the incremental parser, then clears the
// pending-edits list (spec §4.H step 5). A no-op if nothing changed since
// the last commit.
func (b *Buffer) Commit() {
	if len(b.pending) == 0 {
		return
	}
	snap := snapshot{
		lines:         b.lines,
		cursors:       b.Cursors(),
		beforeCursors: b.beforeCursors,
		edits:         append([]TextInputEdit{}, b.pending...),
	}
	b.history = b.history[:b.index+1]
	b.history = append(b.history, snap)
	b.index++

	if b.parser != nil {
		_ = b.parser.Parse([]byte(b.Text()), b.pending)
	}
	b.pending = nil
	b.beforeCursors = nil
}

// SetText replaces the entire buffer content in one committed edit
// batch, collapsing the cursors to the start. A no-op when text equals
// the current content, so repeated Set actions don't grow the history.
func (b *Buffer) SetText(text string) {
	old := b.Text()
	if old == text {
		return
	}
	b.beginEdit()
	b.lines = linesFromText(text)
	b.cursors = []Cursor{collapsed(LineChar{}, b.newSeq())}
	b.recordEdit(0, uint32(len(old)), uint32(len(text)))
	b.Commit()
}

// --- cursor-iterating entry points for the §6 action set ---------------

// forEachCursorReverse applies fn to every cursor index from last to
// first (spec §4.H step 2: "iterate cursors in reverse order so earlier
// positions remain valid"), then renormalizes the cursor set.
func (b *Buffer) forEachCursorReverse(fn func(idx int)) {
	b.beginEdit()
	for i := len(b.cursors) - 1; i >= 0; i-- {
		fn(i)
	}
	b.cursors = normalizeCursors(b.cursors)
}

// EnterChar inserts a single code point at every cursor, replacing any
// selection; in overwrite mode with no selection it replaces the
// following character instead of inserting before it.
func (b *Buffer) EnterChar(cp rune) {
	b.forEachCursorReverse(func(i int) {
		c := b.cursors[i]
		if b.overwrite && !c.Ranged() {
			line := b.lines.Get(c.Start.Line)
			if c.Start.Byte < len(line) {
				_, size := decodeRuneAt(line, c.Start.Byte)
				to := LineChar{Line: c.Start.Line, Byte: c.Start.Byte + size}
				b.cursors[i] = Cursor{Start: c.Start, End: to, seq: c.seq}
			}
		}
		end := b.replaceCursorRange(i, string(cp))
		b.cursors[i] = collapsed(end, c.seq)
	})
}

// Paste inserts text at every cursor, replacing any selection.
func (b *Buffer) Paste(text string) {
	b.forEachCursorReverse(func(i int) {
		seq := b.cursors[i].seq
		end := b.replaceCursorRange(i, text)
		b.cursors[i] = collapsed(end, seq)
	})
}

// Cut returns the concatenated selected text (newline-joined across
// cursors) and removes it from the buffer, equivalent to Copy then
// deleting each selection.
func (b *Buffer) Cut() string {
	text := b.Copy()
	b.forEachCursorReverse(func(i int) {
		if !b.cursors[i].Ranged() {
			return
		}
		seq := b.cursors[i].seq
		end := b.replaceCursorRange(i, "")
		b.cursors[i] = collapsed(end, seq)
	})
	return text
}

// Copy returns the concatenated selected text across all ranged cursors,
// in cursor order, newline-joined.
func (b *Buffer) Copy() string {
	var parts []string
	for _, c := range b.cursors {
		if !c.Ranged() {
			continue
		}
		parts = append(parts, b.textBetween(c.Min(), c.Max()))
	}
	return strings.Join(parts, "\n")
}

// textBetween returns the text in [from,to) without mutating the buffer.
func (b *Buffer) textBetween(from, to LineChar) string {
	if from.Line == to.Line {
		return b.lines.Get(from.Line)[from.Byte:to.Byte]
	}
	var sb strings.Builder
	sb.WriteString(b.lines.Get(from.Line)[from.Byte:])
	for l := from.Line + 1; l < to.Line; l++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines.Get(l))
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines.Get(to.Line)[:to.Byte])
	return sb.String()
}

// Delete removes the selection if ranged, else one character (or one
// word, if word is true) forward from the cursor.
func (b *Buffer) Delete(word bool) {
	b.forEachCursorReverse(func(i int) {
		c := b.cursors[i]
		seq := c.seq
		if c.Ranged() {
			end := b.replaceCursorRange(i, "")
			b.cursors[i] = collapsed(end, seq)
			return
		}
		to := b.forwardBoundary(c.Start, word)
		b.cursors[i] = Cursor{Start: c.Start, End: to, seq: seq}
		end := b.replaceCursorRange(i, "")
		b.cursors[i] = collapsed(end, seq)
	})
}

// Backspace removes the selection if ranged, else one character (or one
// word, if word is true) backward from the cursor.
func (b *Buffer) Backspace(word bool) {
	b.forEachCursorReverse(func(i int) {
		c := b.cursors[i]
		seq := c.seq
		if c.Ranged() {
			end := b.replaceCursorRange(i, "")
			b.cursors[i] = collapsed(end, seq)
			return
		}
		from := b.backwardBoundary(c.Start, word)
		b.cursors[i] = Cursor{Start: from, End: c.Start, seq: seq}
		end := b.replaceCursorRange(i, "")
		b.cursors[i] = collapsed(end, seq)
	})
}

// forwardBoundary returns the point one char or one word forward from p.
func (b *Buffer) forwardBoundary(p LineChar, word bool) LineChar {
	if word {
		return b.FindWordBoundary(p, false)
	}
	line := b.lines.Get(p.Line)
	if p.Byte >= len(line) {
		if p.Line >= b.lines.Len()-1 {
			return p
		}
		return LineChar{Line: p.Line + 1, Byte: 0}
	}
	_, size := decodeRuneAt(line, p.Byte)
	return LineChar{Line: p.Line, Byte: p.Byte + size}
}

// backwardBoundary returns the point one char or one word backward from p.
func (b *Buffer) backwardBoundary(p LineChar, word bool) LineChar {
	if word {
		return b.FindWordBoundary(p, true)
	}
	if p.Byte == 0 {
		if p.Line == 0 {
			return p
		}
		prev := b.lines.Get(p.Line - 1)
		return LineChar{Line: p.Line - 1, Byte: len(prev)}
	}
	size := decodeRuneBefore(b.lines.Get(p.Line), p.Byte)
	return LineChar{Line: p.Line, Byte: p.Byte - size}
}

// DeleteCurrentLines removes every line touched by any cursor.
func (b *Buffer) DeleteCurrentLines() {
	b.beginEdit()
	touched := b.touchedLineSet()
	lo, hi := minMaxLine(touched)
	from := LineChar{Line: lo}
	var to LineChar
	if hi == b.lines.Len()-1 {
		if lo == 0 {
			to = LineChar{Line: hi, Byte: len(b.lines.Get(hi))}
		} else {
			from = LineChar{Line: lo - 1, Byte: len(b.lines.Get(lo - 1))}
			to = LineChar{Line: hi, Byte: len(b.lines.Get(hi))}
		}
	} else {
		to = LineChar{Line: hi + 1}
	}
	startByte := b.byteOffset(from)
	deleted := b.deleteRangeText(from, to)
	for i := range b.cursors {
		b.cursors[i].Start = shiftForDelete(b.cursors[i].Start, from, to)
		b.cursors[i].End = shiftForDelete(b.cursors[i].End, from, to)
		b.cursors[i] = b.cursors[i].clearColumns()
	}
	b.recordEdit(startByte, startByte+uint32(len(deleted)), startByte)
	b.cursors = normalizeCursors(b.cursors)
}

func (b *Buffer) touchedLineSet() map[int]bool {
	out := make(map[int]bool)
	for _, c := range b.cursors {
		for l := c.Min().Line; l <= c.Max().Line; l++ {
			out[l] = true
		}
	}
	return out
}

func minMaxLine(set map[int]bool) (int, int) {
	lo, hi := -1, -1
	for l := range set {
		if lo == -1 || l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	return lo, hi
}

// decodeRuneAt returns the UTF-8 byte length of the code point starting
// at off, skipping continuation bytes per spec §4.H's byte-wise
// navigation. Its rune result is always 0; callers use only the length.
func decodeRuneAt(s string, off int) (rune, int) {
	for size := 1; off+size <= len(s); size++ {
		if off+size == len(s) || !isContinuation(s[off+size]) {
			return 0, size
		}
	}
	return 0, len(s) - off
}

// decodeRuneBefore returns the byte length of the rune ending at off.
func decodeRuneBefore(s string, off int) int {
	size := 1
	for off-size > 0 && isContinuation(s[off-size]) {
		size++
	}
	return size
}

func isContinuation(c byte) bool { return c&0xC0 == 0x80 }
