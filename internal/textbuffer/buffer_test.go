package textbuffer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mfkiwl/flowgrid/internal/textbuffer"
)

func newBuffer(text string) *textbuffer.Buffer {
	return textbuffer.NewFromText(text, 4, textbuffer.Language{})
}

func TestEnterCharInsertsAtCursor(t *testing.T) {
	b := newBuffer("ac")
	b.SetCursors([]textbuffer.Cursor{{Start: textbuffer.LineChar{Line: 0, Byte: 1}, End: textbuffer.LineChar{Line: 0, Byte: 1}}})
	b.EnterChar('b')
	b.Commit()
	require.Equal(t, "abc", b.Text())
}

func TestEnterCharMultiCursor(t *testing.T) {
	b := newBuffer("aa\nbb")
	b.SetCursors([]textbuffer.Cursor{
		{Start: textbuffer.LineChar{Line: 0, Byte: 0}, End: textbuffer.LineChar{Line: 0, Byte: 0}},
		{Start: textbuffer.LineChar{Line: 1, Byte: 0}, End: textbuffer.LineChar{Line: 1, Byte: 0}},
	})
	b.EnterChar('x')
	b.Commit()
	require.Equal(t, "xaa\nxbb", b.Text())
}

// Undo restores the cursor positions that preceded the edit, not the
// positions the edit left the cursors in.
func TestUndoRestoresPriorCursors(t *testing.T) {
	b := newBuffer("ac")
	start := textbuffer.LineChar{Line: 0, Byte: 1}
	b.SetCursors([]textbuffer.Cursor{{Start: start, End: start}})
	b.EnterChar('b')
	b.Commit()
	require.Equal(t, "abc", b.Text())

	require.NoError(t, b.Undo())
	require.Equal(t, "ac", b.Text())
	cs := b.Cursors()
	require.Len(t, cs, 1)
	require.Equal(t, start, cs[0].Start)
	require.False(t, b.CanUndo())
}

func TestRedoReappliesEdit(t *testing.T) {
	b := newBuffer("ac")
	start := textbuffer.LineChar{Line: 0, Byte: 1}
	b.SetCursors([]textbuffer.Cursor{{Start: start, End: start}})
	b.EnterChar('b')
	b.Commit()
	require.NoError(t, b.Undo())
	require.NoError(t, b.Redo())
	require.Equal(t, "abc", b.Text())
	require.False(t, b.CanRedo())
}

func TestUndoWithNoHistoryErrors(t *testing.T) {
	b := newBuffer("abc")
	require.ErrorIs(t, b.Undo(), textbuffer.ErrNoHistory)
}

// Cursors must stay sorted by Min() with no pairwise overlap (spec
// invariant on the cursor set).
func TestCursorsNormalizeOnOverlap(t *testing.T) {
	b := newBuffer("hello world")
	b.SetCursors([]textbuffer.Cursor{
		{Start: textbuffer.LineChar{Line: 0, Byte: 6}, End: textbuffer.LineChar{Line: 0, Byte: 11}},
		{Start: textbuffer.LineChar{Line: 0, Byte: 0}, End: textbuffer.LineChar{Line: 0, Byte: 8}},
	})
	cs := b.Cursors()
	require.Len(t, cs, 1)
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 0}, cs[0].Min())
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 11}, cs[0].Max())
}

func TestDeleteWordBackspace(t *testing.T) {
	b := newBuffer("foo bar")
	end := textbuffer.LineChar{Line: 0, Byte: 7}
	b.SetCursors([]textbuffer.Cursor{{Start: end, End: end}})
	b.Backspace(true)
	b.Commit()
	require.Equal(t, "foo ", b.Text())
}

func TestCutAndPaste(t *testing.T) {
	b := newBuffer("hello world")
	b.SetCursors([]textbuffer.Cursor{{Start: textbuffer.LineChar{Line: 0, Byte: 0}, End: textbuffer.LineChar{Line: 0, Byte: 5}}})
	cut := b.Cut()
	b.Commit()
	require.Equal(t, "hello", cut)
	require.Equal(t, " world", b.Text())

	b.SetCursors([]textbuffer.Cursor{{Start: textbuffer.LineChar{Line: 0, Byte: 0}, End: textbuffer.LineChar{Line: 0, Byte: 0}}})
	b.Paste(cut)
	b.Commit()
	require.Equal(t, "hello world", b.Text())
}

func TestDeleteCurrentLinesMiddle(t *testing.T) {
	b := newBuffer("a\nb\nc\nd")
	p := textbuffer.LineChar{Line: 1, Byte: 0}
	b.SetCursors([]textbuffer.Cursor{{Start: p, End: p}})
	b.DeleteCurrentLines()
	require.Equal(t, "a\nc\nd", b.Text())
}

func TestDeleteCurrentLinesLastLine(t *testing.T) {
	b := newBuffer("a\nb")
	p := textbuffer.LineChar{Line: 1, Byte: 0}
	b.SetCursors([]textbuffer.Cursor{{Start: p, End: p}})
	b.DeleteCurrentLines()
	require.Equal(t, "a", b.Text())
}

func TestMoveCurrentLinesDown(t *testing.T) {
	b := newBuffer("a\nb\nc")
	p := textbuffer.LineChar{Line: 0, Byte: 0}
	b.SetCursors([]textbuffer.Cursor{{Start: p, End: p}})
	b.MoveCurrentLines(false)
	require.Equal(t, "b\na\nc", b.Text())
}

func TestMoveCurrentLinesUpAtTopIsNoop(t *testing.T) {
	b := newBuffer("a\nb\nc")
	p := textbuffer.LineChar{Line: 0, Byte: 0}
	b.SetCursors([]textbuffer.Cursor{{Start: p, End: p}})
	b.MoveCurrentLines(true)
	require.Equal(t, "a\nb\nc", b.Text())
}

func TestToggleLineCommentAddsThenRemoves(t *testing.T) {
	b := textbuffer.NewFromText("x := 1", 4, textbuffer.Language{LineCommentPrefix: "//"})
	p := textbuffer.LineChar{Line: 0, Byte: 0}
	b.SetCursors([]textbuffer.Cursor{{Start: p, End: p}})
	b.ToggleLineComment()
	require.Equal(t, "// x := 1", b.Text())

	b.ToggleLineComment()
	require.Equal(t, "x := 1", b.Text())
}

func TestFindWordBoundaryForward(t *testing.T) {
	b := newBuffer("foo bar baz")
	next := b.FindWordBoundary(textbuffer.LineChar{Line: 0, Byte: 0}, false)
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 4}, next)
}

func TestFindMatchingBrackets(t *testing.T) {
	b := newBuffer("f(a, (b), c)")
	c := textbuffer.Cursor{Start: textbuffer.LineChar{Line: 0, Byte: 1}, End: textbuffer.LineChar{Line: 0, Byte: 1}}
	match, ok := b.FindMatchingBrackets(c)
	require.True(t, ok)
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 11}, match)
}

func TestSelectNextOccurrence(t *testing.T) {
	b := newBuffer("cat dog cat bird cat")
	b.SetCursors([]textbuffer.Cursor{{Start: textbuffer.LineChar{Line: 0, Byte: 0}, End: textbuffer.LineChar{Line: 0, Byte: 3}}})
	b.SelectNextOccurrence()
	cs := b.Cursors()
	require.Len(t, cs, 2)
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 8}, cs[1].Min())
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 11}, cs[1].Max())
}

func TestSelectAll(t *testing.T) {
	b := newBuffer("ab\ncd")
	b.SelectAll()
	cs := b.Cursors()
	require.Len(t, cs, 1)
	require.Equal(t, textbuffer.LineChar{Line: 0, Byte: 0}, cs[0].Min())
	require.Equal(t, textbuffer.LineChar{Line: 1, Byte: 2}, cs[0].Max())
}
