package core

import "testing"

func newTestManager(text string) (*Document, *Caret, *CursorManager) {
	doc := NewDocument(text)
	caret := NewCaret(doc)
	return doc, caret, NewCursorManager(doc, caret, nil)
}

func TestMatchCursorSequence(t *testing.T) {
	_, caret, m := newTestManager("foo bar foo baz foo")
	caret.Select(0, 3)

	if !m.MatchCursor(false) {
		t.Fatal("first match failed")
	}
	c := m.Cursors()[0]
	if c.Start() != 8 || c.End() != 11 {
		t.Errorf("first cursor = (%d, %d), want (8, 11)", c.Start(), c.End())
	}

	if !m.MatchCursor(false) {
		t.Fatal("second match failed")
	}
	c = m.Cursors()[1]
	if c.Start() != 16 || c.End() != 19 {
		t.Errorf("second cursor = (%d, %d), want (16, 19)", c.Start(), c.End())
	}

	// All occurrences consumed; the wraparound is bounded by the primary
	// selection, so the third call is a no-op.
	if m.MatchCursor(false) {
		t.Error("exhausted match reported success")
	}
	if m.Count() != 2 {
		t.Errorf("cursor count = %d, want 2", m.Count())
	}
}

func TestMatchCursorWrapsOnce(t *testing.T) {
	_, caret, m := newTestManager("foo bar foo baz foo")
	caret.Select(8, 11) // the middle occurrence

	m.MatchCursor(false)
	if c := m.Cursors()[0]; c.Start() != 16 {
		t.Fatalf("first match at %d, want 16", c.Start())
	}

	// Wraps to the document start.
	if !m.MatchCursor(false) {
		t.Fatal("wraparound match failed")
	}
	if c := m.Cursors()[1]; c.Start() != 0 || c.End() != 3 {
		t.Errorf("wrapped cursor = (%d, %d), want (0, 3)", c.Start(), c.End())
	}

	// Exhausted: the primary's own range must never be re-matched, even
	// though the last-added cursor now sits before it.
	if m.MatchCursor(false) {
		t.Error("search wrapped more than once")
	}
	if m.Count() != 2 {
		t.Errorf("cursor count = %d, want 2", m.Count())
	}
	for _, c := range m.Cursors() {
		if c.Start() == 8 && c.End() == 11 {
			t.Error("a cursor was added over the primary selection")
		}
	}
}

func TestMatchCursorFuzzy(t *testing.T) {
	_, caret, m := newTestManager("my_var myVar my-var")
	caret.Select(0, 6)

	if !m.MatchCursor(true) {
		t.Fatal("fuzzy match failed")
	}
	if c := m.Cursors()[0]; c.Start() != 7 || c.End() != 12 {
		t.Errorf("fuzzy cursor = (%d, %d), want (7, 12) over myVar", c.Start(), c.End())
	}

	if !m.MatchCursor(true) {
		t.Fatal("second fuzzy match failed")
	}
	if c := m.Cursors()[1]; c.Start() != 13 || c.End() != 19 {
		t.Errorf("fuzzy cursor = (%d, %d), want (13, 19) over my-var", c.Start(), c.End())
	}

	// Exact matching must not find the variants.
	m.ClearCursors()
	if m.MatchCursor(false) {
		t.Error("exact match found a casing variant")
	}
}

func TestMatchCursorEmptySelection(t *testing.T) {
	_, _, m := newTestManager("foo foo")
	if m.MatchCursor(false) {
		t.Error("match succeeded with an empty selection")
	}
}

func TestMatchHighlights(t *testing.T) {
	_, caret, m := newTestManager("foo bar foo baz foo")
	caret.Select(0, 3)
	m.MatchCursor(false)

	regions := m.MatchHighlights()
	if len(regions) != 2 {
		t.Fatalf("got %d highlight regions, want 2", len(regions))
	}
	if regions[0].Start != 8 || regions[1].Start != 16 {
		t.Errorf("regions at %d and %d, want 8 and 16", regions[0].Start, regions[1].Start)
	}

	// Any caret movement invalidates the highlights.
	m.MoveCaret(StepChar, 1, false)
	if len(m.MatchHighlights()) != 0 {
		t.Error("movement did not clear the match highlights")
	}
}

func TestUnmatchCursorIsLIFO(t *testing.T) {
	_, caret, m := newTestManager("foo bar foo baz foo")
	caret.Select(0, 3)
	m.MatchCursor(false)
	m.MatchCursor(false)

	if !m.UnmatchCursor() {
		t.Fatal("unmatch failed")
	}
	if m.Count() != 1 || m.Cursors()[0].Start() != 8 {
		t.Errorf("expected the later cursor removed first")
	}

	m.UnmatchCursor()
	if m.Active() {
		t.Error("manager still active with no cursors")
	}
	if m.UnmatchCursor() {
		t.Error("unmatch succeeded with no cursors")
	}
}

func TestAddCursorRejectsDuplicates(t *testing.T) {
	_, _, m := newTestManager("abcdef")
	if m.AddCursor(2, 4) == nil {
		t.Fatal("first add rejected")
	}
	if m.AddCursor(4, 2) != nil {
		t.Error("duplicate range accepted")
	}
	if m.Count() != 1 {
		t.Errorf("cursor count = %d, want 1", m.Count())
	}
}

func TestReplayInsertAcrossCursors(t *testing.T) {
	doc, caret, m := newTestManager("abcdef")
	caret.Collapse(0)
	m.AddCursor(2, 2)
	m.AddCursor(4, 4)

	doc.BeginUserAction()
	caret.ReplaceSelection("X")
	doc.EndUserAction()

	if got := doc.String(); got != "XabXcdXef" {
		t.Errorf("document = %q, want XabXcdXef", got)
	}

	// Each cursor sits after its own copy of the insertion.
	if start, _ := caret.Bounds(); start != 1 {
		t.Errorf("caret at %d, want 1", start)
	}
	if c := m.Cursors()[0]; c.Start() != 4 {
		t.Errorf("first cursor at %d, want 4", c.Start())
	}
	if c := m.Cursors()[1]; c.Start() != 7 {
		t.Errorf("second cursor at %d, want 7", c.Start())
	}
}

func TestReplayBackspaceAcrossCursors(t *testing.T) {
	doc, caret, m := newTestManager("ab cd ef")
	caret.Collapse(2)
	m.AddCursor(5, 5)
	m.AddCursor(8, 8)

	doc.BeginUserAction()
	caret.DeleteBackward()
	doc.EndUserAction()

	if got := doc.String(); got != "a c e" {
		t.Errorf("document = %q, want \"a c e\"", got)
	}
}

func TestReplaySkipsOutsideTransactions(t *testing.T) {
	doc, _, m := newTestManager("abcdef")
	m.AddCursor(3, 3)

	// A bare mutation without a user action is not mirrored.
	doc.Insert(0, "X")
	if got := doc.String(); got != "Xabcdef" {
		t.Errorf("document = %q", got)
	}
}

func TestPasteSubstitutesPrivateClipboards(t *testing.T) {
	doc, caret, m := newTestManager("foo bar")
	caret.Select(0, 3)
	m.AddCursor(4, 7)
	m.SaveClipboards()

	// Pasting the saved primary text restores each cursor's own slot, so the
	// round trip leaves the document unchanged.
	doc.BeginUserAction()
	caret.ReplaceSelection("foo")
	doc.EndUserAction()

	if got := doc.String(); got != "foo bar" {
		t.Errorf("document = %q, want foo bar", got)
	}
}

func TestReplayMirrorsTextVerbatim(t *testing.T) {
	doc, caret, m := newTestManager("foo bar")
	caret.Select(0, 3)
	m.AddCursor(4, 7)

	// Without a preceding copy there is nothing to substitute.
	doc.BeginUserAction()
	caret.ReplaceSelection("qux")
	doc.EndUserAction()

	if got := doc.String(); got != "qux qux" {
		t.Errorf("document = %q, want qux qux", got)
	}
}

func TestColumnSelect(t *testing.T) {
	doc, caret, m := newTestManager("aaaa\nbbbb\ncccc")
	caret.Collapse(2)

	if !m.ColumnSelect(1) {
		t.Fatal("first column select failed")
	}
	if m.Count() != 1 || m.Cursors()[0].Start() != 2 {
		t.Errorf("cursor left behind at %d, want 2", m.Cursors()[0].Start())
	}
	if start, _ := caret.Bounds(); start != doc.LineStart(1)+2 {
		t.Errorf("caret at %d, want column 2 of line 1", start)
	}

	if !m.ColumnSelect(1) {
		t.Fatal("second column select failed")
	}
	if m.Count() != 2 {
		t.Errorf("cursor count = %d, want 2", m.Count())
	}

	// Past the last line: no-op.
	if m.ColumnSelect(1) {
		t.Error("column select past the last line succeeded")
	}

	// Reversing direction shrinks the block instead of growing it.
	if m.ColumnSelect(-1) {
		t.Error("shrinking reported as a grow")
	}
	if m.Count() != 1 {
		t.Errorf("cursor count after shrink = %d, want 1", m.Count())
	}
}

func TestColumnSelectClampsToShortLine(t *testing.T) {
	doc, caret, m := newTestManager("aaaa\nbb\ncccc")
	caret.Collapse(3)

	m.ColumnSelect(1)
	if start, end := caret.Bounds(); start != doc.LineStart(1)+2 || end != start {
		t.Errorf("caret = (%d, %d), want clamped to end of the short line", start, end)
	}
}

func TestMoveCaretBroadcast(t *testing.T) {
	_, caret, m := newTestManager("abc def ghi")
	caret.Collapse(0)
	m.AddCursor(4, 4)
	m.AddCursor(8, 8)

	m.MoveCaret(StepChar, 1, false)
	if start, _ := caret.Bounds(); start != 1 {
		t.Errorf("caret at %d, want 1", start)
	}
	if m.Cursors()[0].Start() != 5 || m.Cursors()[1].Start() != 9 {
		t.Errorf("cursors at %d and %d, want 5 and 9",
			m.Cursors()[0].Start(), m.Cursors()[1].Start())
	}
}

func TestBufferJumpClearsCursors(t *testing.T) {
	doc, caret, m := newTestManager("abc def")
	caret.Collapse(0)
	m.AddCursor(4, 4)

	m.MoveCaret(StepBufferEdge, 1, false)
	if m.Active() {
		t.Error("buffer-edge jump kept the cursors")
	}
	if start, _ := caret.Bounds(); start != doc.Len() {
		t.Errorf("caret at %d, want buffer end", start)
	}
}
