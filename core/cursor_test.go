package core

import "testing"

func TestCaretCharMotion(t *testing.T) {
	doc := NewDocument("abc")
	c := NewCaret(doc)

	c.Move(StepChar, 1, false)
	if start, end := c.Bounds(); start != 1 || end != 1 {
		t.Errorf("after right: (%d, %d)", start, end)
	}

	c.Move(StepChar, -1, false)
	c.Move(StepChar, -1, false)
	if start, _ := c.Bounds(); start != 0 {
		t.Errorf("left past the start moved to %d", start)
	}

	c.Move(StepChar, 99, false)
	if _, end := c.Bounds(); end != 3 {
		t.Errorf("right past the end moved to %d", end)
	}
}

func TestCaretCollapsesToDirectionalEdge(t *testing.T) {
	doc := NewDocument("abcdef")
	c := NewCaret(doc)

	// A non-extending motion over a selection collapses to the directional
	// edge, then applies the full step.
	c.Select(2, 4)
	c.Move(StepChar, 1, false)
	if start, end := c.Bounds(); start != 5 || end != 5 {
		t.Errorf("rightward collapse: (%d, %d), want (5, 5)", start, end)
	}

	c.Select(2, 4)
	c.Move(StepChar, -1, false)
	if start, end := c.Bounds(); start != 1 || end != 1 {
		t.Errorf("leftward collapse: (%d, %d), want (1, 1)", start, end)
	}
}

func TestCaretExtendingMotion(t *testing.T) {
	doc := NewDocument("abcdef")
	c := NewCaret(doc)
	c.Collapse(2)

	c.Move(StepChar, 1, true)
	c.Move(StepChar, 1, true)
	if start, end := c.Bounds(); start != 2 || end != 4 {
		t.Errorf("extend right: (%d, %d), want (2, 4)", start, end)
	}

	// Reversing direction moves the head back toward the anchor, shrinking
	// the selection instead of growing its other side.
	c.Move(StepChar, -1, true)
	if start, end := c.Bounds(); start != 2 || end != 3 {
		t.Errorf("extend left after right: (%d, %d), want (2, 3)", start, end)
	}
}

func TestExtendMotionCrossesAnchor(t *testing.T) {
	doc := NewDocument("abcdef")
	c := NewCaret(doc)
	c.Collapse(3)

	c.Move(StepChar, 1, true) // (3, 4)
	c.Move(StepChar, -1, true)
	if start, end := c.Bounds(); start != 3 || end != 3 {
		t.Fatalf("head back on anchor: (%d, %d), want (3, 3)", start, end)
	}

	// The head keeps moving past the anchor.
	c.Move(StepChar, -1, true)
	if start, end := c.Bounds(); start != 2 || end != 3 {
		t.Errorf("head past anchor: (%d, %d), want (2, 3)", start, end)
	}
}

func TestExtendMotionFromSelection(t *testing.T) {
	doc := NewDocument("abcdef")
	c := NewCaret(doc)
	c.Select(2, 4)

	// The first extending step anchors the end opposite the direction of
	// motion: leftward keeps the selection's end fixed.
	c.Move(StepChar, -1, true)
	if start, end := c.Bounds(); start != 1 || end != 4 {
		t.Fatalf("extend left: (%d, %d), want (1, 4)", start, end)
	}

	c.Move(StepChar, 1, true)
	if start, end := c.Bounds(); start != 2 || end != 4 {
		t.Errorf("shrink right: (%d, %d), want (2, 4)", start, end)
	}

	// A non-extending motion drops the anchor.
	c.Move(StepChar, 1, false)
	c.Move(StepChar, 1, true)
	if start, end := c.Bounds(); start != 5 || end != 6 {
		t.Errorf("fresh extension: (%d, %d), want (5, 6)", start, end)
	}
}

func TestCaretStickyColumn(t *testing.T) {
	doc := NewDocument("longest line\nab\nanother long line")
	c := NewCaret(doc)
	c.Collapse(8) // column 8 of line 0

	c.Move(StepLine, 1, false)
	if start, _ := c.Bounds(); start != doc.LineStart(1)+2 {
		t.Errorf("down onto short line: offset %d, want end of line 1", start)
	}

	// The preferred column survives the clamped hop.
	c.Move(StepLine, 1, false)
	if start, _ := c.Bounds(); start != doc.LineStart(2)+8 {
		t.Errorf("down onto long line: offset %d, want column 8", start)
	}

	// A horizontal move resets the preference.
	c.Move(StepChar, -1, false)
	c.Move(StepLine, -2, false)
	if start, _ := c.Bounds(); start != 7 {
		t.Errorf("after reset: offset %d, want 7", start)
	}
}

func TestWordMotion(t *testing.T) {
	doc := NewDocument("foo bar, baz")
	c := NewCaret(doc)

	c.Move(StepWord, 1, false)
	if start, _ := c.Bounds(); start != 4 {
		t.Errorf("first word jump: %d, want 4", start)
	}
	c.Move(StepWord, 1, false)
	if start, _ := c.Bounds(); start != 7 {
		t.Errorf("second word jump: %d, want 7 (before the comma)", start)
	}
	c.Move(StepWord, 2, false)
	if start, _ := c.Bounds(); start != 12 {
		t.Errorf("final word jump: %d, want 12", start)
	}

	c.Move(StepWord, -1, false)
	if start, _ := c.Bounds(); start != 9 {
		t.Errorf("word back: %d, want 9", start)
	}
}

func TestLineEdgeMotion(t *testing.T) {
	doc := NewDocument("one two\nthree")
	c := NewCaret(doc)
	c.Collapse(4)

	c.Move(StepLineEnd, 1, false)
	if start, _ := c.Bounds(); start != 7 {
		t.Errorf("line end: %d, want 7", start)
	}
	c.Move(StepLineEnd, -1, false)
	if start, _ := c.Bounds(); start != 0 {
		t.Errorf("line start: %d, want 0", start)
	}

	c.Move(StepBufferEdge, 1, false)
	if start, _ := c.Bounds(); start != doc.Len() {
		t.Errorf("buffer end: %d", start)
	}
}

func TestCaretDelete(t *testing.T) {
	doc := NewDocument("abcdef")
	c := NewCaret(doc)

	c.Collapse(3)
	c.DeleteBackward()
	if got := doc.String(); got != "abdef" {
		t.Errorf("after backspace: %q", got)
	}
	if start, _ := c.Bounds(); start != 2 {
		t.Errorf("caret at %d after backspace, want 2", start)
	}

	c.DeleteForward()
	if got := doc.String(); got != "abef" {
		t.Errorf("after forward delete: %q", got)
	}

	c.Select(1, 3)
	c.DeleteBackward()
	if got := doc.String(); got != "af" {
		t.Errorf("after selection delete: %q", got)
	}

	// Edges are no-ops.
	c.Collapse(0)
	c.DeleteBackward()
	c.Collapse(doc.Len())
	c.DeleteForward()
	if got := doc.String(); got != "af" {
		t.Errorf("edge deletes changed the document: %q", got)
	}
}

func TestCursorDeltaInsert(t *testing.T) {
	doc := NewDocument("foo bar")
	c := NewCursor(doc, 4, 7)

	// Delta 0 inserts at the cursor's own start without absorbing the text.
	c.Insert(0, "X")
	if got := doc.String(); got != "foo Xbar" {
		t.Errorf("document = %q", got)
	}
	if c.Start() != 5 || c.End() != 8 {
		t.Errorf("cursor = (%d, %d), want (5, 8)", c.Start(), c.End())
	}
}

func TestCursorDeltaDelete(t *testing.T) {
	doc := NewDocument("foo bar baz")
	c := NewCursor(doc, 4, 7)

	// A backspace on an empty primary selection arrives as deltas (-1, 0).
	c.Delete(-1, 0)
	if got := doc.String(); got != "foo baz" {
		t.Errorf("document = %q", got)
	}
	if c.Start() != 3 || !c.IsEmpty() {
		t.Errorf("cursor = (%d, %d)", c.Start(), c.End())
	}
}

func TestCursorPrivateClipboard(t *testing.T) {
	doc := NewDocument("alpha beta")
	c := NewCursor(doc, 6, 10)

	c.SaveText()
	if c.SavedText() != "beta" {
		t.Errorf("saved %q, want beta", c.SavedText())
	}

	// The slot is a snapshot, not a live view.
	doc.Delete(6, 10)
	if c.SavedText() != "beta" {
		t.Errorf("saved text changed to %q after edit", c.SavedText())
	}
}
