package core

// Caret is the document's native, single edit point: the primary selection
// all secondary cursors are measured against. It is mark-anchored like a
// cursor so it survives edits made during multi-cursor replay, but its
// rendering belongs to the host view, not to this engine.
type Caret struct {
	doc    *Document
	tag    *MarkTag
	anchor int // fixed end of an active extending motion, -1 when unset
	pref   int
}

// NewCaret creates the primary caret at offset 0.
func NewCaret(doc *Document) *Caret {
	return &Caret{
		doc:    doc,
		tag:    NewMarkTag(doc, 0, 0, TagHidden),
		anchor: -1,
		pref:   -1,
	}
}

// Bounds returns the ordered (start, end) offsets of the primary selection.
func (c *Caret) Bounds() (start, end int) {
	return c.tag.Start(), c.tag.End()
}

// HasSelection reports whether the primary selection is non-empty.
func (c *Caret) HasSelection() bool { return !c.tag.IsEmpty() }

// SelectedText reads the currently selected text.
func (c *Caret) SelectedText() string { return c.tag.Text() }

// Select places the primary selection over [start, end).
func (c *Caret) Select(start, end int) {
	c.tag.Move(start, end)
	c.anchor = -1
	c.pref = -1
}

// Collapse places the caret at a single offset.
func (c *Caret) Collapse(offset int) { c.Select(offset, offset) }

// Move applies a directional motion with the same step semantics as a
// secondary cursor, so broadcast movement stays uniform.
func (c *Caret) Move(step Step, count int, extend bool) {
	s := span{start: c.tag.Start(), end: c.tag.End(), anchor: c.anchor, pref: c.pref}
	s = moveSpan(c.doc, s, step, count, extend)
	c.tag.Move(s.start, s.end)
	c.anchor = s.anchor
	c.pref = s.pref
}

// ReplaceSelection deletes the selected range (if any) and inserts text at
// the collapsed caret, leaving the caret after the insertion.
func (c *Caret) ReplaceSelection(text string) {
	c.tag.SetText(text)
	c.anchor = -1
}

// DeleteBackward removes the selection, or the character before an empty
// caret.
func (c *Caret) DeleteBackward() {
	start, end := c.Bounds()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	c.doc.Delete(start, end)
	c.anchor = -1
}

// DeleteForward removes the selection, or the character after an empty
// caret.
func (c *Caret) DeleteForward() {
	start, end := c.Bounds()
	if start == end {
		if end >= c.doc.Len() {
			return
		}
		end++
	}
	c.doc.Delete(start, end)
	c.anchor = -1
}
