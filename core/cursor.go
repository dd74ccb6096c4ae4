package core

// Cursor is one secondary edit point, independent of the primary caret. It
// owns a mark-anchored range plus a private clipboard slot so multi-cursor
// paste can restore each cursor's own prior selection instead of one shared
// string.
type Cursor struct {
	doc    *Document
	tag    *MarkTag
	clip   string
	anchor int // fixed end of an active extending motion, -1 when unset
	pref   int // sticky column for repeated vertical motion, -1 when unset
}

// NewCursor creates a secondary cursor spanning [start, end).
func NewCursor(doc *Document, start, end int) *Cursor {
	return &Cursor{
		doc:    doc,
		tag:    NewMarkTag(doc, start, end, TagSelection),
		anchor: -1,
		pref:   -1,
	}
}

// Start resolves the cursor's current start offset.
func (c *Cursor) Start() int { return c.tag.Start() }

// End resolves the cursor's current end offset.
func (c *Cursor) End() int { return c.tag.End() }

// IsEmpty reports whether the cursor has no selection extent.
func (c *Cursor) IsEmpty() bool { return c.tag.IsEmpty() }

// SelectedText reads the text currently covered by the cursor.
func (c *Cursor) SelectedText() string { return c.tag.Text() }

// Tag exposes the underlying mark tag for highlight rendering.
func (c *Cursor) Tag() *MarkTag { return c.tag }

// Insert inserts text at start+startDelta. The delta expresses "the primary
// caret's insertion point was N characters into its selection" uniformly for
// every cursor. Capturing gravity is disabled around the insert so the
// cursor's own range does not absorb it.
func (c *Cursor) Insert(startDelta int, text string) {
	pos := c.doc.clamp(c.tag.Start() + startDelta)
	c.tag.SetCapturingGravity(false)
	c.doc.Insert(pos, text)
	c.tag.SetCapturingGravity(true)
	c.tag.Sync()
	c.anchor = -1
	c.pref = -1
}

// Delete removes the range between start+startDelta and end+endDelta. When
// the range's emptiness flips as a side effect, the tag is explicitly
// resynchronized rather than treated as an error.
func (c *Cursor) Delete(startDelta, endDelta int) {
	start := c.doc.clamp(c.tag.Start() + startDelta)
	end := c.doc.clamp(c.tag.End() + endDelta)
	if start > end {
		start, end = end, start
	}
	wasEmpty := c.tag.IsEmpty()
	if start != end {
		c.doc.Delete(start, end)
	}
	if c.tag.IsEmpty() != wasEmpty {
		c.tag.Sync()
	}
	c.anchor = -1
	c.pref = -1
}

// Move applies a directional motion, mirroring the primary caret's step
// semantics. extend grows the active end of the selection instead of
// collapsing and moving.
func (c *Cursor) Move(step Step, count int, extend bool) {
	s := span{start: c.tag.Start(), end: c.tag.End(), anchor: c.anchor, pref: c.pref}
	s = moveSpan(c.doc, s, step, count, extend)
	c.tag.Move(s.start, s.end)
	c.anchor = s.anchor
	c.pref = s.pref
}

// SaveText caches the currently selected text into this cursor's private
// clipboard slot.
func (c *Cursor) SaveText() {
	c.clip = c.tag.Text()
}

// SavedText returns the cursor's private clipboard content.
func (c *Cursor) SavedText() string { return c.clip }

// remove detaches the cursor's marks and highlight.
func (c *Cursor) remove() {
	c.tag.Remove()
}
