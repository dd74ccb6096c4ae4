package core

// TagRole selects how a MarkTag is surfaced to the view layer.
type TagRole int

const (
	// TagSelection renders as a secondary-selection highlight while the
	// range is non-degenerate and as a caret when it collapses.
	TagSelection TagRole = iota
	// TagHidden never renders; used for bookkeeping ranges.
	TagHidden
)

// MarkTag anchors a live range in a Document with a pair of marks, so the
// range survives unrelated edits elsewhere. The invariant start ≤ end holds
// at all times; a degenerate (zero-width) tag represents a caret.
type MarkTag struct {
	doc   *Document
	start *Mark
	end   *Mark
	role  TagRole
	empty bool

	// onChange notifies the owner that the visual extent changed and the
	// highlight must be re-rendered. May be nil.
	onChange func()
}

// NewMarkTag creates a tag spanning [start, end). The start mark is created
// with left gravity so insertions at the tag's own start are captured into
// the range; the end mark has right gravity for the same reason at the end.
func NewMarkTag(doc *Document, start, end int, role TagRole) *MarkTag {
	if start > end {
		start, end = end, start
	}
	t := &MarkTag{
		doc:   doc,
		start: doc.CreateMark(start, GravityLeft),
		end:   doc.CreateMark(end, GravityRight),
		role:  role,
		empty: start == end,
	}
	return t
}

// Start resolves the current start offset.
func (t *MarkTag) Start() int {
	s, e := t.start.Offset(), t.end.Offset()
	if s > e {
		return e
	}
	return s
}

// End resolves the current end offset.
func (t *MarkTag) End() int {
	s, e := t.start.Offset(), t.end.Offset()
	if s > e {
		return s
	}
	return e
}

// IsEmpty reports whether the tag has collapsed to a zero-width point.
func (t *MarkTag) IsEmpty() bool { return t.Start() == t.End() }

// Role returns the tag's rendering role.
func (t *MarkTag) Role() TagRole { return t.role }

// Text reads the document substring currently covered by the tag.
func (t *MarkTag) Text() string {
	return t.doc.Text(t.Start(), t.End())
}

// SetText replaces the tag's range with the given text. The deletion
// collapses the range; the insertion lands at the collapsed start with
// capturing gravity disabled so the tag does not absorb its own replacement.
func (t *MarkTag) SetText(text string) {
	start, end := t.Start(), t.End()
	if start != end {
		t.doc.Delete(start, end)
	}
	t.SetCapturingGravity(false)
	t.doc.Insert(t.Start(), text)
	t.SetCapturingGravity(true)
	t.Sync()
}

// Move re-points one or both marks. Pass KeepOffset to leave one untouched.
// The highlight observer is only notified when an offset actually changed,
// guarding against redundant re-rendering.
func (t *MarkTag) Move(newStart, newEnd int) {
	curStart, curEnd := t.Start(), t.End()
	if newStart == KeepOffset {
		newStart = curStart
	}
	if newEnd == KeepOffset {
		newEnd = curEnd
	}
	if newStart > newEnd {
		newStart, newEnd = newEnd, newStart
	}
	if newStart == curStart && newEnd == curEnd {
		return
	}
	t.start.MoveTo(newStart)
	t.end.MoveTo(newEnd)
	t.Sync()
}

// KeepOffset leaves one end of a tag in place in Move.
const KeepOffset = -1

// SetCapturingGravity toggles whether the start mark captures text inserted
// exactly at its offset.
func (t *MarkTag) SetCapturingGravity(capturing bool) {
	if capturing {
		t.start.SetGravity(GravityLeft)
	} else {
		t.start.SetGravity(GravityRight)
	}
}

// Sync re-derives the tag's emptiness state and notifies the highlight
// observer on a transition. Called when an edit may have collapsed or
// uncollapsed the range underneath the marks.
func (t *MarkTag) Sync() {
	empty := t.IsEmpty()
	changed := empty != t.empty
	t.empty = empty
	if t.onChange != nil && (changed || !empty) {
		t.onChange()
	}
}

// Remove detaches both marks. The tag must not be used afterwards.
func (t *MarkTag) Remove() {
	t.start.Delete()
	t.end.Delete()
	if t.onChange != nil {
		t.onChange()
	}
}
