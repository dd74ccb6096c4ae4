package core

import "sort"

// replayState makes the interception re-entrancy guard explicit: while the
// manager is replaying a buffered user action onto the secondary cursors,
// its own document hooks must not buffer the replay's mutations again.
type replayState int

const (
	replayIdle replayState = iota
	replayActive
)

type opKind int

const (
	opInsert opKind = iota
	opDelete
)

// bufferedOp is one intercepted document mutation, stored as deltas relative
// to the primary selection's bounds at transaction begin so it can be
// replayed against any cursor's own bounds.
type bufferedOp struct {
	kind       opKind
	startDelta int
	endDelta   int
	text       string
}

// Region is an offset range surfaced to the view layer for highlighting.
type Region struct {
	Start, End int
}

// CursorManager orchestrates the secondary cursors: add/remove/match/column
// select, plus the edit interception that replays each user action across
// every cursor. It is Inactive (no cursors, no hooks installed) until the
// first AddCursor and returns to Inactive when the last cursor goes away.
type CursorManager struct {
	doc   *Document
	caret *Caret

	cursors []*Cursor
	state   replayState

	// Hook uninstallers; non-nil only while Active.
	removeHooks []func()

	// Interception buffer for the currently open user action.
	txActive bool
	txStart  int
	txEnd    int
	pending  []bufferedOp

	// Transient occurrence highlights from the first match call in a
	// sequence.
	matches []Region

	// Primary text captured at the last copy/cut; paste of the same text
	// replays each cursor's own saved slot instead.
	savedClipboard string

	notify func(Signal)
}

// NewCursorManager creates an inactive manager. notify may be nil.
func NewCursorManager(doc *Document, caret *Caret, notify func(Signal)) *CursorManager {
	if notify == nil {
		notify = func(Signal) {}
	}
	return &CursorManager{
		doc:    doc,
		caret:  caret,
		notify: notify,
	}
}

// Active reports whether any secondary cursors exist.
func (m *CursorManager) Active() bool { return len(m.cursors) > 0 }

// Count returns the number of secondary cursors.
func (m *CursorManager) Count() int { return len(m.cursors) }

// Cursors returns the live cursor collection in add order.
func (m *CursorManager) Cursors() []*Cursor { return m.cursors }

// MatchHighlights returns the transient occurrence highlights.
func (m *CursorManager) MatchHighlights() []Region { return m.matches }

// AddCursor appends a new secondary cursor spanning [start, end). A cursor
// duplicating an existing cursor's exact range is rejected.
func (m *CursorManager) AddCursor(start, end int) *Cursor {
	if start > end {
		start, end = end, start
	}
	for _, c := range m.cursors {
		if c.Start() == start && c.End() == end {
			return nil
		}
	}

	c := NewCursor(m.doc, start, end)
	c.tag.onChange = func() { m.notify(HighlightsChangedSignal{}) }

	if len(m.cursors) == 0 {
		m.installHooks()
	}
	m.cursors = append(m.cursors, c)
	m.notify(CursorsChangedSignal{count: len(m.cursors)})
	return c
}

// RemoveCursor detaches and drops the cursor at the given index.
func (m *CursorManager) RemoveCursor(index int) {
	if index < 0 || index >= len(m.cursors) {
		return
	}
	m.cursors[index].remove()
	m.cursors = append(m.cursors[:index], m.cursors[index+1:]...)
	if len(m.cursors) == 0 {
		m.uninstallHooks()
	}
	m.clearMatches()
	m.notify(CursorsChangedSignal{count: len(m.cursors)})
}

// ClearCursors drops every secondary cursor, returning to Inactive.
func (m *CursorManager) ClearCursors() {
	if len(m.cursors) == 0 {
		return
	}
	for _, c := range m.cursors {
		c.remove()
	}
	m.cursors = nil
	m.uninstallHooks()
	m.clearMatches()
	m.notify(CursorsChangedSignal{count: 0})
}

// MatchCursor selects the next occurrence of the primary selection and adds
// a cursor over it. With fuzzy enabled the casing variants of the selection
// are matched case-insensitively, earliest occurrence first. Search wraps at
// most once, bounded by the primary selection. Returns false on the expected
// no-ops: empty selection or exhausted search.
func (m *CursorManager) MatchCursor(fuzzy bool) bool {
	pStart, pEnd := m.caret.Bounds()
	if pStart == pEnd {
		return false
	}
	text := m.caret.SelectedText()
	if text == "" {
		return false
	}

	needles := []string{text}
	if fuzzy {
		needles = CasingVariants(text)
	}

	searchFrom := pEnd
	if len(m.cursors) == 0 {
		m.highlightOccurrences(needles, fuzzy, pStart, pEnd)
	} else {
		searchFrom = m.cursors[len(m.cursors)-1].End()
	}

	start, end, ok := m.searchEarliest(needles, searchFrom, -1, fuzzy)
	if !ok && searchFrom >= pEnd {
		// Single wraparound: from document start up to the primary
		// selection, never past it.
		start, end, ok = m.searchEarliest(needles, 0, pStart, fuzzy)
	}
	if !ok {
		return false
	}

	if m.AddCursor(start, end) == nil {
		return false
	}
	m.notify(ScrollToSignal{offset: start})
	return true
}

// UnmatchCursor removes the most recently added cursor and refocuses the
// view on the new last cursor, or the primary caret when none remain.
func (m *CursorManager) UnmatchCursor() bool {
	if len(m.cursors) == 0 {
		return false
	}
	m.RemoveCursor(len(m.cursors) - 1)
	if len(m.cursors) > 0 {
		m.notify(ScrollToSignal{offset: m.cursors[len(m.cursors)-1].Start()})
	} else {
		start, _ := m.caret.Bounds()
		m.notify(ScrollToSignal{offset: start})
	}
	return true
}

// ColumnSelect extends a vertical block selection by lineDelta. The primary
// caret must sit on the block's edge in the matching direction; an attempt
// to shrink the block instead removes the most recently added cursor. The
// caret advances to the target line and a cursor is left behind at its
// previous position, with both endpoint columns clamped to the target line's
// length.
func (m *CursorManager) ColumnSelect(lineDelta int) bool {
	if lineDelta == 0 {
		return false
	}

	pStart, pEnd := m.caret.Bounds()
	startLine := m.doc.LineOfOffset(pStart)
	endLine := m.doc.LineOfOffset(pEnd)

	minLine, maxLine := startLine, endLine
	for _, c := range m.cursors {
		if l := m.doc.LineOfOffset(c.Start()); l < minLine {
			minLine = l
		}
		if l := m.doc.LineOfOffset(c.End()); l > maxLine {
			maxLine = l
		}
	}

	var edge int
	if lineDelta > 0 {
		if maxLine != endLine {
			m.UnmatchCursor()
			return false
		}
		edge = endLine
	} else {
		if minLine != startLine {
			m.UnmatchCursor()
			return false
		}
		edge = startLine
	}

	target := edge + lineDelta
	if target < 0 {
		target = 0
	}
	if last := m.doc.LineCount() - 1; target > last {
		target = last
	}
	if target == edge {
		return false
	}

	startCol := pStart - m.doc.LineStart(startLine)
	endCol := pEnd - m.doc.LineStart(endLine)
	lineLen := m.doc.LineLen(target)
	if startCol > lineLen {
		startCol = lineLen
	}
	if endCol > lineLen {
		endCol = lineLen
	}
	newStart := m.doc.LineStart(target) + startCol
	newEnd := m.doc.LineStart(target) + endCol

	m.AddCursor(pStart, pEnd)
	m.caret.Select(newStart, newEnd)
	m.notify(ScrollToSignal{offset: newStart})
	return true
}

// MoveCaret mirrors a primary-caret movement onto every secondary cursor
// with identical step semantics. Buffer-edge jumps and page movements
// hard-reset multi-cursor mode instead. Any movement clears the transient
// match highlights, which were relative to a selection that just changed.
func (m *CursorManager) MoveCaret(step Step, count int, extend bool) {
	m.clearMatches()

	if step == StepBufferEdge || step == StepPage {
		m.caret.Move(step, count, extend)
		m.ClearCursors()
		return
	}

	m.caret.Move(step, count, extend)
	for _, c := range m.cursors {
		c.Move(step, count, extend)
	}
	m.notify(HighlightsChangedSignal{})
}

// SaveClipboards captures each cursor's own selected text and the primary
// selection at the moment of a copy or cut.
func (m *CursorManager) SaveClipboards() {
	for _, c := range m.cursors {
		c.SaveText()
	}
	m.savedClipboard = m.caret.SelectedText()
}

// --- Edit interception ---

func (m *CursorManager) installHooks() {
	m.removeHooks = []func(){
		m.doc.OnTransactionBegin(m.onTxBegin),
		m.doc.OnTransactionEnd(m.onTxEnd),
		m.doc.OnInsert(m.onInsert),
		m.doc.OnDelete(m.onDelete),
	}
}

func (m *CursorManager) uninstallHooks() {
	for _, remove := range m.removeHooks {
		remove()
	}
	m.removeHooks = nil
	m.txActive = false
	m.pending = nil
}

func (m *CursorManager) onTxBegin() {
	if m.state == replayActive {
		return
	}
	m.txStart, m.txEnd = m.caret.Bounds()
	m.pending = nil
	m.txActive = true
}

func (m *CursorManager) onInsert(offset int, text string) {
	if m.state == replayActive || !m.txActive || !m.doc.InUserAction() {
		return
	}
	m.pending = append(m.pending, bufferedOp{
		kind:       opInsert,
		startDelta: offset - m.txStart,
		text:       text,
	})
}

func (m *CursorManager) onDelete(start, end int, text string) {
	if m.state == replayActive || !m.txActive || !m.doc.InUserAction() {
		return
	}
	m.pending = append(m.pending, bufferedOp{
		kind:       opDelete,
		startDelta: start - m.txStart,
		endDelta:   end - m.txEnd,
	})
}

// onTxEnd replays the buffered user action against every secondary cursor.
// Cursors are processed in descending offset order so applying an edit to a
// later cursor never invalidates the stored offset of an earlier one still
// pending replay.
func (m *CursorManager) onTxEnd() {
	if m.state == replayActive || !m.txActive {
		return
	}
	m.txActive = false
	ops := m.pending
	m.pending = nil
	if len(ops) == 0 || len(m.cursors) == 0 {
		return
	}

	m.state = replayActive
	ordered := make([]*Cursor, len(m.cursors))
	copy(ordered, m.cursors)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start() > ordered[j].Start()
	})

	for _, c := range ordered {
		for _, op := range ops {
			switch op.kind {
			case opInsert:
				text := op.text
				if m.savedClipboard != "" && text == m.savedClipboard && c.clip != "" {
					text = c.clip
				}
				c.Insert(op.startDelta, text)
			case opDelete:
				c.Delete(op.startDelta, op.endDelta)
			}
		}
	}
	m.state = replayIdle
	m.notify(HighlightsChangedSignal{})
}

// --- Search helpers ---

// searchEarliest finds the earliest occurrence of any needle in
// [from, bound), skipping the primary selection and ranges already owned by
// a cursor.
func (m *CursorManager) searchEarliest(needles []string, from, bound int, fold bool) (int, int, bool) {
	for {
		bestStart, bestEnd, found := -1, -1, false
		for _, needle := range needles {
			s, e, ok := m.doc.FindForward(needle, from, bound, fold)
			if ok && (!found || s < bestStart) {
				bestStart, bestEnd, found = s, e, true
			}
		}
		if !found {
			return 0, 0, false
		}
		if !m.ownsRange(bestStart, bestEnd) {
			return bestStart, bestEnd, true
		}
		from = bestStart + 1
	}
}

func (m *CursorManager) ownsRange(start, end int) bool {
	if pStart, pEnd := m.caret.Bounds(); start == pStart && end == pEnd {
		return true
	}
	for _, c := range m.cursors {
		if c.Start() == start && c.End() == end {
			return true
		}
	}
	return false
}

// highlightOccurrences precomputes every occurrence of the selection across
// the whole document, excluding the primary selection itself.
func (m *CursorManager) highlightOccurrences(needles []string, fold bool, pStart, pEnd int) {
	m.matches = nil
	for _, needle := range needles {
		from := 0
		for {
			s, e, ok := m.doc.FindForward(needle, from, -1, fold)
			if !ok {
				break
			}
			if !(s == pStart && e == pEnd) {
				m.matches = append(m.matches, Region{Start: s, End: e})
			}
			from = s + 1
		}
	}
	sort.Slice(m.matches, func(i, j int) bool { return m.matches[i].Start < m.matches[j].Start })
	m.notify(HighlightsChangedSignal{})
}

func (m *CursorManager) clearMatches() {
	if len(m.matches) == 0 {
		return
	}
	m.matches = nil
	m.notify(HighlightsChangedSignal{})
}

// geometry captures the primary caret's and every cursor's offsets so undo
// can restore cursor geometry even after cursors were destroyed.
type geometry struct {
	primary Region
	cursors []Region
}

func (m *CursorManager) snapshotGeometry() geometry {
	start, end := m.caret.Bounds()
	g := geometry{primary: Region{Start: start, End: end}}
	for _, c := range m.cursors {
		g.cursors = append(g.cursors, Region{Start: c.Start(), End: c.End()})
	}
	return g
}

// restoreGeometry re-points the primary caret and the surviving cursors at
// the saved offsets. Snapshots beyond the live cursor count are ignored; a
// cursor destroyed since the snapshot is not resurrected.
func (m *CursorManager) restoreGeometry(g geometry) {
	m.caret.Select(g.primary.Start, g.primary.End)
	for i, r := range g.cursors {
		if i >= len(m.cursors) {
			break
		}
		c := m.cursors[i]
		c.tag.Move(r.Start, r.End)
		c.anchor = -1
		c.pref = -1
	}
	m.notify(HighlightsChangedSignal{})
}
